package expenseimporter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRow() map[string]string {
	return map[string]string{
		"Date (ISO 8601)":        "2024-03-05",
		"Date":                   "05/03/24, 2:30 PM",
		"Account":                "HDFC Savings",
		"Category":               "Food",
		"Subcategory":            "Groceries",
		"Amount":                 "1,234.56",
		"Currency":               "INR",
		"Converted amount (INR)": "1,234.56",
		"Type":                   "expense",
		"Person / Company":       "Big Bazaar",
		"Description":            "weekly run #groceries",
	}
}

func TestNormalizeRow(t *testing.T) {
	record, err := NormalizeRow(testRow())

	assert.NoError(t, err)
	assert.Equal(t, "2024-03-05", record.DateISO)
	assert.Equal(t, "05/03/24, 2:30 PM", record.Date)
	assert.Equal(t, "2024-03-05", record.FormattedDate)
	assert.Equal(t, "HDFC Savings", record.Account)
	assert.Equal(t, "Food", record.Category)
	assert.Equal(t, "Groceries", record.Subcategory)
	assert.Equal(t, 1234.56, record.Amount)
	assert.Equal(t, "INR", record.Currency)
	assert.Equal(t, 1234.56, record.ConvertedAmountINR)
	assert.Equal(t, "expense", record.Type)
	assert.Equal(t, "Big Bazaar", record.PersonCompany)
	assert.Equal(t, "weekly run #groceries", record.Description)
}

func TestNormalizeRowMalformedAmount(t *testing.T) {
	row := testRow()
	row["Amount"] = "12a.50"

	record, err := NormalizeRow(row)

	assert.Nil(t, record)

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "Amount", parseErr.Field)
}

func TestNormalizeRowMalformedConvertedAmount(t *testing.T) {
	row := testRow()
	row["Converted amount (INR)"] = ""

	_, err := NormalizeRow(row)

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "Converted amount (INR)", parseErr.Field)
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"05/03/24, 2:30 PM", "2024-03-05"},
		// midnight case: the AM adjustment runs but the output stays date-only
		{"05/03/24, 12:15 AM", "2024-03-05"},
		{"31/12/23, 11:59 PM", "2023-12-31"},
		{"01/01/25, 12:00 PM", "2025-01-01"},
	}

	for _, test := range tests {
		got, err := formatDate(test.in)
		assert.NoError(t, err, test.in)
		assert.Equal(t, test.want, got, test.in)
	}
}

func TestFormatDateMalformed(t *testing.T) {
	malformed := []string{
		"",
		"05/03/24",
		"05-03-24, 2:30 PM",
		"05/03/24, 2:30",
		"05/03/24, 2 PM",
		"05/03/24, two:30 PM",
	}

	for _, in := range malformed {
		_, err := formatDate(in)

		var parseErr *ParseError
		assert.True(t, errors.As(err, &parseErr), in)
	}
}
