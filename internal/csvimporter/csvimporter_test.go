package csvimporter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleCSV = `Date (ISO 8601);Date;Account;Category;Subcategory;Amount;Currency;Converted amount (INR);Type;Person / Company;Description
2024-03-05;05/03/24, 2:30 PM;HDFC;Food;Groceries;1,234.56;INR;1,234.56;expense;Big Bazaar;weekly run #groceries
2024-03-06;06/03/24, 9:00 AM;HDFC;Rent;;25,000;INR;25,000;expense;Landlord;march #rent
`

func TestReadRows(t *testing.T) {
	rows, err := readRows(strings.NewReader(sampleCSV))

	assert.NoError(t, err)
	assert.Len(t, rows, 2)

	assert.Equal(t, "2024-03-05", rows[0]["Date (ISO 8601)"])
	assert.Equal(t, "05/03/24, 2:30 PM", rows[0]["Date"])
	assert.Equal(t, "1,234.56", rows[0]["Amount"])
	assert.Equal(t, "Big Bazaar", rows[0]["Person / Company"])

	assert.Equal(t, "", rows[1]["Subcategory"])
	assert.Equal(t, "march #rent", rows[1]["Description"])
}

func TestReadRowsEmptyFile(t *testing.T) {
	_, err := readRows(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadRowsHeaderOnly(t *testing.T) {
	rows, err := readRows(strings.NewReader("Date (ISO 8601);Date;Account\n"))

	assert.NoError(t, err)
	assert.Empty(t, rows)
}
