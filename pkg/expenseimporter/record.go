package expenseimporter

import (
	"strconv"
	"strings"

	"github.com/uptrace/bun"
)

// Column labels expected in the export's header row. Matching is exact,
// including case and spacing.
const (
	colDateISO       = "Date (ISO 8601)"
	colDate          = "Date"
	colAccount       = "Account"
	colCategory      = "Category"
	colSubcategory   = "Subcategory"
	colAmount        = "Amount"
	colCurrency      = "Currency"
	colConvertedINR  = "Converted amount (INR)"
	colType          = "Type"
	colPersonCompany = "Person / Company"
	colDescription   = "Description"
)

// Transaction is one imported row. The six columns in the natural_key unique
// group identify a logical transaction across re-imports; amount, currency,
// converted_amount_inr and description are overwritten on conflict, every
// other column is immutable once set.
type Transaction struct {
	bun.BaseModel `bun:"table:transactions,alias:t"`

	ID                 int64   `bun:"id,pk,autoincrement"`
	DateISO            string  `bun:"date_iso,unique:transactions_natural_key"`
	Date               string  `bun:"date"`
	FormattedDate      string  `bun:"formatted_date"`
	Account            string  `bun:"account,unique:transactions_natural_key"`
	Category           string  `bun:"category,unique:transactions_natural_key"`
	Subcategory        string  `bun:"subcategory,unique:transactions_natural_key"`
	Amount             float64 `bun:"amount"`
	Currency           string  `bun:"currency"`
	ConvertedAmountINR float64 `bun:"converted_amount_inr"`
	Type               string  `bun:"type,unique:transactions_natural_key"`
	PersonCompany      string  `bun:"person_company,unique:transactions_natural_key"`
	Description        string  `bun:"description,type:text"`
}

// NormalizeRow converts one raw header-keyed row into a Transaction.
func NormalizeRow(row map[string]string) (*Transaction, error) {
	amount, err := parseAmount(colAmount, row[colAmount])
	if err != nil {
		return nil, err
	}

	converted, err := parseAmount(colConvertedINR, row[colConvertedINR])
	if err != nil {
		return nil, err
	}

	formattedDate, err := formatDate(row[colDate])
	if err != nil {
		return nil, err
	}

	return &Transaction{
		DateISO:            row[colDateISO],
		Date:               row[colDate],
		FormattedDate:      formattedDate,
		Account:            row[colAccount],
		Category:           row[colCategory],
		Subcategory:        row[colSubcategory],
		Amount:             amount,
		Currency:           row[colCurrency],
		ConvertedAmountINR: converted,
		Type:               row[colType],
		PersonCompany:      row[colPersonCompany],
		Description:        row[colDescription],
	}, nil
}

// parseAmount strips thousands separators before parsing; the exporter
// writes amounts like "1,234.56".
func parseAmount(field, value string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0, &ParseError{Field: field, Value: value, Err: err}
	}

	return amount, nil
}

// formatDate turns the export's display date ("05/03/24, 2:30 PM") into
// YYYY-MM-DD. The clock is parsed and converted to 24-hour form so malformed
// time parts are rejected, but the emitted value carries no time component.
func formatDate(value string) (string, error) {
	parts := strings.Split(value, ", ")
	if len(parts) != 2 {
		return "", &ParseError{Field: colDate, Value: value}
	}

	dateParts := strings.Split(parts[0], "/")
	if len(dateParts) != 3 {
		return "", &ParseError{Field: colDate, Value: value}
	}

	day, month, year := dateParts[0], dateParts[1], "20"+dateParts[2]

	timeParts := strings.Split(parts[1], " ")
	if len(timeParts) != 2 {
		return "", &ParseError{Field: colDate, Value: value}
	}

	clock := strings.Split(timeParts[0], ":")
	if len(clock) != 2 {
		return "", &ParseError{Field: colDate, Value: value}
	}

	hour, err := strconv.Atoi(clock[0])
	if err != nil {
		return "", &ParseError{Field: colDate, Value: value, Err: err}
	}

	if _, err := strconv.Atoi(clock[1]); err != nil {
		return "", &ParseError{Field: colDate, Value: value, Err: err}
	}

	// The 24-hour conversion never reaches the output, the export's field is
	// date-only. It still runs so an unexpected meridiem stays harmless.
	switch timeParts[1] {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}

	return year + "-" + month + "-" + day, nil
}
