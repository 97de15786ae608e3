package expenseimporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldUpload(t *testing.T) {
	watermark := time.Date(2024, 3, 5, 17, 30, 0, 0, time.UTC)

	// same day as the watermark is always re-included
	assert.True(t, ShouldUpload(time.Date(2024, 3, 5, 0, 1, 0, 0, time.UTC), watermark))
	assert.True(t, ShouldUpload(time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC), watermark))

	assert.True(t, ShouldUpload(time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), watermark))
	assert.False(t, ShouldUpload(time.Date(2024, 3, 4, 23, 59, 0, 0, time.UTC), watermark))
}

func TestParseISODate(t *testing.T) {
	got, err := parseISODate("2024-03-05")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)

	got, err = parseISODate("2024-03-05T14:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, 14, got.Hour())

	_, err = parseISODate("05/03/2024")
	assert.Error(t, err)
}
