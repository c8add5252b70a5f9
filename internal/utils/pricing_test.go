package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		date, err := ParseDate("2024-01-15")
		assert.NoError(t, err)
		assert.Equal(t, 2024, date.Year())
		assert.Equal(t, 1, int(date.Month()))
		assert.Equal(t, 15, date.Day())
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseDate("2024/01/15")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date format")
	})

	t.Run("Invalid day", func(t *testing.T) {
		_, err := ParseDate("2024-02-30")
		assert.Error(t, err)
	})
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected int
		errMsg   string
	}{
		{"Three nights", "2024-02-01", "2024-02-04", 3, ""},
		{"Across leap day", "2024-02-28", "2024-03-01", 2, ""},
		{"Across month end", "2023-01-30", "2023-02-02", 3, ""},
		{"Across DST change", "2024-03-09", "2024-03-12", 3, ""},
		{"Same day", "2024-02-01", "2024-02-01", 0, "end date must be after start date"},
		{"End before start", "2024-02-04", "2024-02-01", 0, "end date must be after start date"},
		{"Bad start", "02-01-2024", "2024-02-04", 0, "invalid start date"},
		{"Bad end", "2024-02-01", "tomorrow", 0, "invalid end date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := RentalDays(tt.start, tt.end)
			if tt.errMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, days)
		})
	}
}

func TestCalculateRentalCost(t *testing.T) {
	q, err := CalculateRentalCost("2024-02-01", "2024-02-04", 15000)
	assert.NoError(t, err)
	assert.Equal(t, 3, q.Days)
	assert.Equal(t, int64(45000), q.TotalAmount)

	_, err = CalculateRentalCost("2024-02-01", "2024-02-04", 0)
	assert.Error(t, err)
}
