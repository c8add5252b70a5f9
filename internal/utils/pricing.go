package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// RentalQuote is the derived part of a rental request
type RentalQuote struct {
	Days        int
	DailyRate   int64
	TotalAmount int64
}

// ParseDate converts a yyyy-mm-dd formatted string into a UTC date
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd: %q", dateStr)
	}
	return t, nil
}

// RentalDays counts the nights between start and end. The end date must be
// strictly after the start date, so 2024-02-01 to 2024-02-04 is 3 days.
func RentalDays(startDate, endDate string) (int, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0, fmt.Errorf("invalid end date: %w", err)
	}
	if !end.After(start) {
		return 0, fmt.Errorf("end date must be after start date")
	}
	return int(end.Sub(start).Hours() / 24), nil
}

// CalculateRentalCost derives total days and amount as days * dailyRate
func CalculateRentalCost(startDate, endDate string, dailyRate int64) (RentalQuote, error) {
	if dailyRate <= 0 {
		return RentalQuote{}, fmt.Errorf("daily rate must be positive")
	}
	days, err := RentalDays(startDate, endDate)
	if err != nil {
		return RentalQuote{}, err
	}
	return RentalQuote{
		Days:        days,
		DailyRate:   dailyRate,
		TotalAmount: int64(days) * dailyRate,
	}, nil
}
