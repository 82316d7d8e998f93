package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayReport_DayLabel(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "date 2024-12-12",
			date:     time.Date(2024, 12, 12, 10, 0, 0, 0, time.UTC),
			expected: "Dec 12",
		},
		{
			name:     "date 2024-01-01",
			date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: "Jan 01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := DayReport{Date: tt.date}
			assert.Equal(t, tt.expected, report.DayLabel())
		})
	}
}

func TestTomorrowReport_Labels(t *testing.T) {
	zone := time.FixedZone("", 3*3600)
	report := TomorrowReport{Time: time.Date(2024, 6, 15, 21, 0, 0, 0, zone)}

	assert.Equal(t, "21:00", report.HourLabel())
	assert.Equal(t, "June 15", report.DateLabel())
}

func TestQueryFor(t *testing.T) {
	s := Settings{Location: "Paris", Language: LanguageRussian, Units: UnitsImperial}

	q := QueryFor(s)

	assert.Equal(t, ForecastQuery{Location: "Paris", Language: LanguageRussian, Units: UnitsImperial}, q)
}
