package domain

import "time"

// LocationInfo identifies the place a forecast was issued for
type LocationInfo struct {
	City    string
	Country string
}

// CurrentReport is the nearest forecast interval
type CurrentReport struct {
	Temp        int
	Description string
}

// TomorrowReport is one 3-hour interval of tomorrow
type TomorrowReport struct {
	Time        time.Time
	Temp        int
	Description string
}

// HourLabel returns the local time of the interval, e.g. "15:00"
func (r TomorrowReport) HourLabel() string {
	return r.Time.Format("15:04")
}

// DateLabel returns the long date of the interval, e.g. "January 02"
func (r TomorrowReport) DateLabel() string {
	return r.Time.Format("January 02")
}

// DayReport aggregates one calendar day of intervals
type DayReport struct {
	Date        time.Time
	MinTemp     int
	MaxTemp     int
	Description string
}

// DayLabel returns the short date, e.g. "Jan 02"
func (r DayReport) DayLabel() string {
	return r.Date.Format("Jan 02")
}

// ForecastQuery is a request to the forecast provider
type ForecastQuery struct {
	Location string
	Language Language
	Units    Units
}

// QueryFor builds the provider query for the given settings
func QueryFor(s Settings) ForecastQuery {
	return ForecastQuery{
		Location: s.Location,
		Language: s.Language,
		Units:    s.Units,
	}
}
