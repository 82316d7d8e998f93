package weather

import (
	"fmt"
	"math"
	"time"

	"weathercat/internal/domain"
)

const (
	// intervalsPerDay assumes the provider's fixed 3-hour granularity
	intervalsPerDay = 8
	forecastDays    = 4
)

type sample struct {
	time time.Time
	temp int
	desc string
}

// Current returns the first interval of the feed
func Current(p Payload) (domain.LocationInfo, domain.CurrentReport, error) {
	loc, err := location(p)
	if err != nil {
		return domain.LocationInfo{}, domain.CurrentReport{}, err
	}
	samples, err := samples(p, time.UTC)
	if err != nil {
		return domain.LocationInfo{}, domain.CurrentReport{}, err
	}

	first := samples[0]
	return loc, domain.CurrentReport{Temp: first.temp, Description: first.desc}, nil
}

// Tomorrow returns every interval falling on the next local calendar day.
// Intervals must be ordered by time: collection stops at the first interval
// that is neither today nor tomorrow.
func Tomorrow(p Payload) (domain.LocationInfo, []domain.TomorrowReport, error) {
	loc, err := location(p)
	if err != nil {
		return domain.LocationInfo{}, nil, err
	}
	zone, err := zoneOf(p)
	if err != nil {
		return domain.LocationInfo{}, nil, err
	}
	samples, err := samples(p, zone)
	if err != nil {
		return domain.LocationInfo{}, nil, err
	}

	today := samples[0].time
	tomorrow := today.AddDate(0, 0, 1)

	reports := []domain.TomorrowReport{}
	for _, s := range samples {
		if sameDay(s.time, today) {
			continue
		}
		if !sameDay(s.time, tomorrow) {
			break
		}
		reports = append(reports, domain.TomorrowReport{
			Time:        s.time,
			Temp:        s.temp,
			Description: s.desc,
		})
	}

	return loc, reports, nil
}

// Forecast aggregates the four days after today. Starting at the first interval
// not on today's date, consecutive runs of eight intervals form one day.
func Forecast(p Payload) (domain.LocationInfo, []domain.DayReport, error) {
	loc, err := location(p)
	if err != nil {
		return domain.LocationInfo{}, nil, err
	}
	zone, err := zoneOf(p)
	if err != nil {
		return domain.LocationInfo{}, nil, err
	}
	samples, err := samples(p, zone)
	if err != nil {
		return domain.LocationInfo{}, nil, err
	}

	start := -1
	for i, s := range samples {
		if !sameDay(s.time, samples[0].time) {
			start = i
			break
		}
	}
	if start < 0 {
		return domain.LocationInfo{}, nil, &PayloadError{Field: "list (no intervals after today)"}
	}

	reports := make([]domain.DayReport, 0, forecastDays)
	for d := 0; d < forecastDays; d++ {
		lo := start + d*intervalsPerDay
		if lo >= len(samples) {
			return domain.LocationInfo{}, nil, &PayloadError{Field: fmt.Sprintf("list (day %d is empty)", d+1)}
		}
		hi := lo + intervalsPerDay
		if hi > len(samples) {
			hi = len(samples)
		}
		reports = append(reports, aggregate(samples[lo:hi]))
	}

	return loc, reports, nil
}

func aggregate(bucket []sample) domain.DayReport {
	report := domain.DayReport{
		Date:    bucket[0].time,
		MinTemp: bucket[0].temp,
		MaxTemp: bucket[0].temp,
	}

	counts := make(map[string]int, len(bucket))
	order := make([]string, 0, len(bucket))
	for _, s := range bucket {
		if s.temp < report.MinTemp {
			report.MinTemp = s.temp
		}
		if s.temp > report.MaxTemp {
			report.MaxTemp = s.temp
		}
		if counts[s.desc] == 0 {
			order = append(order, s.desc)
		}
		counts[s.desc]++
	}

	// ties go to the description seen first
	best := 0
	for _, desc := range order {
		if counts[desc] > best {
			best = counts[desc]
			report.Description = desc
		}
	}

	return report
}

func location(p Payload) (domain.LocationInfo, error) {
	if p.City == nil {
		return domain.LocationInfo{}, &PayloadError{Field: "city"}
	}
	if p.City.Name == nil {
		return domain.LocationInfo{}, &PayloadError{Field: "city.name"}
	}
	if p.City.Country == nil {
		return domain.LocationInfo{}, &PayloadError{Field: "city.country"}
	}
	return domain.LocationInfo{City: *p.City.Name, Country: *p.City.Country}, nil
}

// zoneOf builds a fixed offset zone; the provider offset carries no DST rules
func zoneOf(p Payload) (*time.Location, error) {
	if p.City == nil || p.City.Timezone == nil {
		return nil, &PayloadError{Field: "city.timezone"}
	}
	return time.FixedZone("", int(*p.City.Timezone)), nil
}

// samples validates every interval and converts it to local time
func samples(p Payload, zone *time.Location) ([]sample, error) {
	if len(p.List) == 0 {
		return nil, &PayloadError{Field: "list"}
	}

	out := make([]sample, 0, len(p.List))
	for i, iv := range p.List {
		if iv.Dt == nil {
			return nil, &PayloadError{Field: fmt.Sprintf("list[%d].dt", i)}
		}
		if iv.Main == nil || iv.Main.Temp == nil {
			return nil, &PayloadError{Field: fmt.Sprintf("list[%d].main.temp", i)}
		}
		temp := *iv.Main.Temp
		if math.IsNaN(temp) || math.IsInf(temp, 0) {
			return nil, &PayloadError{Field: fmt.Sprintf("list[%d].main.temp", i)}
		}
		if len(iv.Weather) == 0 || iv.Weather[0].Description == nil {
			return nil, &PayloadError{Field: fmt.Sprintf("list[%d].weather[0].description", i)}
		}
		out = append(out, sample{
			time: time.Unix(*iv.Dt, 0).In(zone),
			temp: Round(temp),
			desc: *iv.Weather[0].Description,
		})
	}
	return out, nil
}

// Round rounds half up: 21.5 -> 22, -2.5 -> -2
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
