// Package weather turns raw forecast feeds into the report shapes shown to users.
// All functions are pure; the payload is never modified.
package weather

import (
	"encoding/json"
	"fmt"

	"weathercat/internal/domain"
)

// Payload is the subset of the 5-day/3-hour forecast response the bot reads.
// Fields are pointers so that absent keys can be told apart from zero values.
type Payload struct {
	City *City      `json:"city"`
	List []Interval `json:"list"`
}

// City is the payload header
type City struct {
	Name     *string `json:"name"`
	Country  *string `json:"country"`
	Timezone *int64  `json:"timezone"` // seconds east of UTC
}

// Interval is one fixed-granularity forecast sample
type Interval struct {
	Dt      *int64       `json:"dt"`
	Main    *Main        `json:"main"`
	Weather []Conditions `json:"weather"`
}

// Main carries the interval temperature
type Main struct {
	Temp *float64 `json:"temp"`
}

// Conditions carries the human readable description
type Conditions struct {
	Description *string `json:"description"`
}

// PayloadError reports the first missing or malformed field
type PayloadError struct {
	Field string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("%s: missing or invalid %s", domain.ErrMalformedPayload, e.Field)
}

// Is makes PayloadError match domain.ErrMalformedPayload
func (e *PayloadError) Is(target error) bool {
	return target == domain.ErrMalformedPayload
}

// DecodePayload parses a raw provider response
func DecodePayload(raw []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	return p, nil
}
