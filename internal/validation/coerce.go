package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Number is a float64 that also accepts numeric-like JSON strings, matching
// the coercion the admin form relies on (price arrives as "5").
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	*n = Number(f)
	return nil
}

// Count is a non-fractional Number used for stock quantities.
type Count int

// UnmarshalJSON implements json.Unmarshaler.
func (c *Count) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*c = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return fmt.Errorf("invalid integer %q", s)
	}
	*c = Count(int(f))
	return nil
}

// FlexTime accepts RFC3339 timestamps or plain dates.
type FlexTime time.Time

// UnmarshalJSON implements json.Unmarshaler.
func (t *FlexTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "null" || s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = FlexTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

// TimePtr returns the wrapped time, or nil for an absent value.
func (t *FlexTime) TimePtr() *time.Time {
	if t == nil {
		return nil
	}
	converted := time.Time(*t)
	if converted.IsZero() {
		return nil
	}
	return &converted
}
