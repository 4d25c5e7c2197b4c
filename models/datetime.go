// ABOUTME: Nullable timestamp type tolerant of loosely-formatted imported data
// ABOUTME: Accepts RFC3339, datetime-local and date-only strings without failing a load

package models

import (
	"encoding/json"
	"strings"
	"time"
)

// dateLayouts are the formats earlier versions of the workbook wrote:
// full ISO timestamps, datetime-local form values, and bare dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// DateTime is a nullable timestamp. Unparseable values survive a load with
// Valid=false and the original text kept for the integrity checker to
// report; they never fail the whole collection.
type DateTime struct {
	Present bool
	Valid   bool
	Time    time.Time
	Raw     string
}

// DT wraps a concrete time.
func DT(t time.Time) DateTime {
	return DateTime{Present: true, Valid: true, Time: t}
}

// ParseDateTime parses a stored date string into a DateTime.
func ParseDateTime(s string) DateTime {
	s = strings.TrimSpace(s)
	if s == "" {
		return DateTime{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateTime{Present: true, Valid: true, Time: t}
		}
	}
	return DateTime{Present: true, Raw: s}
}

// Date truncates to the calendar date key used for bucketing.
func (d DateTime) Date() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format("2006-01-02")
}

func (d DateTime) String() string {
	if !d.Present {
		return ""
	}
	if d.Valid {
		return d.Time.Format("2006-01-02 15:04")
	}
	return d.Raw
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if !d.Present {
		return []byte("null"), nil
	}
	if d.Valid {
		return json.Marshal(d.Time.Format(time.RFC3339))
	}
	return json.Marshal(d.Raw)
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	*d = DateTime{}
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		d.Present = true
		d.Raw = string(b)
		return nil
	}
	*d = ParseDateTime(s)
	return nil
}
