// ABOUTME: Nullable age type tolerant of loosely-typed imported data
// ABOUTME: Accepts numbers, numeric strings, or junk without failing a collection load

package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Age is a nullable age. Data imported from earlier versions of the
// workbook stores ages as numbers, numeric strings, or occasionally junk;
// unmarshaling never fails, and the integrity checker flags bad values
// instead.
type Age struct {
	// Present is false for null or absent values.
	Present bool
	// Valid is true when the value parsed as a number.
	Valid bool
	// Value holds the parsed number when Valid.
	Value float64
	// Raw keeps the original text when not numeric, for reporting.
	Raw string
}

// AgeOf builds a valid Age from a plain number.
func AgeOf(v float64) Age {
	return Age{Present: true, Valid: true, Value: v}
}

// InRange reports whether the age is numeric and within sane bounds.
func (a Age) InRange() bool {
	return a.Valid && a.Value >= 0 && a.Value <= 150
}

func (a Age) String() string {
	if !a.Present {
		return ""
	}
	if a.Valid {
		return strconv.FormatFloat(a.Value, 'f', -1, 64)
	}
	return a.Raw
}

func (a Age) MarshalJSON() ([]byte, error) {
	if !a.Present {
		return []byte("null"), nil
	}
	if a.Valid {
		return json.Marshal(a.Value)
	}
	return json.Marshal(a.Raw)
}

func (a *Age) UnmarshalJSON(b []byte) error {
	*a = Age{}
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		return nil
	}
	a.Present = true

	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		a.Valid = true
		a.Value = n
		return nil
	}

	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			a.Valid = true
			a.Value = n
			return nil
		}
		a.Raw = str
		return nil
	}

	a.Raw = s
	return nil
}
