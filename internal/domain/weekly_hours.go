package domain

import (
	"bytes"
	"database/sql/driver"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// WeekKeyPattern is the wire shape of a week key: four year digits, "-W"
// and two week digits, no signs.
var WeekKeyPattern = regexp.MustCompile(`^\d{4}-W\d{2}$`)

// WeeklyHours is the sparse week key -> hours map of an allocation.
//
// Decoding is lenient: anything that is not a JSON object decodes to an empty
// map, and entries with a malformed key, a non-numeric value or a negative or
// non-finite number are dropped. Decoding never fails.
type WeeklyHours map[string]float64

// Get returns the hours booked for week, 0 when absent.
func (w WeeklyHours) Get(week string) float64 {
	if w == nil {
		return 0
	}

	return w[week]
}

// ParseWeeklyHours decodes raw leniently.
func ParseWeeklyHours(raw []byte) WeeklyHours {
	out := WeeklyHours{}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return out
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return out
	}

	for key, value := range entries {
		if !WeekKeyPattern.MatchString(key) {
			continue
		}

		hours, ok := parseHours(value)
		if !ok {
			continue
		}

		out[key] = hours
	}

	return out
}

func parseHours(raw json.RawMessage) (float64, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, false
	}

	if s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return 0, false
		}

		s = strings.TrimSpace(unquoted)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}

	return v, true
}

func (w *WeeklyHours) UnmarshalJSON(data []byte) error {
	*w = ParseWeeklyHours(data)
	return nil
}

func (w WeeklyHours) MarshalJSON() ([]byte, error) {
	if w == nil {
		return []byte("{}"), nil
	}

	return json.Marshal(map[string]float64(w))
}

// Scan implements sql.Scanner for JSONB columns.
func (w *WeeklyHours) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		*w = ParseWeeklyHours(v)
	case string:
		*w = ParseWeeklyHours([]byte(v))
	default:
		*w = WeeklyHours{}
	}

	return nil
}

// Value implements driver.Valuer.
func (w WeeklyHours) Value() (driver.Value, error) {
	b, err := w.MarshalJSON()
	if err != nil {
		return nil, err
	}

	return string(b), nil
}
