package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"

	"gymapi/internal/errors"
)

// DaysOfWeek is a normalized set of weekday numbers (0..6, weekday zero
// defined by the consuming client). Stored as a JSON array in MySQL.
type DaysOfWeek []int

// NormalizeDays validates and normalizes a raw weekday list: every value must
// lie within 0..6; the result is sorted ascending with duplicates removed.
func NormalizeDays(raw []int) (DaysOfWeek, error) {
	seen := make(map[int]bool, len(raw))
	days := make(DaysOfWeek, 0, len(raw))
	for _, d := range raw {
		if d < 0 || d > 6 {
			return nil, errors.ErrInvalidDaysOfWeek
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	sort.Ints(days)
	return days, nil
}

// Value implements driver.Valuer.
func (d DaysOfWeek) Value() (driver.Value, error) {
	if d == nil {
		d = DaysOfWeek{}
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner.
func (d *DaysOfWeek) Scan(value interface{}) error {
	if value == nil {
		*d = DaysOfWeek{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported days_of_week column type %T", value)
	}
	return json.Unmarshal(data, d)
}
