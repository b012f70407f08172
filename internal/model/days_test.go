package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gymapi/internal/errors"
)

func TestNormalizeDays(t *testing.T) {
	tests := []struct {
		name        string
		input       []int
		expected    DaysOfWeek
		expectError bool
	}{
		{name: "sorts and dedupes", input: []int{3, 1, 1, 5}, expected: DaysOfWeek{1, 3, 5}},
		{name: "already normalized", input: []int{0, 2, 4}, expected: DaysOfWeek{0, 2, 4}},
		{name: "empty list", input: []int{}, expected: DaysOfWeek{}},
		{name: "nil list", input: nil, expected: DaysOfWeek{}},
		{name: "full week", input: []int{6, 5, 4, 3, 2, 1, 0}, expected: DaysOfWeek{0, 1, 2, 3, 4, 5, 6}},
		{name: "rejects above range", input: []int{1, 7}, expectError: true},
		{name: "rejects negative", input: []int{-1, 2}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := NormalizeDays(tt.input)
			if tt.expectError {
				assert.ErrorIs(t, err, errors.ErrInvalidDaysOfWeek)
				assert.Nil(t, days)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, days)
			}
		})
	}
}

func TestDaysOfWeek_Scan(t *testing.T) {
	t.Run("bytes column", func(t *testing.T) {
		var d DaysOfWeek
		assert.NoError(t, d.Scan([]byte("[1,3,5]")))
		assert.Equal(t, DaysOfWeek{1, 3, 5}, d)
	})

	t.Run("string column", func(t *testing.T) {
		var d DaysOfWeek
		assert.NoError(t, d.Scan("[0,6]"))
		assert.Equal(t, DaysOfWeek{0, 6}, d)
	})

	t.Run("null column", func(t *testing.T) {
		var d DaysOfWeek
		assert.NoError(t, d.Scan(nil))
		assert.Equal(t, DaysOfWeek{}, d)
	})

	t.Run("unsupported type", func(t *testing.T) {
		var d DaysOfWeek
		assert.Error(t, d.Scan(42))
	})
}

func TestDaysOfWeek_Value(t *testing.T) {
	v, err := DaysOfWeek{1, 3, 5}.Value()
	assert.NoError(t, err)
	assert.JSONEq(t, "[1,3,5]", string(v.([]byte)))

	v, err = DaysOfWeek(nil).Value()
	assert.NoError(t, err)
	assert.JSONEq(t, "[]", string(v.([]byte)))
}
