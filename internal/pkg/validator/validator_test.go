package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2026-08-31")
	assert.True(t, ok)

	for _, bad := range []string{"31-08-2026", "2026/08/31", "2026-13-01", "2026-08-32", "", "today"} {
		_, ok := IsValidDate(bad)
		assert.False(t, ok, "expected %q to be rejected", bad)
	}
}

func TestIsValidClockTime(t *testing.T) {
	for _, good := range []string{"00:00", "08:30", "18:05", "23:59"} {
		assert.True(t, IsValidClockTime(good), "expected %q to be accepted", good)
	}
	for _, bad := range []string{"24:00", "8:30", "08:60", "08:30:00", "", "noon"} {
		assert.False(t, IsValidClockTime(bad), "expected %q to be rejected", bad)
	}
}

func TestClockHour(t *testing.T) {
	h, ok := ClockHour("08:45")
	assert.True(t, ok)
	assert.Equal(t, 8, h)

	h, ok = ClockHour("23:01")
	assert.True(t, ok)
	assert.Equal(t, 23, h)

	_, ok = ClockHour("")
	assert.False(t, ok)
	_, ok = ClockHour("25:00")
	assert.False(t, ok)
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "must be YYYY-MM-DD"},
		{Field: "status", Message: "is required"},
	}

	m := errs.ToMap()
	assert.Equal(t, "must be YYYY-MM-DD", m["date"])
	assert.Equal(t, "is required", m["status"])
	assert.Contains(t, errs.Error(), "date: must be YYYY-MM-DD")
}
