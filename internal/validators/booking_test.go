package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	got, ok := NormalizeDate(" 2024-01-10 ")
	assert.True(t, ok)
	assert.Equal(t, "2024-01-10", got)

	for _, bad := range []string{"", "10-01-2024", "2024-13-01", "2024-02-30"} {
		_, ok := NormalizeDate(bad)
		assert.False(t, ok, bad)
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := map[string]string{
		"10:00":    "10:00",
		"09:30:00": "09:30",
		" 23:59 ":  "23:59",
	}
	for in, want := range tests {
		got, ok := NormalizeTime(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}

	for _, bad := range []string{"", "24:00", "10:00:30", "10h"} {
		_, ok := NormalizeTime(bad)
		assert.False(t, ok, bad)
	}
}

func TestIsPhoneValid(t *testing.T) {
	assert.True(t, IsPhoneValid("555-1111"))
	assert.True(t, IsPhoneValid("+1 (555) 123-4567"))
	assert.False(t, IsPhoneValid("555"))
	assert.False(t, IsPhoneValid("555-CALL-NOW"))
	assert.False(t, IsPhoneValid("1234567890123456"))
}
