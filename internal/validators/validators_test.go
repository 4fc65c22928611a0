package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	for in, want := range map[string]string{
		"(555) 123-4567":  "5551234567",
		"555.123.4567":    "5551234567",
		"+1 555 123 4567": "+15551234567",
	} {
		got, ok := NormalizePhone(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "12345", "555-CALL-NOW", "55+51234567"} {
		_, ok := NormalizePhone(in)
		assert.False(t, ok, in)
	}
}

func TestNormalizeEmail(t *testing.T) {
	got, ok := NormalizeEmail("  Jane@Example.COM ")
	assert.True(t, ok)
	assert.Equal(t, "jane@example.com", got)

	got, ok = NormalizeEmail("")
	assert.True(t, ok)
	assert.Empty(t, got)

	for _, in := range []string{"jane", "jane@localhost", "Jane <jane@example.com>"} {
		_, ok := NormalizeEmail(in)
		assert.False(t, ok, in)
	}
}
