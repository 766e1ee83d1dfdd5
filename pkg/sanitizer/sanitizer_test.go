package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authportal/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ana@example.com", sanitizer.NormalizeEmail("  Ana@Example.COM \n"))
	assert.Equal(t, "", sanitizer.NormalizeEmail("   "))
}

func TestSingleLine(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Ana Maria", sanitizer.SingleLine(" Ana\n\tMaria\x00 "))
	assert.Equal(t, "", sanitizer.SingleLine("\r\n"))
}

func TestMaxLength(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "João", sanitizer.MaxLength("João Silva", 4))
	assert.Equal(t, "ab", sanitizer.MaxLength("ab", 10))
	assert.Equal(t, "", sanitizer.MaxLength("ab", 0))
}

func TestMaskEmail(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"ana@example.com": "a**@example.com",
		"a@example.com":   "a@example.com",
		"élan@x.io":       "é***@x.io",
		"not-an-email":    "not-an-email",
		"@example.com":    "@example.com",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizer.MaskEmail(in), in)
	}
}
