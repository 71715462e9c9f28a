package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ponsiv/internal/validate"
)

func TestEmail(t *testing.T) {
	for in, ok := range map[string]bool{
		"a@example.com":     true,
		"  ana.b@mail.es  ": true,
		"no-at-sign":        false,
		"a@b":               false,
		"":                  false,
	} {
		_, got := validate.Email(in)
		assert.Equal(t, ok, got, in)
	}
}

func TestPasswordCountsNonBlankRunes(t *testing.T) {
	assert.True(t, validate.Password("abcdef"))
	assert.True(t, validate.Password("ab cd ef"))
	assert.False(t, validate.Password("ab c  d"))
	assert.False(t, validate.Password("      "))
	assert.True(t, validate.Password("ñandú1"))
	assert.True(t, validate.Password(strings.Repeat("a", validate.MaxPassword)))
	assert.False(t, validate.Password(strings.Repeat("a", validate.MaxPassword+1)))
	assert.False(t, validate.Password(strings.Repeat("ñ", 37)), "74 bytes")
}

func TestNonEmpty(t *testing.T) {
	v, ok := validate.NonEmpty("  Ana ")
	assert.True(t, ok)
	assert.Equal(t, "Ana", v)

	_, ok = validate.NonEmpty("   ")
	assert.False(t, ok)
}

func TestQtyClamps(t *testing.T) {
	assert.Equal(t, 1, validate.Qty("abc"))
	assert.Equal(t, 1, validate.Qty("-3"))
	assert.Equal(t, 4, validate.Qty(" 4 "))
	assert.Equal(t, 50, validate.Qty("999"))
	assert.Equal(t, 1, validate.ClampQty(0))
	assert.Equal(t, 7, validate.ClampQty(7))
}

func TestID(t *testing.T) {
	_, ok := validate.ID("CAMISA_AZUL")
	assert.True(t, ok)
	_, ok = validate.ID("look_0b6f2c1e-8f1a-4c16-9d8e-1f2a3b4c5d6e")
	assert.True(t, ok)
	_, ok = validate.ID("../etc")
	assert.False(t, ok)
	_, ok = validate.ID("..")
	assert.False(t, ok)
}

func TestQ(t *testing.T) {
	q, ok := validate.Q("  camisa azul ")
	assert.True(t, ok)
	assert.Equal(t, "camisa azul", q)
	_, ok = validate.Q("<script>")
	assert.False(t, ok)
}
