package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskNameDeterministic(t *testing.T) {
	assert.Equal(t, MaskName(1), MaskName(1))
	assert.Equal(t, MaskName(42), MaskName(42))
}

func TestMaskNameDistinctPerID(t *testing.T) {
	seen := make(map[string]bool)
	for id := int64(1); id <= 100; id++ {
		name := MaskName(id)
		assert.False(t, seen[name], "pseudonym %s repeated", name)
		seen[name] = true
	}
}

func TestMaskNameIgnoresContent(t *testing.T) {
	// The pseudonym carries nothing from the real name, only the id.
	assert.Equal(t, "Patient_7", MaskName(7))
}

func TestMaskContactPreservesSuffix(t *testing.T) {
	masked := MaskContact("5551234567")
	assert.Equal(t, "******4567", masked)
	assert.True(t, strings.HasSuffix(masked, "4567"))
	assert.Equal(t, strings.Repeat("*", 6), masked[:6])
}

func TestMaskContactExactSuffixLength(t *testing.T) {
	assert.Equal(t, "1234", MaskContact("1234"))
}

func TestMaskContactShortInput(t *testing.T) {
	assert.Equal(t, "***", MaskContact("123"))
	assert.Equal(t, "", MaskContact(""))
}
