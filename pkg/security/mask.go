package security

import (
	"fmt"
	"strings"
)

const (
	pseudonymPrefix  = "Patient_"
	contactSuffixLen = 4
	maskChar         = "*"
)

// MaskName derives a stable pseudonym from a patient identifier. It is a
// function of the id alone, so the pseudonym survives renames and never
// leaks content from the real name.
func MaskName(id int64) string {
	return fmt.Sprintf("%s%d", pseudonymPrefix, id)
}

// MaskContact redacts a contact string, keeping only the trailing
// characters visible. Inputs at or below the visible suffix length come
// back fully masked.
func MaskContact(contact string) string {
	runes := []rune(contact)
	if len(runes) < contactSuffixLen {
		return strings.Repeat(maskChar, len(runes))
	}
	return strings.Repeat(maskChar, len(runes)-contactSuffixLen) + string(runes[len(runes)-contactSuffixLen:])
}
