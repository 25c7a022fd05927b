package types

import (
	"errors"
	"fmt"
)

// DefaultDisplayNumber is used until the user confirms a different number.
const DefaultDisplayNumber DisplayNumber = "0000"

// DisplayNumberLength is the fixed number of digits in a DisplayNumber.
const DisplayNumberLength = 4

// ErrInvalidDisplayNumber is returned when a string is not exactly four ASCII digits.
var ErrInvalidDisplayNumber = errors.New("display number must be exactly 4 digits")

// DisplayNumber is the 4-digit identifier burned into captured photos.
//
// It is a string, not an integer: leading zeros are significant and the two
// halves are independent labels.
type DisplayNumber string

// ParseDisplayNumber validates s and returns it as a DisplayNumber.
func ParseDisplayNumber(s string) (DisplayNumber, error) {
	if len(s) != DisplayNumberLength {
		return "", fmt.Errorf("%w: got %q", ErrInvalidDisplayNumber, s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", fmt.Errorf("%w: got %q", ErrInvalidDisplayNumber, s)
		}
	}
	return DisplayNumber(s), nil
}

// String returns the string form of the number.
func (n DisplayNumber) String() string { return string(n) }

// Valid reports whether n is exactly four ASCII digits.
func (n DisplayNumber) Valid() bool {
	_, err := ParseDisplayNumber(string(n))
	return err == nil
}

// First returns the first two characters, drawn on the red half of the badge.
func (n DisplayNumber) First() string { return n.group(0) }

// Last returns the last two characters, drawn on the blue half of the badge.
func (n DisplayNumber) Last() string { return n.group(2) }

func (n DisplayNumber) group(from int) string {
	s := string(n)
	if len(s) < from+2 {
		s += "0000"[:from+2-len(s)]
	}
	return s[from : from+2]
}

// Digit returns the digit at position i, or 0 when it is absent or not a digit.
func (n DisplayNumber) Digit(i int) int {
	if i < 0 || i >= len(n) {
		return 0
	}
	c := n[i]
	if c < '0' || c > '9' {
		return 0
	}
	return int(c - '0')
}
