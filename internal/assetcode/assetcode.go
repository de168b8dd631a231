// Package assetcode derives the fixed 12-character ledger asset codes used
// for ticket categories. A code is composed of a size-class prefix, the
// event sequence in hex padded to 3 digits with 'X', and the per-event
// ticket sequence in hex zero-padded to the size-class width.
package assetcode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Size selects how many hex digits of the code are reserved for the
// per-event ticket sequence.
type Size string

const (
	SizeMedium Size = "medium"  // ENTRY + 4 hex digits
	SizeLarge  Size = "large"   // ENTR + 5 hex digits
	SizeXLarge Size = "x-large" // TIX + 6 hex digits
)

// CodeLength is fixed across all size classes; the ledger rejects asset
// codes longer than 12 characters.
const CodeLength = 12

// MaxEventSequence is the largest event sequence expressible in the
// 3-digit event field.
const MaxEventSequence = 0xFFF

const eventDigits = 3

var (
	ErrAllocationOverflow = errors.New("sequence exceeds asset code capacity")
	ErrInvalidSize        = errors.New("invalid size class")
)

func (s Size) prefix() string {
	switch s {
	case SizeMedium:
		return "ENTRY"
	case SizeLarge:
		return "ENTR"
	case SizeXLarge:
		return "TIX"
	}
	return ""
}

func (s Size) ticketDigits() int {
	switch s {
	case SizeMedium:
		return 4
	case SizeLarge:
		return 5
	case SizeXLarge:
		return 6
	}
	return 0
}

// Valid reports whether s is one of the known size classes.
func (s Size) Valid() bool {
	return s == SizeMedium || s == SizeLarge || s == SizeXLarge
}

// Capacity returns the largest ticket sequence expressible under this
// size class.
func (s Size) Capacity() uint32 {
	if !s.Valid() {
		return 0
	}
	return uint32(1)<<(4*s.ticketDigits()) - 1
}

// Encode derives the asset code for the given event and ticket sequence.
// It is pure: identical inputs always produce the identical code.
//
// The event field is padded with the literal character 'X' rather than
// zero. Codes already minted on the ledger use this padding, so it must
// be preserved exactly.
func Encode(eventSeq, ticketSeq uint32, size Size) (string, error) {
	if !size.Valid() {
		return "", fmt.Errorf("%q: %w", size, ErrInvalidSize)
	}
	if eventSeq == 0 || eventSeq > MaxEventSequence {
		return "", fmt.Errorf("event sequence %d: %w", eventSeq, ErrAllocationOverflow)
	}
	if ticketSeq == 0 || ticketSeq > size.Capacity() {
		return "", fmt.Errorf("ticket sequence %d (size %s): %w", ticketSeq, size, ErrAllocationOverflow)
	}

	code := size.prefix() +
		padLeft(hexUpper(eventSeq), eventDigits, 'X') +
		padLeft(hexUpper(ticketSeq), size.ticketDigits(), '0')

	// The bounds checks above make any other length impossible.
	if len(code) != CodeLength {
		return "", fmt.Errorf("code %q is %d characters: %w", code, len(code), ErrAllocationOverflow)
	}
	return code, nil
}

func hexUpper(v uint32) string {
	return strings.ToUpper(strconv.FormatUint(uint64(v), 16))
}

func padLeft(s string, width int, pad byte) string {
	for len(s) < width {
		s = string(pad) + s
	}
	return s
}
