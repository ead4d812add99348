// Package slot models costume slots ("c00", "c12") and slot mappings.
package slot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	rerrors "github.com/provide-io/reslot/pkg/reslot/errors"
)

// NativeCount is the number of costume slots the base game ships per fighter.
const NativeCount = 8

// MaxSlot bounds parsed slot numbers.
const MaxSlot = 255

// ID is a costume slot index. Slots 0-7 are native, 8 and above are added.
type ID int

// String returns the canonical form, e.g. "c02" or "c12".
func (s ID) String() string {
	return "c" + s.Digits()
}

// Digits returns the zero-padded number without the prefix, e.g. "02".
func (s ID) Digits() string {
	return fmt.Sprintf("%02d", int(s))
}

// Added reports whether the slot lies beyond the game's native range.
func (s ID) Added() bool {
	return int(s) >= NativeCount
}

// Native folds the slot into the native range.
func (s ID) Native() ID {
	return ID(int(s) % NativeCount)
}

// Parse accepts "c02", "C02", "+c02", "02" or "2".
func Parse(raw string) (ID, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "+", "")
	s = strings.TrimPrefix(strings.ToLower(s), "c")
	if s == "" {
		return 0, fmt.Errorf("%w: %q", rerrors.ErrInvalidSlot, raw)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > MaxSlot {
		return 0, fmt.Errorf("%w: %q", rerrors.ErrInvalidSlot, raw)
	}
	return ID(n), nil
}

// MustParse is Parse for constants and tests.
func MustParse(raw string) ID {
	id, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// tokenPattern matches the first-digit-zero slot token used by vanilla paths.
// Only the first occurrence is ever replaced; later tokens may belong to
// unrelated identifiers.
var tokenPattern = regexp.MustCompile(`c0[0-9]`)

// ReplaceFirstToken swaps the first slot token in path for target.
func ReplaceFirstToken(path string, target ID) string {
	loc := tokenPattern.FindStringIndex(path)
	if loc == nil {
		return path
	}
	return path[:loc[0]] + target.String() + path[loc[1]:]
}
