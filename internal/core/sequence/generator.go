// Package sequence provides the contract for human-readable code
// generation (B000001, P0001, ...). Implementations live in the
// infrastructure layer and must be safe under concurrent callers.
package sequence

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Config holds code generation configuration for one code family.
type Config struct {
	// Prefix added to all codes (e.g. "B", "P")
	Prefix string

	// PadWidth is the zero-padded number width (default 4)
	PadWidth int
}

// Code families used across the service.
var (
	Bills    = Config{Prefix: "B", PadWidth: 6}
	Products = Config{Prefix: "P", PadWidth: 4}
	Expenses = Config{Prefix: "E", PadWidth: 4}
	Roles    = Config{Prefix: "R", PadWidth: 4}
	Users    = Config{Prefix: "U", PadWidth: 4}
)

// Generator produces strictly increasing codes for a code family.
//
// Implementations must make the increment atomic: two concurrent calls
// for the same family never return the same code.
type Generator interface {
	// Next returns the next code for the family, e.g. "B000008" after
	// "B000007".
	Next(ctx context.Context, cfg Config) (string, error)

	// SetNext forces the next numeric value (for migration purposes).
	SetNext(ctx context.Context, cfg Config, value int64) error
}

// Format renders a numeric value as a code.
func Format(cfg Config, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 4
	}
	return fmt.Sprintf("%s%0*d", cfg.Prefix, padWidth, num)
}

// ParseNumber extracts the numeric part from a formatted code.
// Returns -1 if parsing fails.
func ParseNumber(cfg Config, code string) int64 {
	rest, ok := strings.CutPrefix(code, cfg.Prefix)
	if !ok {
		return -1
	}
	num, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return -1
	}
	return num
}
