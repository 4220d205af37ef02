package budget

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

const (
	kib = 1024
	mib = 1024 * kib
	gib = 1024 * mib
)

var sizePattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*(%|(?:[mMkKgG])?[bB])?\s*$`)

// ParseSize converts a size expression into a byte count.
//
// expr is a non-negative decimal followed by an optional unit: b, kb, mb, gb
// (any case) or %. A non-empty baseline is parsed as a plain size (no %) and,
// when it is greater than zero, the result is baseline + dir*value, with %
// taken relative to the baseline. With no baseline (or a zero one) the raw
// value is returned, so a percentage without baseline is 0 bytes.
//
// The result is rounded to the nearest byte.
func ParseSize(expr, baseline string, dir Direction) (int64, error) {
	var base float64
	if strings.TrimSpace(baseline) != "" {
		b, unit, err := parseValue(baseline)
		if err != nil {
			return 0, fmt.Errorf("baseline: %w", err)
		}
		if unit == "%" {
			return 0, fmt.Errorf("baseline: %w: %q is relative", ErrMalformedSize, baseline)
		}
		base = b
	}

	value, unit, err := parseValue(expr)
	if err != nil {
		return 0, err
	}
	if unit == "%" {
		value = base * value / 100
	}
	// TODO: a zero baseline makes relative budgets absolute; decide whether to reject it instead.
	if base == 0 {
		return toBytes(value, expr)
	}
	return toBytes(base+value*float64(dir), expr)
}

// parseValue returns the absolute byte value of expr (percentages are returned
// as the bare number) and its lower-case unit.
func parseValue(expr string) (float64, string, error) {
	m := sizePattern.FindStringSubmatch(expr)
	if m == nil {
		return 0, "", fmt.Errorf("%w: %q", ErrMalformedSize, expr)
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %q: %v", ErrMalformedSize, expr, err)
	}
	unit := strings.ToLower(m[2])
	switch unit {
	case "kb":
		value *= kib
	case "mb":
		value *= mib
	case "gb":
		value *= gib
	}
	return value, unit, nil
}

func toBytes(value float64, expr string) (int64, error) {
	n, err := safecast.Round[int64](value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrSizeOverflow, expr, err)
	}
	return n, nil
}
