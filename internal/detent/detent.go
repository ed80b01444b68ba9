// Package detent defines the heights a sheet can rest at and parses them
// from configuration text.
package detent

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant of a Detent
type Kind uint8

const (
	// KindNone is the absent detent
	KindNone Kind = iota
	// KindMedium is half the container
	KindMedium
	// KindLarge is the full container below the top margin
	KindLarge
	// KindConstant is a fixed height in container units
	KindConstant
)

var (
	// ErrInvalidHeight is returned for constant detents whose height is not a positive number
	ErrInvalidHeight = errors.New("constant detent height must be positive")
	// ErrEmptyDetents is returned when a sheet is configured without any detent
	ErrEmptyDetents = errors.New("detents must contain at least one element")
	// ErrUnknownDetent is returned by Parse for unrecognised input
	ErrUnknownDetent = errors.New("unknown detent")
)

// Detent is a height at which a sheet naturally rests.
// The zero value is None and stands for "no detent" wherever a detent is optional.
type Detent struct {
	kind   Kind
	height float64
}

// None is the absent detent
var None = Detent{}

// Medium returns the medium detent (half the container)
func Medium() Detent { return Detent{kind: KindMedium} }

// Large returns the large detent (full container minus the top margin)
func Large() Detent { return Detent{kind: KindLarge} }

// Constant returns a detent with a fixed height. Use Validate to check the height.
func Constant(height float64) Detent {
	return Detent{kind: KindConstant, height: height}
}

// Kind returns the detent variant
func (d Detent) Kind() Kind { return d.kind }

// IsZero reports whether d is None
func (d Detent) IsZero() bool { return d.kind == KindNone }

// Height returns the payload of a constant detent
func (d Detent) Height() (float64, bool) {
	if d.kind != KindConstant {
		return 0, false
	}
	return d.height, true
}

// Validate checks the detent payload
func (d Detent) Validate() error {
	switch d.kind {
	case KindMedium, KindLarge:
		return nil
	case KindConstant:
		if math.IsNaN(d.height) || math.IsInf(d.height, 0) || d.height <= 0 {
			return fmt.Errorf("%w: %v", ErrInvalidHeight, d.height)
		}
		return nil
	default:
		return fmt.Errorf("%w: none", ErrUnknownDetent)
	}
}

func (d Detent) String() string {
	switch d.kind {
	case KindMedium:
		return "medium"
	case KindLarge:
		return "large"
	case KindConstant:
		return "constant:" + strconv.FormatFloat(d.height, 'f', -1, 64)
	default:
		return "none"
	}
}

// Parse reads a detent from its textual form: "medium", "large",
// "constant:<height>" or a bare height. The empty string and "none" yield None.
func Parse(s string) (Detent, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none":
		return None, nil
	case "medium":
		return Medium(), nil
	case "large":
		return Large(), nil
	}

	raw := strings.TrimPrefix(s, "constant:")
	h, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return None, fmt.Errorf("%w: %q", ErrUnknownDetent, s)
	}
	d := Constant(h)
	if err := d.Validate(); err != nil {
		return None, err
	}
	return d, nil
}

// MarshalText implements encoding.TextMarshaler
func (d Detent) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte(""), nil
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Detent) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Contains reports whether list holds d
func Contains(list []Detent, d Detent) bool {
	for _, item := range list {
		if item == d {
			return true
		}
	}
	return false
}

// ValidateList checks that list is non-empty and every entry is valid
func ValidateList(list []Detent) error {
	if len(list) == 0 {
		return ErrEmptyDetents
	}
	for i, d := range list {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("detent %d: %w", i, err)
		}
	}
	return nil
}
