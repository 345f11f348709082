package model

import (
	"fmt"
	"strings"
)

// Color is the color attribute of a product.
type Color int

const (
	ColorRed Color = iota + 1
	ColorGreen
	ColorBlue
)

// String returns the upper-case color name.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "RED"
	case ColorGreen:
		return "GREEN"
	case ColorBlue:
		return "BLUE"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the defined colors.
func (c Color) Valid() bool { return c >= ColorRed && c <= ColorBlue }

// ParseColor converts a case-insensitive color name.
func ParseColor(s string) (Color, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RED":
		return ColorRed, nil
	case "GREEN":
		return ColorGreen, nil
	case "BLUE":
		return ColorBlue, nil
	default:
		return 0, fmt.Errorf("unknown color %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Size is the size attribute of a product.
type Size int

const (
	SizeSmall Size = iota + 1
	SizeMedium
	SizeLarge
)

// String returns the upper-case size name.
func (s Size) String() string {
	switch s {
	case SizeSmall:
		return "SMALL"
	case SizeMedium:
		return "MEDIUM"
	case SizeLarge:
		return "LARGE"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the defined sizes.
func (s Size) Valid() bool { return s >= SizeSmall && s <= SizeLarge }

// ParseSize converts a case-insensitive size name.
func ParseSize(s string) (Size, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SMALL":
		return SizeSmall, nil
	case "MEDIUM":
		return SizeMedium, nil
	case "LARGE":
		return SizeLarge, nil
	default:
		return 0, fmt.Errorf("unknown size %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Size) UnmarshalText(b []byte) error {
	v, err := ParseSize(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Product is a catalog item. Its attributes are fixed at construction.
type Product struct {
	name  string
	color Color
	size  Size
}

// NewProduct returns a product with the given attributes.
func NewProduct(name string, color Color, size Size) Product {
	return Product{name: name, color: color, size: size}
}

func (p Product) Name() string   { return p.name }
func (p Product) Color() Color   { return p.color }
func (p Product) Size() Size     { return p.size }
func (p Product) String() string { return fmt.Sprintf("%s (%s, %s)", p.name, p.color, p.size) }
