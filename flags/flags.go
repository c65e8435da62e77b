// Copyright © 2024 The ELPS authors

// Package flags decomposes the member values of flags enums into their
// individual bits. Each of the eight integer widths is handled in its own
// type so that signed values never sign-extend into bits the width does not
// have.
package flags

import (
	"errors"
	"fmt"
	"unsafe"

	"fortio.org/safecast"
	"github.com/luthersystems/fixkit/semantic"
)

var (
	// ErrUnsupportedWidth is returned for an enum underlying type that is
	// not one of the eight integer types.
	ErrUnsupportedWidth = errors.New("unsupported enum underlying type")
	// ErrNotIntegral is returned for a member constant that is not an
	// integer.
	ErrNotIntegral = errors.New("enum constant is not integral")
)

// Integer is the set of enum underlying types.
type Integer interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

// IsComposite reports whether more than one bit is set in v.
func IsComposite[T Integer](v T) bool {
	return v != 0 && v&(v-1) != 0
}

// Decompose returns the single-bit values set in v, lowest bit first. For a
// signed type the sign bit decomposes to the type's minimum value.
func Decompose[T Integer](v T) []T {
	var out []T
	one := T(1)
	bits := int(unsafe.Sizeof(v)) * 8
	for i := 0; i < bits; i++ {
		b := one << i
		if v&b != 0 {
			out = append(out, b)
		}
	}
	return out
}

// Finding is a bit of a composite member value that no member declares.
type Finding struct {
	// Index of the composite member.
	Index int
	// Value is the missing bit in decimal.
	Value string
}

// Undefined returns, for every non-zero composite value, each bit of it
// that is not itself the value of some member.
func Undefined[T Integer](values []T) []Finding {
	declared := make(map[T]bool, len(values))
	for _, v := range values {
		declared[v] = true
	}
	var out []Finding
	for i, v := range values {
		if !IsComposite(v) {
			continue
		}
		for _, b := range Decompose(v) {
			if !declared[b] {
				out = append(out, Finding{Index: i, Value: fmt.Sprint(b)})
			}
		}
	}
	return out
}

// UndefinedFlags converts member constants to the enum's underlying width
// and runs Undefined over them. A nil constant, a member without a value,
// counts as zero. SpecialNone is treated as the default Int32.
func UndefinedFlags(underlying semantic.SpecialType, values []any) ([]Finding, error) {
	switch underlying {
	case semantic.SpecialSByte:
		return undefined[int8](values)
	case semantic.SpecialByte:
		return undefined[uint8](values)
	case semantic.SpecialInt16:
		return undefined[int16](values)
	case semantic.SpecialUInt16:
		return undefined[uint16](values)
	case semantic.SpecialInt32, semantic.SpecialNone:
		return undefined[int32](values)
	case semantic.SpecialUInt32:
		return undefined[uint32](values)
	case semantic.SpecialInt64:
		return undefined[int64](values)
	case semantic.SpecialUInt64:
		return undefined[uint64](values)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedWidth, underlying)
}

func undefined[T Integer](values []any) ([]Finding, error) {
	vs := make([]T, len(values))
	for i, v := range values {
		c, err := convert[T](v)
		if err != nil {
			return nil, fmt.Errorf("member %d: %w", i, err)
		}
		vs[i] = c
	}
	return Undefined(vs), nil
}

func convert[T Integer](v any) (T, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return safecast.Conv[T](x)
	case uint64:
		return safecast.Conv[T](x)
	case rune:
		return safecast.Conv[T](x)
	}
	return 0, fmt.Errorf("%w: %T", ErrNotIntegral, v)
}
