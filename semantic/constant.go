// Copyright © 2024 The ELPS authors

package semantic

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/luthersystems/fixkit/syntax"
)

// LiteralValue returns the value of a literal expression.
func LiteralValue(n *syntax.Node) (any, bool) {
	switch n.Kind() {
	case syntax.TrueLiteralExpression:
		return true, true
	case syntax.FalseLiteralExpression:
		return false, true
	case syntax.NullLiteralExpression:
		return nil, true
	case syntax.NumericLiteralExpression:
		return parseNumber(n.Token().Text())
	case syntax.StringLiteralExpression:
		return ParseStringLiteral(n.Token().Text())
	case syntax.CharacterLiteralExpression:
		s := n.Token().Text()
		if len(s) < 3 || s[0] != '\'' || s[len(s)-1] != '\'' {
			return nil, false
		}
		v, err := strconv.Unquote(`"` + strings.ReplaceAll(s[1:len(s)-1], `"`, `\"`) + `"`)
		if err != nil || utf8.RuneCountInString(v) != 1 {
			return nil, false
		}
		r, _ := utf8.DecodeRuneInString(v)
		return r, true
	}
	return nil, false
}

// NumericLiteralType returns the special type of a numeric literal's text.
func NumericLiteralType(s string) SpecialType {
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0b"):
		return integerSuffixType(lower)
	case strings.HasSuffix(lower, "f"):
		return SpecialSingle
	case strings.HasSuffix(lower, "d"):
		return SpecialDouble
	case strings.HasSuffix(lower, "m"):
		return SpecialDecimal
	case strings.ContainsAny(lower, ".e"):
		return SpecialDouble
	}
	return integerSuffixType(lower)
}

func integerSuffixType(lower string) SpecialType {
	switch {
	case strings.HasSuffix(lower, "ul") || strings.HasSuffix(lower, "lu"):
		return SpecialUInt64
	case strings.HasSuffix(lower, "l"):
		return SpecialInt64
	case strings.HasSuffix(lower, "u"):
		return SpecialUInt32
	}
	return SpecialInt32
}

func parseNumber(s string) (any, bool) {
	st := NumericLiteralType(s)
	lower := strings.ReplaceAll(strings.ToLower(s), "_", "")
	switch st {
	case SpecialSingle, SpecialDouble, SpecialDecimal:
		lower = strings.TrimRight(lower, "fdm")
		f, err := strconv.ParseFloat(lower, 64)
		return f, err == nil
	}
	lower = strings.TrimRight(lower, "ul")
	u, err := strconv.ParseUint(lower, 0, 64)
	if err != nil {
		return nil, false
	}
	if st.IsUnsigned() {
		return u, true
	}
	if u > 1<<63-1 {
		return u, true
	}
	return int64(u), true
}

// ParseStringLiteral returns the value of a regular or verbatim string
// literal as it appears in source.
func ParseStringLiteral(s string) (string, bool) {
	if IsVerbatimString(s) {
		body := s[2 : len(s)-1]
		return strings.ReplaceAll(body, `""`, `"`), true
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	v, err := strconv.Unquote(s)
	if err != nil {
		return "", false
	}
	return v, true
}

// IsVerbatimString reports whether literal text s is a verbatim string
// (@"...").
func IsVerbatimString(s string) bool {
	return len(s) >= 3 && s[0] == '@' && s[1] == '"' && s[len(s)-1] == '"'
}

// Int64Value converts an integral constant to int64.
func Int64Value(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case uint64:
		return int64(x), true
	case rune:
		return int64(x), true
	}
	return 0, false
}

// Uint64Value returns the two's complement bits of an integral constant.
func Uint64Value(v any) (uint64, bool) {
	switch x := v.(type) {
	case int64:
		return uint64(x), true
	case uint64:
		return x, true
	case rune:
		return uint64(x), true
	}
	return 0, false
}

// IsDefaultValue reports whether v is the default value of its type: zero,
// false, the null character or null.
func IsDefaultValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case int64:
		return x == 0
	case uint64:
		return x == 0
	case float64:
		return x == 0
	case rune:
		return x == 0
	}
	return false
}
