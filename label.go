// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchplot

import (
	"strings"
	"unicode"
)

// DeriveLabel turns a series name into legend text: underscores become spaces
// and every run of cased letters is capitalized, so "zero_copy" becomes
// "Zero Copy". Cased letters following another cased letter are lowered;
// uncased characters such as digits or CJK ideographs start a new run.
// Applying DeriveLabel to its own output returns the same string.
func DeriveLabel(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	prevCased := false
	for _, r := range name {
		if r == '_' {
			r = ' '
		}
		c := cased(r)
		switch {
		case c && prevCased:
			sb.WriteRune(unicode.ToLower(r))
		case c:
			sb.WriteRune(unicode.ToTitle(r))
		default:
			sb.WriteRune(r)
		}
		prevCased = c
	}
	return sb.String()
}

func cased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}
