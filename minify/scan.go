// Copyright 2014 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minify

import "strings"

// indexFrom returns the index of the first occurrence of sub in s at or
// after start, or -1 if there is none.
func indexFrom(s, sub string, start int) int {
	if start > len(s) {
		return -1
	}
	i := strings.Index(s[start:], sub)
	if i < 0 {
		return -1
	}
	return start + i
}

// indexFold is indexFrom with case-insensitive matching.
// sub must be lowercase ASCII.
func indexFold(s, sub string, start int) int {
	if len(sub) == 0 {
		return start
	}
	for i := start; i+len(sub) <= len(s); i++ {
		if lowerByte(s[i]) != sub[0] {
			continue
		}
		if strings.EqualFold(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

// hasPrefixFold reports whether s starts with prefix, ignoring ASCII case.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// tagEnd returns the index of the '>' that closes the tag starting at
// start, skipping quoted attribute values, or -1 if the tag never closes.
func tagEnd(s string, start int) int {
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '"', '\'':
			q := s[i]
			for i++; i < len(s) && s[i] != q; i++ {
			}
			if i == len(s) {
				return -1
			}
		case '>':
			return i
		}
	}
	return -1
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func lowerByte(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
