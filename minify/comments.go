// Copyright 2014 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minify

import "strings"

const (
	commentOpen  = "<!--"
	commentClose = "-->"
)

// preserveMarkers are substrings indicating that a comment carries
// embedded script or conditional-compilation content (for example IE
// conditional comments) and must not be removed.
var preserveMarkers = []string{"{", "}", "function", "var", "[if", "[endif"}

// stripComments removes decorative HTML comments from s. An unterminated
// comment stops stripping, leaving the remainder of the document intact.
// A comment whose body contains a preserve marker is kept, and so is
// every comment after it: stripping stops at the first preserved comment.
func stripComments(s string) string {
	start := strings.Index(s, commentOpen)
	if start < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	pos := 0
	for start >= 0 {
		end := indexFrom(s, commentClose, start+len(commentOpen))
		if end < 0 {
			break
		}
		if containsAny(s[start+len(commentOpen):end], preserveMarkers) {
			break
		}
		b.WriteString(s[pos:start])
		pos = end + len(commentClose)
		start = indexFrom(s, commentOpen, pos)
	}
	b.WriteString(s[pos:])
	return b.String()
}
