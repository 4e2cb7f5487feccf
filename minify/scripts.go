// Copyright 2014 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minify

import "strings"

// templateTypes mark script elements whose bodies are client-side
// templates, not JavaScript. Matching is by substring of the opening tag.
var templateTypes = []string{"text/template", "text/x-", "text/html"}

// minifyElements rewrites the bodies of all elements with the given name
// ("script" or "style") in s through fn. The tag markup itself is left
// untouched. Empty and whitespace-only bodies are skipped, as are script
// elements declaring a template content type. A self-closing element (or
// one with no closing tag) has no body; scanning stops there.
func (m *Minifier) minifyElements(s, name string, fn MinifyFunc) string {
	open := "<" + name
	closing := "</" + name

	var b strings.Builder
	pos := 0
	for {
		start := indexFold(s, open, pos)
		if start < 0 {
			break
		}
		closeStart := indexFold(s, closing, start+len(open))
		selfClose := indexFrom(s, "/>", start+len(open))
		if closeStart < 0 || (selfClose >= 0 && selfClose < closeStart) {
			break
		}
		gt := tagEnd(s, start)
		if gt < 0 || gt > closeStart {
			break
		}
		body := s[gt+1 : closeStart]
		out := body
		if strings.TrimSpace(body) != "" && !(name == "script" && isTemplateTag(s[start:gt+1])) {
			out = apply(name, fn, body)
		}
		b.WriteString(s[pos : gt+1])
		b.WriteString(out)
		pos = closeStart
	}
	if pos == 0 {
		return s
	}
	b.WriteString(s[pos:])
	return b.String()
}

// isTemplateTag reports whether an opening script tag declares a
// non-executable templating content type.
func isTemplateTag(tag string) bool {
	tag = strings.ToLower(tag)
	for _, t := range templateTypes {
		if strings.Contains(tag, t) {
			return true
		}
	}
	return false
}
