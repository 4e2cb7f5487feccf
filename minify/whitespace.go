// Copyright 2014 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minify

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// blockNames are element names whose surrounding whitespace carries no
// rendering significance. Elements not listed here are treated as inline:
// a single separating space around them is preserved.
var blockNames = []string{
	"html", "head", "body", "title", "meta", "link",
	"div", "p", "blockquote",
	"ul", "ol", "li",
	"table", "thead", "tbody", "tfoot", "tr", "td", "th",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"section", "article", "header", "footer", "nav", "aside", "main",
	"form", "fieldset", "noscript",
	"script", "style",
	"br", "hr",
}

// blockOpen and blockClose hold the tag-start markers ("<div", "</div")
// for every block element. Built once at startup, read-only afterwards.
var blockOpen, blockClose []string

func init() {
	blockOpen = make([]string, len(blockNames))
	blockClose = make([]string, len(blockNames))
	for i, name := range blockNames {
		blockOpen[i] = "<" + name
		blockClose[i] = "</" + name
	}
}

// collapseWhitespace splits s on whitespace and re-joins the tokens,
// keeping a single space between inline content and removing all
// whitespace adjacent to block-element tags. The result contains no two
// adjacent whitespace characters, no whitespace other than spaces, and at
// most one space at each end. A document with no whitespace is returned
// unchanged; an all-whitespace document collapses to the empty string.
func collapseWhitespace(s string) string {
	if s == "" {
		return s
	}
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return ""
	}
	if len(tokens) == 1 && len(tokens[0]) == len(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	first, _ := utf8.DecodeRuneInString(s)
	// True when the previous position abuts a block tag (or the start of
	// a document with no leading gap), so no space needs reintroducing.
	blockAdjacent := !unicode.IsSpace(first)
	for i, tok := range tokens {
		if !blockAdjacent && !startsWithBlockTag(tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
		blockAdjacent = endsWithBlockTag(tokens, i)
	}
	last, _ := utf8.DecodeLastRuneInString(s)
	if !blockAdjacent && unicode.IsSpace(last) {
		b.WriteByte(' ')
	}
	return b.String()
}

// startsWithBlockTag reports whether tok begins with the opening or
// closing tag of a block element. Matching is prefix-based: it is
// deliberately loose, trading exactness for never having to parse tags.
func startsWithBlockTag(tok string) bool {
	if len(tok) == 0 || tok[0] != '<' {
		return false
	}
	markers := blockOpen
	if len(tok) > 1 && tok[1] == '/' {
		markers = blockClose
	}
	for _, m := range markers {
		if hasPrefixFold(tok, m) {
			return true
		}
	}
	return false
}

// endsWithBlockTag reports whether the token at index i ends with a
// complete block-element tag. Attribute whitespace may have split the tag
// across tokens, so when the token closes a tag without containing its
// '<', earlier tokens are scanned backward for the tag start.
func endsWithBlockTag(tokens []string, i int) bool {
	if !strings.HasSuffix(tokens[i], ">") {
		return false
	}
	for j := i; j >= 0; j-- {
		k := strings.LastIndexByte(tokens[j], '<')
		if k < 0 {
			continue
		}
		return startsWithBlockTag(tokens[j][k:])
	}
	return false
}
