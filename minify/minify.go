// Copyright 2014 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package minify rewrites complete HTML documents to reduce their size:
// it strips decorative comments, minifies the bodies of script and style
// elements with external minifiers, and collapses insignificant
// whitespace.
//
// The package operates on whole documents, not on streams: rewriting
// decisions (whether a comment must survive, whether whitespace touches a
// block element) are non-local, so the full text must be available.
// Rewriting never fails: a pass that cannot improve its input returns it
// unchanged, and a failing external minifier falls back to the original
// text of the affected block.
package minify

import (
	"io/ioutil"
	"log"
	"strings"

	"github.com/dchest/cssmin"
	"github.com/dchest/jsmin"
	"gopkg.in/yaml.v1"
)

// Options control which rewriting passes run. The zero value disables
// everything; use DefaultOptions or LoadOptions to get a useful set.
type Options struct {
	StripComments      bool `yaml:"strip_comments"`
	MinifyScripts      bool `yaml:"minify_scripts"`
	MinifyStyles       bool `yaml:"minify_styles"`
	CollapseWhitespace bool `yaml:"collapse_whitespace"`
}

// DefaultOptions enables every pass.
var DefaultOptions = &Options{
	StripComments:      true,
	MinifyScripts:      true,
	MinifyStyles:       true,
	CollapseWhitespace: true,
}

// LoadOptions reads options from a YAML file. Keys absent from the file
// keep their default values.
func LoadOptions(filename string) (*Options, error) {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	o := *DefaultOptions
	if err := yaml.Unmarshal(b, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// MinifyFunc is an external minifier for the body of an embedded script
// or style block. It must not be retried: when it returns an error (or
// panics), the original body is used unmodified.
type MinifyFunc func([]byte) ([]byte, error)

// Minifier rewrites documents according to its options. A Minifier is
// immutable after the Set*Minifier calls and safe for concurrent use.
type Minifier struct {
	opts   Options
	script MinifyFunc
	style  MinifyFunc
}

// New returns a minifier with the given options (nil for DefaultOptions)
// using jsmin for scripts and cssmin for styles.
func New(o *Options) *Minifier {
	if o == nil {
		o = DefaultOptions
	}
	return &Minifier{
		opts:   *o,
		script: jsmin.Minify,
		style: func(b []byte) ([]byte, error) {
			return cssmin.Minify(b), nil
		},
	}
}

// SetScriptMinifier replaces the external JavaScript minifier.
func (m *Minifier) SetScriptMinifier(fn MinifyFunc) { m.script = fn }

// SetStyleMinifier replaces the external CSS minifier.
func (m *Minifier) SetStyleMinifier(fn MinifyFunc) { m.style = fn }

// Minify runs the enabled passes over a complete document, in fixed
// order: comments, scripts, styles, whitespace. Each pass receives the
// output of the previous one. An empty or all-whitespace document
// minifies to the empty string.
func (m *Minifier) Minify(doc string) string {
	if strings.TrimSpace(doc) == "" {
		return ""
	}
	if m.opts.StripComments {
		doc = stripComments(doc)
	}
	if m.opts.MinifyScripts {
		doc = m.minifyElements(doc, "script", m.script)
	}
	if m.opts.MinifyStyles {
		doc = m.minifyElements(doc, "style", m.style)
	}
	if m.opts.CollapseWhitespace {
		doc = collapseWhitespace(doc)
	}
	return doc
}

// Minify rewrites an HTML document with the given options (nil for
// defaults) and the standard external minifiers.
func Minify(b []byte, o *Options) []byte {
	return []byte(New(o).Minify(string(b)))
}

// apply invokes an external minifier, containing its failures: on error
// or panic the original body is returned and the failure is logged.
func apply(name string, fn MinifyFunc, body string) (out string) {
	out = body
	defer func() {
		if r := recover(); r != nil {
			log.Printf("minify: %s minifier panicked: %v", name, r)
			out = body
		}
	}()
	res, err := fn([]byte(body))
	if err != nil {
		log.Printf("minify: %s minifier failed: %s", name, err)
		return body
	}
	return string(res)
}
