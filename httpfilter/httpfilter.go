// Copyright 2014 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package httpfilter attaches output minification to net/http handlers.
//
// The middleware replaces the handler's ResponseWriter with one that
// routes text/html bodies through a stream.Filter carrying the
// minification transform. Since minification is a whole-document rewrite,
// HTML responses are buffered and sent in a single write at the end of
// the request, with a corrected Content-Length. Responses with other
// content types pass through untouched.
package httpfilter

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/dchest/pagemin/minify"
	"github.com/dchest/pagemin/stream"
)

// Handler wraps next so that its text/html responses are minified with
// the given options (nil for defaults).
func Handler(next http.Handler, o *minify.Options) http.Handler {
	m := minify.New(o)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mw := &minifyWriter{rw: w, m: m}
		next.ServeHTTP(mw, r)
		if err := mw.finish(); err != nil {
			// The response is already committed or the connection is
			// gone; nothing to send to the client.
			log.Printf("httpfilter: %s: %s", r.URL.Path, err)
		}
	})
}

// minifyWriter decides on the first write whether the response is HTML.
// HTML goes through the filter; everything else is forwarded directly.
type minifyWriter struct {
	rw          http.ResponseWriter
	m           *minify.Minifier
	filter      *stream.Filter
	status      int
	passthrough bool
}

func (w *minifyWriter) Header() http.Header { return w.rw.Header() }

func (w *minifyWriter) WriteHeader(status int) {
	if w.passthrough {
		w.rw.WriteHeader(status)
		return
	}
	// Recorded only: the status is sent together with the single
	// flush-time write, after the final Content-Length is known.
	w.status = status
}

func (w *minifyWriter) Write(p []byte) (int, error) {
	if w.filter == nil && !w.passthrough {
		ct := w.rw.Header().Get("Content-Type")
		if ct == "" {
			// The handler left the type to content sniffing; classify
			// the first chunk the same way net/http would.
			ct = http.DetectContentType(p)
		}
		if strings.HasPrefix(ct, "text/html") {
			w.filter = stream.NewFilter(responseSink{w})
			w.filter.Hooks.TransformString = w.m.Minify
		} else {
			w.passthrough = true
			if w.status != 0 {
				w.rw.WriteHeader(w.status)
				w.status = 0
			}
		}
	}
	if w.passthrough {
		return w.rw.Write(p)
	}
	return w.filter.Write(p)
}

// Flush forwards to the underlying writer for passthrough responses, so
// non-HTML handlers can still stream. A minified response cannot flush
// early: the whole document is needed before anything is sent.
func (w *minifyWriter) Flush() {
	if !w.passthrough {
		return
	}
	if fl, ok := w.rw.(http.Flusher); ok {
		fl.Flush()
	}
}

// finish releases the buffered, minified body. With no body written it
// still sends a recorded status.
func (w *minifyWriter) finish() error {
	if w.filter != nil {
		return w.filter.Flush()
	}
	if !w.passthrough && w.status != 0 {
		w.rw.WriteHeader(w.status)
	}
	return nil
}

// responseSink receives the filter's single delayed write and turns it
// into the actual HTTP response.
type responseSink struct {
	w *minifyWriter
}

func (s responseSink) Write(p []byte) (int, error) {
	h := s.w.rw.Header()
	h.Set("Content-Length", strconv.Itoa(len(p)))
	status := s.w.status
	if status == 0 {
		status = http.StatusOK
	}
	s.w.rw.WriteHeader(status)
	return s.w.rw.Write(p)
}
