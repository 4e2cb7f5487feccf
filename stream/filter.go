// Copyright 2014 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stream provides an output filter that sits between a content
// producer and its final sink. The filter buffers written bytes and, at
// flush time, routes the buffered content through registered hooks before
// releasing it downstream.
//
// Hooks come in three kinds. Capture hooks observe the final content and
// never alter it. Per-chunk transforms rewrite each written chunk
// independently and are compatible with immediate passthrough. Whole-
// document transforms need the complete text, so registering one delays
// all output until Flush: nothing reaches the sink through the normal
// write path.
//
// A Filter serves exactly one response: it owns its buffer and shares no
// state, so no locking is needed across concurrently filtered responses.
package stream

import (
	"bytes"
	"errors"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// ErrUnsupported is returned by Read and Seek when the wrapped sink does
// not implement the corresponding interface.
var ErrUnsupported = errors.New("stream: operation not supported by sink")

// Hooks are the optional observation and rewrite points of a Filter.
// Each slot holds at most one function; assigning a slot replaces any
// previous value. String-level hooks cost one decode/encode round trip of
// the affected data through the filter's encoding; byte-level hooks avoid
// that.
type Hooks struct {
	// CaptureBytes and CaptureString observe the final buffered content
	// at flush time. Their return values do not exist: they cannot
	// change what is written.
	CaptureBytes  func([]byte)
	CaptureString func(string)

	// TransformWriteBytes and TransformWriteString rewrite each chunk as
	// it is written.
	TransformWriteBytes  func([]byte) []byte
	TransformWriteString func(string) string

	// TransformStream and TransformString rewrite the entire buffered
	// document once, at flush time. Registering either delays output.
	TransformStream func([]byte) []byte
	TransformString func(string) string
}

func (h *Hooks) captured() bool {
	return h.CaptureBytes != nil || h.CaptureString != nil ||
		h.TransformWriteBytes != nil || h.TransformWriteString != nil ||
		h.delayed()
}

func (h *Hooks) delayed() bool {
	return h.TransformStream != nil || h.TransformString != nil
}

// Filter wraps an output sink, presenting the same write/flush/close
// contract while inserting the registered hooks transparently.
type Filter struct {
	// Hooks may be set directly, before the first Write.
	Hooks Hooks

	sink io.Writer
	enc  encoding.Encoding
	buf  bytes.Buffer
}

// NewFilter returns a filter writing to sink. Byte to text conversions
// use UTF-8 until SetEncoding is called.
func NewFilter(sink io.Writer) *Filter {
	return &Filter{sink: sink, enc: unicode.UTF8}
}

// SetEncoding sets the character encoding used for every byte to text
// conversion. It must match the encoding of the bytes written to the
// filter, or content will corrupt.
func (f *Filter) SetEncoding(enc encoding.Encoding) {
	f.enc = enc
}

// Captured reports whether any hook is registered, which makes writes
// accumulate in the filter's buffer.
func (f *Filter) Captured() bool { return f.Hooks.captured() }

// OutputDelayed reports whether a whole-document transform is registered,
// which withholds all output from the sink until Flush.
func (f *Filter) OutputDelayed() bool { return f.Hooks.delayed() }

// Write appends p to the buffer when any hook is registered and forwards
// the (possibly per-chunk-transformed) bytes to the sink unless output is
// delayed. The returned count always covers all of p: a per-chunk
// transform changing the chunk's length is invisible to the caller.
func (f *Filter) Write(p []byte) (int, error) {
	if !f.Captured() {
		return f.sink.Write(p)
	}
	f.buf.Write(p)
	out := p
	if t := f.Hooks.TransformWriteBytes; t != nil {
		out = t(out)
	}
	if t := f.Hooks.TransformWriteString; t != nil {
		s, err := f.decode(out)
		if err != nil {
			return 0, err
		}
		if out, err = f.encode(t(s)); err != nil {
			return 0, err
		}
	}
	if f.OutputDelayed() {
		// The whole-document transform runs at Flush over the buffered
		// copy; the per-chunk result is discarded.
		return len(p), nil
	}
	if n, err := f.sink.Write(out); err != nil {
		// The chunk is already buffered in full; report the sink's
		// progress, capped in case a transform grew the chunk.
		if n > len(p) {
			n = len(p)
		}
		return n, err
	}
	return len(p), nil
}

type flusher interface {
	Flush() error
}

// Flush runs the whole-document transforms over the buffered content,
// notifies capture hooks, releases delayed output to the sink in a single
// write, and truncates the buffer, so a second Flush is a no-op until new
// writes occur. The sink's own Flush, when it has one, always runs
// afterward. Hook failures are not contained here: a panicking hook
// propagates to the caller.
func (f *Filter) Flush() error {
	if f.Captured() && f.buf.Len() > 0 {
		b := f.buf.Bytes()
		if t := f.Hooks.TransformStream; t != nil {
			b = t(b)
		}
		if t := f.Hooks.TransformString; t != nil {
			s, err := f.decode(b)
			if err != nil {
				return err
			}
			if b, err = f.encode(t(s)); err != nil {
				return err
			}
		}
		if c := f.Hooks.CaptureBytes; c != nil {
			c(b)
		}
		if c := f.Hooks.CaptureString; c != nil {
			s, err := f.decode(b)
			if err != nil {
				return err
			}
			c(s)
		}
		if f.OutputDelayed() {
			if _, err := f.sink.Write(b); err != nil {
				return err
			}
		}
		f.buf.Reset()
	}
	if fl, ok := f.sink.(flusher); ok {
		return fl.Flush()
	}
	return nil
}

// Close closes the sink when it implements io.Closer. Buffered content is
// not flushed implicitly: callers flush before closing, exactly as they
// would with the undecorated sink.
func (f *Filter) Close() error {
	if c, ok := f.sink.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Read delegates to the sink when it supports reading.
func (f *Filter) Read(p []byte) (int, error) {
	if r, ok := f.sink.(io.Reader); ok {
		return r.Read(p)
	}
	return 0, ErrUnsupported
}

// Seek delegates to the sink when it supports seeking.
func (f *Filter) Seek(offset int64, whence int) (int64, error) {
	if s, ok := f.sink.(io.Seeker); ok {
		return s.Seek(offset, whence)
	}
	return 0, ErrUnsupported
}

// decode converts bytes in the filter's encoding to a string.
func (f *Filter) decode(b []byte) (string, error) {
	out, err := f.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// encode converts a string back to bytes in the filter's encoding.
func (f *Filter) encode(s string) ([]byte, error) {
	return f.enc.NewEncoder().Bytes([]byte(s))
}
