// Copyright 2014 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compress provides whole-stream transforms that compress
// buffered output.
package compress

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

const (
	gzipLevel   = 9
	brotliLevel = 11
)

// Compressor describes one compression method. Ext is the filename
// extension for compressed siblings; ContentEncoding is the HTTP
// Content-Encoding token.
type Compressor struct {
	Ext             string
	ContentEncoding string
	New             func(w io.Writer) io.WriteCloser
}

var Gzip = &Compressor{
	Ext:             "gz",
	ContentEncoding: "gzip",
	New: func(w io.Writer) io.WriteCloser {
		z, err := gzip.NewWriterLevel(w, gzipLevel)
		if err != nil {
			panic(err.Error()) // shouldn't happen
		}
		return z
	},
}

var Brotli = &Compressor{
	Ext:             "br",
	ContentEncoding: "br",
	New: func(w io.Writer) io.WriteCloser {
		return brotli.NewWriterLevel(w, brotliLevel)
	},
}

// ByName returns the compressor for a method name.
func ByName(name string) (*Compressor, error) {
	switch name {
	case "gzip":
		return Gzip, nil
	case "br":
		return Brotli, nil
	default:
		return nil, fmt.Errorf("unknown compression method: %q", name)
	}
}

// Compress returns data compressed in memory. Writes to an in-memory
// buffer cannot fail, so neither can Compress.
func (c *Compressor) Compress(data []byte) []byte {
	var buf bytes.Buffer
	z := c.New(&buf)
	if _, err := z.Write(data); err != nil {
		panic(err.Error())
	}
	if err := z.Close(); err != nil {
		panic(err.Error())
	}
	return buf.Bytes()
}

// Transform adapts the compressor for use as a whole-stream hook on an
// output filter.
func (c *Compressor) Transform() func([]byte) []byte {
	return c.Compress
}
