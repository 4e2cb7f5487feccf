// Copyright 2014 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command pagemin minifies HTML documents.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/dchest/pagemin/compress"
	"github.com/dchest/pagemin/minify"
	"github.com/dchest/pagemin/stream"
)

var (
	fConfig = flag.String("c", "", "load minification options from YAML file")
	fOutput = flag.String("o", "", "write output to file instead of standard output")
	fGzip   = flag.Bool("gzip", false, "also write gzip-compressed output file (requires -o)")
	fBrotli = flag.Bool("br", false, "also write brotli-compressed output file (requires -o)")
)

var usage = func() {
	fmt.Printf(`usage: pagemin [options] [file]

Minifies an HTML document read from file or standard input.

Options:
`)
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	opts := minify.DefaultOptions
	if *fConfig != "" {
		var err error
		opts, err = minify.LoadOptions(*fConfig)
		if err != nil {
			log.Fatalf("! cannot load options: %s", err)
		}
	}
	if (*fGzip || *fBrotli) && *fOutput == "" {
		log.Fatal("! compression requires -o")
	}

	var data []byte
	var err error
	switch flag.NArg() {
	case 0:
		data, err = ioutil.ReadAll(os.Stdin)
	case 1:
		data, err = ioutil.ReadFile(flag.Arg(0))
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("! cannot read input: %s", err)
	}

	out := os.Stdout
	if *fOutput != "" {
		out, err = os.Create(*fOutput)
		if err != nil {
			log.Fatalf("! cannot create output: %s", err)
		}
	}

	f := stream.NewFilter(out)
	f.Hooks.TransformString = minify.New(opts).Minify
	var minified []byte
	f.Hooks.CaptureBytes = func(b []byte) {
		minified = b
	}
	if _, err := f.Write(data); err != nil {
		log.Fatalf("! write error: %s", err)
	}
	if err := f.Flush(); err != nil {
		log.Fatalf("! flush error: %s", err)
	}
	if out != os.Stdout {
		if err := out.Close(); err != nil {
			log.Fatalf("! close error: %s", err)
		}
	}

	var compressors []*compress.Compressor
	if *fGzip {
		compressors = append(compressors, compress.Gzip)
	}
	if *fBrotli {
		compressors = append(compressors, compress.Brotli)
	}
	for _, c := range compressors {
		name := *fOutput + "." + c.Ext
		if err := ioutil.WriteFile(name, c.Compress(minified), 0644); err != nil {
			log.Fatalf("! cannot write %s: %s", name, err)
		}
	}
}
