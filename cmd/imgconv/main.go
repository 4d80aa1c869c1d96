// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Imgconv converts standard images into the IMG and
// CUBE containers read by the renderer.
//
// Usage:
//
//	imgconv -o out.img [-mips] [-z] [-flip] [-gray] in.png
//	imgconv -cube -o out.cube [-mips] px nx py ny pz nz
//	imgconv -info file...
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

func main() {
	log.SetFlags(0)
	var (
		o    options
		out  string
		cube bool
		info bool
	)
	flag.StringVar(&out, "o", "", "output file")
	flag.BoolVar(&cube, "cube", false, "assemble six faces into a cubemap")
	flag.BoolVar(&info, "info", false, "describe IMG/CUBE files instead of converting")
	flag.BoolVar(&o.mips, "mips", false, "generate a full mip chain")
	flag.BoolVar(&o.compress, "z", false, "compress the IMG payload")
	flag.BoolVar(&o.flipY, "flip", false, "flip images vertically")
	flag.BoolVar(&o.gray, "gray", false, "convert to a single channel")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if info {
		for _, a := range args {
			if err := describe(os.Stdout, a); err != nil {
				log.Fatal(err)
			}
		}
		return
	}
	if out == "" || len(args) == 0 || (!cube && len(args) != 1) {
		flag.Usage()
		os.Exit(2)
	}

	var p progress = noProgress{}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		bar := progressbar.NewOptions(o.steps(len(args)),
			progressbar.OptionSetDescription(out),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish())
		defer bar.Close()
		p = bar
	}

	var err error
	if cube {
		err = convertCube(out, args, &o, p)
	} else {
		err = convertImage(out, args[0], &o, p)
	}
	if err != nil {
		log.Fatal(err)
	}
}
