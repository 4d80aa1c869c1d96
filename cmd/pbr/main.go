// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Pbr renders a physically-based scene in a window.
//
// Usage:
//
//	pbr [-config pbr.toml] [-dump-config]
//
// Controls:
//
//	W A S D       move
//	right button  look around
//	left button   select the shape under the pointer
//	1-4           select skybox
//	K             show/hide the skybox
//	G, shift+G    decrease/increase gamma
//	E, shift+E    decrease/increase exposure
//	T, shift+T    select the next/previous tone curve parameter
//	Y, shift+Y    decrease/increase the tone curve parameter
//	R             restore tone defaults
//	C, shift+C    select the next/previous material color channel
//	V, shift+V    decrease/increase the selected shape's color channel
//	M, shift+M    decrease/increase the selected shape's metallic factor
//	N, shift+N    decrease/increase the selected shape's roughness factor
//	H             show tuning values in the title bar
//	P             save a snapshot
//	Esc           quit
package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	_ "github.com/gviegas/pbr/driver/gl"
	"github.com/gviegas/pbr/engine"
	"github.com/gviegas/pbr/wsi"
)

func init() { runtime.LockOSThread() }

// Frames longer than this are simulated as if they
// took maxDelta seconds.
const maxDelta = 0.25

func main() {
	path := flag.String("config", "pbr.toml", "configuration file")
	dump := flag.Bool("dump-config", false, "print the effective configuration and exit")
	flag.Parse()

	cfg, err := LoadConfig(*path)
	if err != nil {
		log.Fatal(err)
	}
	if *dump {
		if err := cfg.Write(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := run(&cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *Config) error {
	defer wsi.Terminate()
	opts := wsi.DefaultOptions()
	opts.Samples = cfg.Samples
	win, err := wsi.NewWindow(cfg.Width, cfg.Height, cfg.Title, &opts)
	if err != nil {
		return err
	}
	win.MakeCurrent()
	if cfg.VSync {
		wsi.SwapInterval(1)
	} else {
		wsi.SwapInterval(0)
	}

	d, drv, err := engine.OpenDevice(cfg.Engine.Driver)
	if err != nil {
		return err
	}
	defer drv.Close()

	fbw, fbh := win.FramebufferSize()
	app, err := newDemo(d, cfg, win.Width(), win.Height(), fbw, fbh)
	if err != nil {
		return err
	}
	defer app.release()

	in := new(input)
	wsi.SetWindowHandler(in)
	wsi.SetKeyboardHandler(in)
	wsi.SetPointerHandler(in)
	win.Map()
	log.Printf("pbr: %dx%d window (%dx%d pixels)", win.Width(), win.Height(), fbw, fbh)

	last := wsi.Time()
	second := last
	for !in.quit && !win.ShouldClose() {
		wsi.Dispatch()
		if in.Held(wsi.KeyEsc) {
			break
		}
		if in.resized {
			fbw, fbh = win.FramebufferSize()
			app.resize(win.Width(), win.Height(), fbw, fbh)
		}

		now := wsi.Time()
		dt := float32(min(now-last, maxDelta))
		last = now
		app.update(in, dt)
		if err := app.render(); err != nil {
			return err
		}
		win.SwapBuffers()
		in.endFrame()

		if now-second >= 1 {
			win.SetTitle(app.title())
			second = now
		}
	}
	return nil
}
