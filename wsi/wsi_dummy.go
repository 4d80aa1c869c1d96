// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"errors"
	"time"
)

var errMissing = errors.New("wsi: no window system available")

var start time.Time

func initDummy() {
	start = time.Now()
	newWindow = newWindowDummy
	dispatch = dispatchDummy
	getTime = func() float64 { return time.Since(start).Seconds() }
	swapInterval = func(int) {}
	terminate = func() {}
	platform = None
}

func newWindowDummy(int, int, string, *Options) (Window, error) {
	return nil, errMissing
}

func dispatchDummy() {}
