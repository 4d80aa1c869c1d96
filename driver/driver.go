// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package driver defines the interface to a graphics
// context in the style of OpenGL.
// It is designed to allow a native API to be wrapped in
// a mostly straightforward manner, and to be replaced by
// an in-memory implementation when no context exists.
package driver

import (
	"errors"
	"log"
	"strings"
	"sync"
)

// Driver is the interface that provides methods for
// loading and unloading an underlying implementation.
type Driver interface {
	// Open initializes the driver.
	// If it succeeds, further calls with the same receiver
	// have no effect and must return the same GL instance.
	// Native drivers require a current context on the
	// calling thread.
	// Callers should assume that Open is not safe for
	// parallel execution.
	Open() (GL, error)

	// Name returns the name of the driver.
	// It must not cause the driver to be opened.
	Name() string

	// Close deinitializes the driver.
	// Closing a driver that is not open has no effect.
	Close()
}

// ErrNotInstalled means that a platform-specific library
// required for the driver to work is not present in the
// system.
var ErrNotInstalled = errors.New("driver: missing required library")

// ErrNoContext means that the native context could not
// be initialized (e.g., no context is current on the
// calling thread).
var ErrNoContext = errors.New("driver: no current context")

// ErrNotFound means that no registered driver matched
// the requested name.
var ErrNotFound = errors.New("driver: driver not found")

// ErrFatal means that the driver is in an unrecoverable
// state. Upon encountering such an error, the application
// must delete everything that it created using the
// driver's GL and then call the Close method.
var ErrFatal = errors.New("driver: fatal error")

// Drivers returns the registered Drivers.
// Client code imports specific driver packages, and then
// call this function from init. As such, drivers that do
// not register themselves on init will not be considered
// for selection.
func Drivers() []Driver {
	mu.Lock()
	defer mu.Unlock()
	drv := make([]Driver, len(drivers))
	copy(drv, drivers)
	return drv
}

// Register registers a Driver.
// Driver implementations are expected to call Register
// exactly once, from an init function.
// If a driver with the same name has already been
// registered, it will be replaced by drv.
func Register(drv Driver) {
	mu.Lock()
	defer mu.Unlock()
	for i := range drivers {
		if drivers[i].Name() == drv.Name() {
			drivers[i] = drv
			log.Printf("[!] driver '%s' replaced", drv.Name())
			return
		}
	}
	drivers = append(drivers, drv)
	log.Printf("driver '%s' registered", drv.Name())
}

// Open opens the first registered driver whose name
// contains name (case-insensitive).
// An empty name matches any driver, in registration
// order; drivers that fail to open are skipped.
func Open(name string) (Driver, GL, error) {
	name = strings.ToLower(name)
	var err error
	for _, drv := range Drivers() {
		if !strings.Contains(strings.ToLower(drv.Name()), name) {
			continue
		}
		var gl GL
		if gl, err = drv.Open(); err == nil {
			return drv, gl, nil
		}
		log.Printf("[!] driver '%s' failed to open: %v", drv.Name(), err)
	}
	if err == nil {
		err = ErrNotFound
	}
	return nil, nil, err
}

// Variables used for driver registration.
var (
	mu      sync.Mutex
	drivers []Driver = make([]Driver, 0, 2)
)
