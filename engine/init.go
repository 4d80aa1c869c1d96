// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"log"

	"github.com/gviegas/pbr/driver"
	"github.com/gviegas/pbr/rhi"
)

// OpenDevice opens the first driver whose name contains
// name and creates an rhi.Device on top of it.
// If no such driver can be opened, any registered
// driver is tried.
// Native drivers require a current context on the
// calling thread.
func OpenDevice(name string) (*rhi.Device, driver.Driver, error) {
	drv, gl, err := driver.Open(name)
	if err != nil && name != "" {
		log.Printf("[!] engine: driver '%s' unavailable (%v), trying any", name, err)
		drv, gl, err = driver.Open("")
	}
	if err != nil {
		return nil, nil, err
	}
	log.Printf("engine: using driver '%s'", drv.Name())
	return rhi.New(gl), drv, nil
}
