// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package driver_test

import (
	"fmt"
	"log"

	"github.com/gviegas/pbr/driver"
	_ "github.com/gviegas/pbr/driver/soft"
)

// Example_open selects a driver by name and clears its
// framebuffer.
func Example_open() {
	drv, gl, err := driver.Open("soft")
	if err != nil {
		log.Fatal(err)
	}
	defer drv.Close()
	fmt.Println(drv.Name(), gl.Driver() == drv)

	gl.Viewport(0, 0, 2, 2)
	gl.ClearColor(1, 0, 0, 1)
	gl.Clear(driver.ClearColor)
	px := make([]byte, 4*3)
	gl.ReadPixels(0, 0, 2, 2, driver.PRGB, driver.TUByte, px)
	fmt.Println(px[:3], gl.GetError() == driver.NoError)

	// Output:
	// soft true
	// [255 0 0] true
}
