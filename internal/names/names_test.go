// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package names

import (
	"testing"
)

func TestPool(t *testing.T) {
	var p Pool
	if n := p.Len(); n != 0 {
		t.Fatalf("Pool.Len:\nhave %d\nwant 0", n)
	}
	for i := range 130 {
		if x := p.Get(); x != uint32(i+1) {
			t.Fatalf("Pool.Get:\nhave %d\nwant %d", x, i+1)
		}
	}
	if n := p.Len(); n != 130 {
		t.Fatalf("Pool.Len:\nhave %d\nwant 130", n)
	}
	if !p.Put(65) {
		t.Fatal("Pool.Put: should have freed 65")
	}
	if p.Put(65) {
		t.Fatal("Pool.Put: 65 is no longer in use")
	}
	if p.Put(0) || p.Put(1000) {
		t.Fatal("Pool.Put: unexpected success")
	}
	if p.InUse(65) {
		t.Fatal("Pool.InUse: 65 should be free")
	}
	if x := p.Get(); x != 65 {
		t.Fatalf("Pool.Get:\nhave %d\nwant 65", x)
	}
	if x := p.Get(); x != 131 {
		t.Fatalf("Pool.Get:\nhave %d\nwant 131", x)
	}
}
