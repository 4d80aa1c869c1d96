// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package names implements allocation of object names
// in the manner of a GL context: the lowest free name
// is handed out first, and deleted names are reused.
// Name 0 is never allocated.
package names

import (
	"math/bits"
)

// Pool is a growable bitmap of allocated names.
// The zero value is an empty pool.
type Pool struct {
	m   []uint64
	len int
}

// Len returns the number of names in use.
func (p *Pool) Len() int { return p.len }

// Get allocates the lowest free name.
func (p *Pool) Get() uint32 {
	for i, w := range p.m {
		if w == ^uint64(0) {
			continue
		}
		b := bits.TrailingZeros64(^w)
		p.m[i] |= 1 << b
		p.len++
		return uint32(i*64+b) + 1
	}
	p.m = append(p.m, 1)
	p.len++
	return uint32((len(p.m)-1)*64) + 1
}

// Put frees name.
// It reports whether name was in use.
func (p *Pool) Put(name uint32) bool {
	if !p.InUse(name) {
		return false
	}
	i, b := index(name)
	p.m[i] &^= 1 << b
	p.len--
	return true
}

// InUse reports whether name is allocated.
func (p *Pool) InUse(name uint32) bool {
	if name == 0 {
		return false
	}
	i, b := index(name)
	return i < len(p.m) && p.m[i]&(1<<b) != 0
}

func index(name uint32) (int, uint) {
	n := int(name - 1)
	return n / 64, uint(n % 64)
}
