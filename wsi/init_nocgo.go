// Copyright 2022 Gustavo C. Viegas. All rights reserved.

//go:build !cgo

package wsi

func init() { initDummy() }
