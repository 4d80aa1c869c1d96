// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package rhi

import (
	"fmt"
	"strings"

	"github.com/gviegas/pbr/driver"
	"github.com/gviegas/pbr/img"
)

// CompileError is the error of a failed shader compilation.
type CompileError struct {
	Stage driver.Stage
	Name  string
	Log   string
}

func (e *CompileError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf(prefix+"%s shader failed to compile:\n%s", e.Stage, e.Log)
	}
	return fmt.Sprintf(prefix+"%s shader %s failed to compile:\n%s", e.Stage, e.Name, e.Log)
}

// LinkError is the error of a failed program link.
type LinkError struct {
	Program string
	Log     string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf(prefix+"program %s failed to link:\n%s", e.Program, e.Log)
}

// GLError is the error of a failed native call.
type GLError struct {
	Context string
	Codes   []driver.ErrorCode
}

func (e *GLError) Error() string {
	var s strings.Builder
	s.WriteString(prefix + e.Context)
	for _, c := range e.Codes {
		fmt.Fprintf(&s, " [%v]", c)
	}
	return s.String()
}

// FormatError is the error of an image format that has no
// native equivalent.
type FormatError struct {
	Format img.Format
}

func (e *FormatError) Error() string {
	return fmt.Sprintf(prefix+"format %v is not supported", e.Format)
}
