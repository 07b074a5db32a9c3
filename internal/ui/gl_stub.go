//go:build !gl

package ui

import (
	"context"
	"errors"
)

// GLAvailable reports whether the OpenGL backend was compiled in.
const GLAvailable = false

// ErrNoGL is returned by RunGL in builds without the gl tag.
var ErrNoGL = errors.New("OpenGL backend not built; rebuild with -tags gl")

// RunGL is unavailable in this build.
func (a *App) RunGL(context.Context) error { return ErrNoGL }
