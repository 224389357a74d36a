// Package theme locates named CSS themes on disk and prepares their
// stylesheets for rendering. A theme is self-contained: one CSS payload plus
// a base directory its relative asset references resolve against.
package theme

import (
	"fmt"
	"strings"
)

// Theme is a resolved theme. It is read fresh on every invocation and is
// immutable once loaded.
type Theme struct {
	Name string
	// CSS is the stylesheet text as read from disk, before asset rewriting.
	CSS string
	// BaseDir is the directory relative url(...) references resolve against.
	BaseDir string
}

// NotFoundError is returned when a requested theme has neither a folder nor
// a flat-file form under the themes root. Available lists the themes that do
// exist so the caller can self-correct.
type NotFoundError struct {
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("theme %q not found (no themes available)", e.Name)
	}
	return fmt.Sprintf("theme %q not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}
