//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the equex module embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name. It also names the default config directory
	// and prefixes environment variables.
	Name = "equex"
	// Description is a one-line summary used in help output.
	Description = "Equation exercise interpreter"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
