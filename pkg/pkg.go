//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is the semantic version of the flowc module embedded at build time.
// It is printed by the CLI when users pass the --version flag.
//
//go:embed VERSION
var version string

// Version returns the embedded semantic version without surrounding
// whitespace.
func Version() string { return strings.TrimSpace(version) }

// SemVer returns [Version] parsed as a semantic version.
func SemVer() (*semver.Version, error) {
	v, err := semver.NewVersion(Version())
	if err != nil {
		return nil, ErrInvalidVersion.Wrap(err)
	}

	return v, nil
}

const (
	// Name is the canonical command and module identifier used across the
	// project. For example, it appears in help text and default config paths.
	Name = "flowc"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Flow graph declaration front end"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
