package gen

import (
	"path/filepath"
	"strings"
)

// Naming is the file naming convention shared by split and merge.
type Naming struct {
	// BaseName is the file name stem of the primary section, e.g. "config".
	BaseName string
	// Prefix starts every other file name, e.g. "config".
	Prefix string
	// Extension is appended to every file name, e.g. ".yaml".
	Extension string
	// PrimarySection is written to the bare base file.
	PrimarySection string
}

// DefaultNaming returns the default naming convention:
// config.yaml, config-<section>.yaml, config-<parent>-<child>.yaml.
func DefaultNaming() Naming {
	return Naming{
		BaseName:       "config",
		Prefix:         "config",
		Extension:      ".yaml",
		PrimarySection: "general",
	}
}

// SectionFile returns the file name of a top-level section.
func (n Naming) SectionFile(key string) string {
	if key == n.PrimarySection {
		return n.BaseName + n.Extension
	}

	return n.Prefix + "-" + key + n.Extension
}

// SubsectionFile returns the file name of a split-out child.
func (n Naming) SubsectionFile(parent, child string) string {
	return n.Prefix + "-" + parent + "-" + child + n.Extension
}

// ParentOf reports the parent section encoded in the name of a split-out
// child file holding child. The directory part of name is ignored.
func (n Naming) ParentOf(name, child string) (string, bool) {
	base := filepath.Base(name)

	stem, ok := strings.CutSuffix(base, n.Extension)
	if !ok {
		return "", false
	}

	rest, ok := strings.CutPrefix(stem, n.Prefix+"-")
	if !ok {
		return "", false
	}

	parent, ok := strings.CutSuffix(rest, "-"+child)
	if !ok || parent == "" {
		return "", false
	}

	return parent, true
}
