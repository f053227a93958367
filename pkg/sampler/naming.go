package sampler

import (
	"fmt"
	"path/filepath"
)

const (
	// DefaultPrefix is the filename prefix used when none is configured.
	DefaultPrefix = "frame"
	// DefaultExtension is the file extension used when none is configured.
	DefaultExtension = ".jpg"
)

// Naming maps a save counter to an output filename.
type Naming struct {
	Prefix    string
	Extension string
}

// DefaultNaming returns frame000000.jpg style naming.
func DefaultNaming() Naming {
	return Naming{Prefix: DefaultPrefix, Extension: DefaultExtension}
}

// Name returns Prefix + six digit zero-padded counter + Extension.
func (n Naming) Name(counter int) string {
	return fmt.Sprintf("%s%06d%s", n.Prefix, counter, n.Extension)
}

// Path joins the name for counter onto folder.
func (n Naming) Path(folder string, counter int) string {
	return filepath.Join(folder, n.Name(counter))
}
