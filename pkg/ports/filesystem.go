package ports

// FileSystem abstracts the file operations used to persist extracted frames.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating or truncating it.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and any missing parents.
	// An existing directory is not an error.
	MkdirAll(path string) error

	// Exists reports whether a file or directory exists.
	Exists(path string) (bool, error)
}
