package hokan

import "github.com/hatchify/errors"

const (
	// ErrNotImplemented is returned by the Unimplemented bases when a method
	// has not been overridden by a concrete implementation
	ErrNotImplemented = errors.Error("not implemented")
	// ErrUnsupportedFormat is returned when a format hint is not supported
	// by the receiving exporter
	ErrUnsupportedFormat = errors.Error("unsupported format")
	// ErrInvalidProtocol is returned when a pickling protocol is out of range
	ErrInvalidProtocol = errors.Error("invalid protocol, must be 0, 1 or 2")
	// ErrEmptyDirectory is returned when a directory is empty
	ErrEmptyDirectory = errors.Error("invalid directory, cannot be empty")
	// ErrEmptyName is returned when a name is empty
	ErrEmptyName = errors.Error("invalid name, cannot be empty")
	// ErrDirectoryNotEmpty is returned when an archive targets a directory
	// which already has contents
	ErrDirectoryNotEmpty = errors.Error("invalid directory, must be empty")
	// ErrInvalidSize is returned when metadata declares a negative size
	ErrInvalidSize = errors.Error("invalid size, cannot be negative")
	// ErrEmptyMimeType is returned when metadata omits a mime type
	ErrEmptyMimeType = errors.Error("invalid mime type, cannot be empty")
	// ErrNilExporter is returned when an archive is created without an exporter
	ErrNilExporter = errors.Error("invalid exporter, cannot be nil")
)
