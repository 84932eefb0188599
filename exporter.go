// Package hokan provides two extension points for getting composite values
// out of a program: Exporters process values one at a time into a payload
// with metadata, and Archives collect many values before finalizing them
// into a single aggregate artifact.
package hokan

// Exporter converts a single value into a serialized payload and the
// metadata which describes it. Implementations may hold configuration,
// but configuration is read-only during a call and every call is
// independent of the last.
type Exporter interface {
	// Export will serialize the provided value and return the payload
	// alongside its Metadata. The format hint is used by exporters which
	// support multiple output encodings, an empty format selects the
	// exporter default. Implementations must return Metadata whose Size
	// matches the length of the returned payload.
	Export(value interface{}, format string) (payload []byte, m Metadata, err error)
	// Save will serialize the provided value and persist the payload to
	// disk at basename joined with the extension of the chosen format
	Save(value interface{}, basename, format string) error
}

var _ Exporter = &UnimplementedExporter{}

// UnimplementedExporter can be embedded by partial Exporter implementations.
// Every method returns ErrNotImplemented and produces no side effects.
type UnimplementedExporter struct{}

// Export will always return ErrNotImplemented
func (u *UnimplementedExporter) Export(value interface{}, format string) (payload []byte, m Metadata, err error) {
	err = ErrNotImplemented
	return
}

// Save will always return ErrNotImplemented
func (u *UnimplementedExporter) Save(value interface{}, basename, format string) (err error) {
	return ErrNotImplemented
}
