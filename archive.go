package hokan

// Archive collects values which are first accumulated with Add, then
// processed together by a single terminal Export call which finalizes and
// closes the archive. Concrete archives define their own accumulation and
// finalization semantics, see FileArchive and DBArchive.
type Archive interface {
	// Add records one value for later inclusion within the archive
	Add(value interface{}, opts ...AddOption) error
	// Export finalizes and closes the archive, producing the aggregate
	// artifact
	Export() error
}

// AddOption attaches per-entry information to an Add call
type AddOption func(*addConfig)

// WithName sets the entry name used within the archive artifact
func WithName(name string) AddOption {
	return func(c *addConfig) {
		c.name = name
	}
}

// WithInfo attaches an arbitrary key/value pair to the entry
func WithInfo(key, value string) AddOption {
	return func(c *addConfig) {
		if c.info == nil {
			c.info = make(map[string]string)
		}

		c.info[key] = value
	}
}

// WithFormat sets the format hint passed to the archive's exporter for
// this entry, an empty format selects the exporter default
func WithFormat(format string) AddOption {
	return func(c *addConfig) {
		c.format = format
	}
}

func makeAddConfig(opts []AddOption) (c addConfig) {
	for _, opt := range opts {
		opt(&c)
	}

	return
}

type addConfig struct {
	name   string
	format string
	info   map[string]string
}

var _ Archive = &UnimplementedArchive{}

// UnimplementedArchive can be embedded by partial Archive implementations.
// Every method returns ErrNotImplemented and produces no side effects.
type UnimplementedArchive struct{}

// Add will always return ErrNotImplemented
func (u *UnimplementedArchive) Add(value interface{}, opts ...AddOption) (err error) {
	return ErrNotImplemented
}

// Export will always return ErrNotImplemented
func (u *UnimplementedArchive) Export() (err error) {
	return ErrNotImplemented
}
