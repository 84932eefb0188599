package hokan

import (
	"fmt"

	"github.com/hatchify/errors"
)

// MakeOptions will create new Options
func MakeOptions(dir, name string) (o Options) {
	o.Dir = dir
	o.Name = name
	return
}

// Options represent archive options
type Options struct {
	Dir       string `toml:"dir" json:"dir"`
	Name      string `toml:"name" json:"name"`
	Namespace string `toml:"namespace" json:"namespace"`
}

// Validate ensures that the Options have all the required fields set
func (o *Options) Validate() (err error) {
	var errs errors.ErrorList
	if len(o.Dir) == 0 {
		errs.Push(ErrEmptyDirectory)
	}

	if len(o.Name) == 0 {
		errs.Push(ErrEmptyName)
	}

	return errs.Err()
}

// FullName will return the archive name prefixed with the namespace
// (when set)
func (o *Options) FullName() string {
	if len(o.Namespace) == 0 {
		return o.Name
	}

	return fmt.Sprintf("%s_%s", o.Namespace, o.Name)
}
