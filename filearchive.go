package hokan

import (
	"fmt"
	"os"
	"path"
	"sync"

	"github.com/gdbu/scribe"
	"github.com/hatchify/errors"
)

var _ Archive = &FileArchive{}

// NewFileArchive will initialize a new FileArchive which accumulates
// exported entries in memory and finalizes them as payload files plus a
// manifest within a directory derived from the Options
func NewFileArchive(o Options, e Exporter) (fp *FileArchive, err error) {
	if err = o.Validate(); err != nil {
		return
	}

	if e == nil {
		err = ErrNilExporter
		return
	}

	var f FileArchive
	// Set output prefix
	prefix := fmt.Sprintf("FileArchive (%v)", o.FullName())
	// Initialize FileArchive output
	f.out = scribe.New(prefix)
	f.opts = o
	f.e = e
	f.names = make(map[string]int)

	// Associate returning pointer to created FileArchive
	fp = &f
	return
}

// FileArchive collects values and finalizes them to a directory on disk.
// A FileArchive is single-use, after Export has been called both Add and
// Export will return ErrIsClosed.
type FileArchive struct {
	mux sync.Mutex

	// Output logger
	out *scribe.Scribe

	// Archive options
	opts Options
	// Exporter used to convert added values
	e Exporter

	// Accumulated entries in insertion order
	entries []fileEntry
	// Seen entry names, used to uniquify clashes
	names map[string]int

	closed bool
}

type fileEntry struct {
	Entry

	payload []byte
}

// Add will export the provided value through the bound Exporter and record
// the resulting entry for inclusion within the archive
func (f *FileArchive) Add(value interface{}, opts ...AddOption) (err error) {
	f.mux.Lock()
	defer f.mux.Unlock()

	// Check to see if the FileArchive is closed
	if f.closed {
		return errors.ErrIsClosed
	}

	c := makeAddConfig(opts)

	var e fileEntry
	// Export value through the bound exporter
	if e.payload, e.Metadata, err = f.e.Export(value, c.format); err != nil {
		err = fmt.Errorf("error exporting value: %v", err)
		return
	}

	e.Name = f.nextName(c.name)
	e.Info = c.info

	// Record entry for finalization
	f.entries = append(f.entries, e)
	return
}

// Export will finalize and close the archive, writing one payload file per
// entry and a manifest describing them. The archive is terminal after this
// call, even when an error is returned.
func (f *FileArchive) Export() (err error) {
	f.mux.Lock()
	defer f.mux.Unlock()

	// Check to see if the FileArchive is closed
	if f.closed {
		return errors.ErrIsClosed
	}

	// Mark archive as closed
	// Note: This occurs before finalization so a failed export cannot be
	// retried against partially written state
	f.closed = true

	// Set target directory as a combination of the configured directory
	// and the archive name
	dir := path.Join(f.opts.Dir, f.opts.FullName())
	if err = f.ensureTargetDir(dir); err != nil {
		return
	}

	if err = f.finalize(dir); err != nil {
		// Error encountered mid-finalization, remove the partial artifact
		if removeErr := os.RemoveAll(dir); removeErr != nil {
			// Error encountered while removing directory, leave error log
			// to notify the operator
			f.out.Errorf("error removing partial archive <%s>: %v", dir, removeErr)
		}

		return
	}

	f.out.Notificationf("exported %d entries to <%s>", len(f.entries), dir)
	return
}

// ensureTargetDir creates the archive directory, refusing a pre-existing
// directory which already has contents. The failure cleanup path removes
// the directory wholesale, so it must only ever contain this export.
func (f *FileArchive) ensureTargetDir(dir string) (err error) {
	if err = os.MkdirAll(dir, 0744); err != nil {
		return fmt.Errorf("error creating archive directory: %v", err)
	}

	var des []os.DirEntry
	if des, err = os.ReadDir(dir); err != nil {
		return fmt.Errorf("error reading archive directory: %v", err)
	}

	if len(des) > 0 {
		return ErrDirectoryNotEmpty
	}

	return
}

func (f *FileArchive) finalize(dir string) (err error) {
	// Write one payload file per entry
	for _, e := range f.entries {
		filename := path.Join(dir, e.filename())
		if err = writeFile(filename, e.payload); err != nil {
			return fmt.Errorf("error writing entry <%s>: %v", e.Name, err)
		}
	}

	var w *manifestWriter
	// Initialize manifest writer
	if w, err = newManifestWriter(dir, f.opts.FullName()); err != nil {
		return fmt.Errorf("error initializing manifest: %v", err)
	}

	var errs errors.ErrorList
	for i := range f.entries {
		if err = w.AddEntry(&f.entries[i].Entry); err != nil {
			err = fmt.Errorf("error adding manifest entry <%s>: %v", f.entries[i].Name, err)
			break
		}
	}

	errs.Push(err)
	errs.Push(w.Close())
	return errs.Err()
}

// nextName derives a unique entry name, unnamed entries are numbered by
// insertion order
func (f *FileArchive) nextName(requested string) (name string) {
	name = requested
	if len(name) == 0 {
		name = fmt.Sprintf("entry-%d", len(f.entries))
	}

	base := name
	for n := f.names[base]; n > 0; n = f.names[base] {
		// Name has been seen before, append the occurrence count and
		// check the derived name for a clash as well
		f.names[base] = n + 1
		name = fmt.Sprintf("%s-%d", base, n)
		if f.names[name] == 0 {
			break
		}
	}

	f.names[name]++
	return
}
