package hokan

import (
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/edsrzf/mmap-go"
	"github.com/hatchify/errors"
	"github.com/mojura/enkodo"
)

// ManifestExt is the file extension used by archive manifests
const ManifestExt = "manifest"

func newManifestWriter(dir, name string) (wp *manifestWriter, err error) {
	var w manifestWriter
	// Set filename as a combination of the provided directory, name, and
	// the manifest extension
	w.filename = path.Join(dir, name+"."+ManifestExt)
	// Open target file
	// Note: This will create the file if it does not exist
	if w.f, err = os.OpenFile(w.filename, os.O_CREATE|os.O_RDWR, 0744); err != nil {
		return
	}

	// Whenever function ends, close the writer if an error was encountered
	defer func() { w.closeIfError(err) }()

	// Associate meta with a memory map of the meta bytes within the manifest
	// Note: We associate the Meta to an MMAP'd portion of the file for
	// performance reasons. We are able to ensure and maintain safety due to
	// the fact that we are controlling the file descriptor and will know
	// when it's closed.
	if err = w.mapMeta(); err != nil {
		err = fmt.Errorf("error mapping manifest meta: %v", err)
		return
	}

	// Move to the end of the file
	if _, err = w.f.Seek(0, io.SeekEnd); err != nil {
		return
	}

	// Initialize enkodo writer
	w.w = enkodo.NewWriter(w.f)

	if w.m.CreatedAt == 0 {
		// Fresh manifest, stamp creation time
		w.m.CreatedAt = time.Now().UnixNano()
	}

	// Associate returning pointer to created writer
	wp = &w
	return
}

// manifestWriter writes an archive manifest, a fixed-size ManifestMeta
// header followed by enkodo-encoded Entry records
type manifestWriter struct {
	// Target file
	f *os.File
	// Enkodo writer
	w *enkodo.Writer

	// Memory map for Meta information
	mm mmap.MMap
	// Meta information
	m *ManifestMeta
	// Location of file
	filename string

	closed bool
}

// Meta will return a copy of the writer's underlying ManifestMeta
func (w *manifestWriter) Meta() ManifestMeta {
	return *w.m
}

// AddEntry will append an entry record to the manifest
func (w *manifestWriter) AddEntry(e *Entry) (err error) {
	if w.closed {
		return errors.ErrIsClosed
	}

	// Encode entry to writer
	if err = w.w.Encode(e); err != nil {
		return
	}

	// Increment entry count
	w.m.EntryCount++
	// Increase total payload size
	w.m.TotalPayloadSize += e.Size
	return
}

// Close will close the manifest writer
func (w *manifestWriter) Close() (err error) {
	if w.closed {
		return errors.ErrIsClosed
	}

	w.closed = true

	var errs errors.ErrorList
	if w.w != nil {
		errs.Push(w.w.Close())
	}

	errs.Push(w.unmapMeta())

	if w.f != nil {
		errs.Push(w.f.Close())
	}

	return errs.Err()
}

func (w *manifestWriter) mapMeta() (err error) {
	// Ensure underlying file is big enough for the meta bytes
	if err = w.setSize(); err != nil {
		err = fmt.Errorf("error setting file size: %v", err)
		return
	}

	// Map bytes equal to the size of the meta
	if w.mm, err = mmap.MapRegion(w.f, int(manifestMetaSize), mmap.RDWR, 0, 0); err != nil {
		err = fmt.Errorf("error initializing MMAP: %v", err)
		return
	}

	// Associate meta with memory mapped bytes
	w.m = newManifestMetaFromBytes(w.mm)
	return
}

func (w *manifestWriter) unmapMeta() (err error) {
	// Ensure MMAP is set
	if w.mm == nil {
		// MMAP not set, return
		return
	}

	// Unmap MMAP file
	err = w.mm.Unmap()
	// Unset mmap value
	w.mm = nil
	// Unset meta value
	w.m = nil
	return
}

func (w *manifestWriter) setSize() (err error) {
	var fi os.FileInfo
	// Get file information
	if fi, err = w.f.Stat(); err != nil {
		err = fmt.Errorf("error getting file information: %v", err)
		return
	}

	// Check file size
	if fi.Size() >= manifestMetaSize {
		// File is at least as big as the meta size, nothing else is needed!
		return
	}

	// Extend file to be big enough for the meta bytes
	if err = w.f.Truncate(manifestMetaSize); err != nil {
		err = fmt.Errorf("error setting file size to %d: %v", manifestMetaSize, err)
		return
	}

	return
}

func (w *manifestWriter) closeIfError(err error) {
	if err == nil {
		return
	}

	w.Close()
}

// ReadManifest will open the manifest at the provided filename and call fn
// with an initialized ManifestReader, closing the file when fn returns
func ReadManifest(filename string, fn func(*ManifestReader) error) (err error) {
	var f *os.File
	if f, err = os.Open(filename); err != nil {
		return
	}

	var errs errors.ErrorList
	var r *ManifestReader
	if r, err = NewManifestReader(f); err == nil {
		err = fn(r)
	}

	errs.Push(err)
	errs.Push(f.Close())
	return errs.Err()
}

// NewManifestReader will initialize a new manifest reader
func NewManifestReader(rs io.ReadSeeker) (rp *ManifestReader, err error) {
	var r ManifestReader
	if r.m, err = newManifestMetaFromReader(rs); err != nil {
		return
	}

	r.r = rs
	rp = &r
	return
}

// ManifestReader will parse and read an archive manifest
type ManifestReader struct {
	m ManifestMeta
	r io.ReadSeeker
}

// Meta will return the meta information for the manifest
func (r *ManifestReader) Meta() ManifestMeta {
	return r.m
}

// ForEach will iterate through all the entries within the reader
func (r *ManifestReader) ForEach(fn func(*Entry) error) (err error) {
	if _, err = r.r.Seek(manifestMetaSize, io.SeekStart); err != nil {
		return
	}

	rdr := enkodo.NewReader(r.r)
	for {
		var e Entry
		if err = rdr.Decode(&e); err != nil {
			break
		}

		if err = fn(&e); err != nil {
			return
		}
	}

	if err == io.EOF {
		err = nil
	}

	return
}
