package hokan

import (
	"os"

	"github.com/hatchify/errors"
)

// saveExport exports a value and persists the payload to disk. The
// destination is basename joined with the metadata extension.
func saveExport(e Exporter, value interface{}, basename, format string) (err error) {
	var (
		payload []byte
		m       Metadata
	)

	if payload, m, err = e.Export(value, format); err != nil {
		return
	}

	filename := basename
	if len(m.FileExt) > 0 {
		filename += "." + m.FileExt
	}

	return writeFile(filename, payload)
}

// writeFile persists payload at filename, releasing the file handle on
// every exit path
func writeFile(filename string, payload []byte) (err error) {
	var f *os.File
	// Open target file
	// Note: This will create the file if it does not exist and truncate
	// the file if it does
	if f, err = os.Create(filename); err != nil {
		return
	}

	var errs errors.ErrorList
	_, werr := f.Write(payload)
	errs.Push(werr)
	errs.Push(f.Close())
	return errs.Err()
}
