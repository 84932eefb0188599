package hokan

import "github.com/hatchify/errors"

func makeMetadata(fileExt, mimeType string, size int) (m Metadata) {
	m.FileExt = fileExt
	m.MimeType = mimeType
	m.Size = int64(size)
	return
}

// Metadata describes an exported payload. It is produced fresh on every
// export call and is never persisted by the exporter itself.
type Metadata struct {
	// FileExt is the file extension of the payload (may be empty)
	FileExt string `toml:"file_ext" json:"fileExt"`
	// MimeType is the mime type of the payload
	MimeType string `toml:"mime_type" json:"mimeType"`
	// Size is the byte count of the payload
	Size int64 `toml:"size" json:"size"`
}

// Validate ensures the Metadata has all the required fields set
func (m *Metadata) Validate() (err error) {
	var errs errors.ErrorList
	if len(m.MimeType) == 0 {
		errs.Push(ErrEmptyMimeType)
	}

	if m.Size < 0 {
		errs.Push(ErrInvalidSize)
	}

	return errs.Err()
}
