package hokan

import (
	"fmt"
	"io"
	"unsafe"
)

var manifestMetaSize = int64(unsafe.Sizeof(ManifestMeta{}))

func newManifestMetaFromBytes(bs []byte) *ManifestMeta {
	// Associate meta with the provided bytes
	return (*ManifestMeta)(unsafe.Pointer(&bs[0]))
}

func newManifestMetaFromReader(rs io.ReadSeeker) (m ManifestMeta, err error) {
	if _, err = rs.Seek(0, io.SeekStart); err != nil {
		return
	}

	buf := make([]byte, manifestMetaSize)
	if _, err = io.ReadFull(rs, buf); err != nil {
		err = fmt.Errorf("error reading manifest meta: %v", err)
		return
	}

	m = *newManifestMetaFromBytes(buf)
	return
}

// ManifestMeta represents the fixed-size header of a manifest file
type ManifestMeta struct {
	// EntryCount is the number of entries contained within the manifest
	EntryCount int64
	// TotalPayloadSize is the combined byte size of all entry payloads
	TotalPayloadSize int64
	// CreatedAt is a UnixNano timestamp of when the manifest was created
	CreatedAt int64
}
