package hokan

import (
	"fmt"
	"sort"

	"github.com/mojura/enkodo"
)

// entryVersion is the encoding version written ahead of every manifest
// record. Decoding reads it first so the end of a manifest surfaces as a
// bare io.EOF rather than a wrapped string decoding error.
const entryVersion uint8 = 1

// maxEntryInfoCount bounds the decoded info pairs so a corrupt manifest
// cannot force an outsized allocation
const maxEntryInfoCount = 1 << 12

// Entry represents one archived value within a manifest
type Entry struct {
	// Name of the entry within the archive
	Name string
	// Metadata of the exported payload
	Metadata
	// Info contains the per-entry key/value pairs attached during Add
	Info map[string]string
}

// MarshalEnkodo is a enkodo encoding helper func
func (e *Entry) MarshalEnkodo(enc *enkodo.Encoder) (err error) {
	// Write encoding version as uint8
	enc.Uint8(entryVersion)
	enc.String(e.Name)
	enc.String(e.FileExt)
	enc.String(e.MimeType)
	enc.Int64(e.Size)

	// Write info count as uint64
	enc.Uint64(uint64(len(e.Info)))

	// Write info pairs in sorted key order so encoding is deterministic
	keys := make([]string, 0, len(e.Info))
	for key := range e.Info {
		keys = append(keys, key)
	}

	sort.Strings(keys)
	for _, key := range keys {
		enc.String(key)
		enc.String(e.Info[key])
	}

	return
}

// UnmarshalEnkodo is a enkodo decoding helper func
func (e *Entry) UnmarshalEnkodo(dec *enkodo.Decoder) (err error) {
	var version uint8
	// Decode version as uint8
	// Note: At the end of a manifest this read returns io.EOF untouched
	if version, err = dec.Uint8(); err != nil {
		return
	}

	if version != entryVersion {
		return fmt.Errorf("invalid entry version, <%d> is not supported", version)
	}

	if e.Name, err = dec.String(); err != nil {
		return
	}

	if e.FileExt, err = dec.String(); err != nil {
		return
	}

	if e.MimeType, err = dec.String(); err != nil {
		return
	}

	if e.Size, err = dec.Int64(); err != nil {
		return
	}

	var count uint64
	if count, err = dec.Uint64(); err != nil {
		return
	}

	if count == 0 {
		return
	}

	if count > maxEntryInfoCount {
		return fmt.Errorf("invalid info count, <%d> exceeds the maximum of %d", count, maxEntryInfoCount)
	}

	e.Info = make(map[string]string, count)
	for i := uint64(0); i < count; i++ {
		var key, value string
		if key, err = dec.String(); err != nil {
			return
		}

		if value, err = dec.String(); err != nil {
			return
		}

		e.Info[key] = value
	}

	return
}

// filename will return the on-disk filename for the entry
func (e *Entry) filename() string {
	if len(e.FileExt) == 0 {
		return e.Name
	}

	return e.Name + "." + e.FileExt
}
