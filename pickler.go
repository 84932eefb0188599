package hokan

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/gob"
	"io"

	"github.com/hatchify/errors"
)

const (
	// ProtocolText is the lowest-compatibility encoding, the binary stream
	// is armored with base64 so the payload remains text-safe
	ProtocolText = iota
	// ProtocolBinary is the raw binary stream encoding
	ProtocolBinary
	// ProtocolCompressed is the most efficient encoding, the binary stream
	// is compressed with zlib
	ProtocolCompressed
)

// DefaultProtocol is the protocol used by NewPickler
const DefaultProtocol = ProtocolCompressed

const (
	pickleFileExt  = "gob"
	pickleMimeType = "application/x-gob"
)

var _ Exporter = &Pickler{}

// NewPickler will initialize a new Pickler with the default protocol
func NewPickler() *Pickler {
	p, _ := MakePickler(DefaultProtocol)
	return &p
}

// MakePickler will create a new Pickler with the provided protocol
func MakePickler(protocol int) (p Pickler, err error) {
	if err = validateProtocol(protocol); err != nil {
		return
	}

	p.Protocol = protocol
	return
}

// Pickler is an Exporter which serializes values with the native generic
// object-graph encoding (gob). The Protocol selects how the encoded stream
// is represented, it never changes the shape of the returned Metadata.
type Pickler struct {
	// Protocol selects the payload encoding, see the Protocol constants
	Protocol int `toml:"protocol" json:"protocol"`
}

// Export will serialize the provided value at the configured protocol.
// The Pickler supports a single output encoding, a non-empty format hint
// other than "gob" will return ErrUnsupportedFormat.
func (p *Pickler) Export(value interface{}, format string) (payload []byte, m Metadata, err error) {
	if len(format) > 0 && format != pickleFileExt {
		err = ErrUnsupportedFormat
		return
	}

	if payload, err = p.encode(value); err != nil {
		return
	}

	m = makeMetadata(pickleFileExt, pickleMimeType, len(payload))
	return
}

// Save will serialize the provided value and write the payload to
// basename + ".gob"
func (p *Pickler) Save(value interface{}, basename, format string) (err error) {
	return saveExport(p, value, basename, format)
}

// Unpickle will deserialize a payload produced by Export into the provided
// target pointer. The payload must have been encoded at the same protocol.
func (p *Pickler) Unpickle(payload []byte, target interface{}) (err error) {
	r := bytes.NewReader(payload)
	switch p.Protocol {
	case ProtocolText:
		return gob.NewDecoder(base64.NewDecoder(base64.StdEncoding, r)).Decode(target)
	case ProtocolBinary:
		return gob.NewDecoder(r).Decode(target)
	case ProtocolCompressed:
		var zr io.ReadCloser
		if zr, err = zlib.NewReader(r); err != nil {
			return
		}

		var errs errors.ErrorList
		errs.Push(gob.NewDecoder(zr).Decode(target))
		errs.Push(zr.Close())
		return errs.Err()

	default:
		return ErrInvalidProtocol
	}
}

func (p *Pickler) encode(value interface{}) (payload []byte, err error) {
	buf := bytes.NewBuffer(nil)
	switch p.Protocol {
	case ProtocolText:
		enc := base64.NewEncoder(base64.StdEncoding, buf)
		if err = gob.NewEncoder(enc).Encode(value); err != nil {
			return
		}

		// Close flushes any partially written base64 quantum
		if err = enc.Close(); err != nil {
			return
		}

	case ProtocolBinary:
		if err = gob.NewEncoder(buf).Encode(value); err != nil {
			return
		}

	case ProtocolCompressed:
		zw := zlib.NewWriter(buf)
		if err = gob.NewEncoder(zw).Encode(value); err != nil {
			return
		}

		if err = zw.Close(); err != nil {
			return
		}

	default:
		err = ErrInvalidProtocol
		return
	}

	payload = buf.Bytes()
	return
}

func validateProtocol(protocol int) (err error) {
	switch protocol {
	case ProtocolText:
	case ProtocolBinary:
	case ProtocolCompressed:

	default:
		return ErrInvalidProtocol
	}

	return
}
