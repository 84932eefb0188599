package hokan

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

const (
	// FormatJSON selects JSON output from the TextExporter
	FormatJSON = "json"
	// FormatYAML selects YAML output from the TextExporter
	FormatYAML = "yaml"
)

var _ Exporter = &TextExporter{}

// TextExporter is an Exporter which serializes values to a human-readable
// markup encoding. It supports multiple output formats selected per-call
// through the format hint, an empty hint selects JSON.
type TextExporter struct{}

// Export will serialize the provided value to the hinted format
func (t *TextExporter) Export(value interface{}, format string) (payload []byte, m Metadata, err error) {
	switch format {
	case "", FormatJSON:
		if payload, err = json.Marshal(value); err != nil {
			return
		}

		m = makeMetadata(FormatJSON, "application/json", len(payload))

	case FormatYAML:
		if payload, err = yaml.Marshal(value); err != nil {
			return
		}

		m = makeMetadata(FormatYAML, "application/yaml", len(payload))

	default:
		err = ErrUnsupportedFormat
	}

	return
}

// Save will serialize the provided value and write the payload to
// basename joined with the extension of the chosen format
func (t *TextExporter) Save(value interface{}, basename, format string) (err error) {
	return saveExport(t, value, basename, format)
}
