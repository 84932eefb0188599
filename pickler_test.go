package hokan

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"reflect"
	"testing"
)

func TestMakePickler(t *testing.T) {
	type testcase struct {
		protocol int
		want     error
	}

	tcs := []testcase{
		{protocol: ProtocolText, want: nil},
		{protocol: ProtocolBinary, want: nil},
		{protocol: ProtocolCompressed, want: nil},
		{protocol: 3, want: ErrInvalidProtocol},
		{protocol: -1, want: ErrInvalidProtocol},
	}

	for _, tc := range tcs {
		if _, err := MakePickler(tc.protocol); err != tc.want {
			t.Fatalf("invalid error, expected <%v> and received <%v>", tc.want, err)
		}
	}
}

func TestPickler_Export(t *testing.T) {
	type testcase struct {
		name     string
		protocol int
	}

	tcs := []testcase{
		{name: "text", protocol: ProtocolText},
		{name: "binary", protocol: ProtocolBinary},
		{name: "compressed", protocol: ProtocolCompressed},
	}

	value := []int{1, 2, 3}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var (
				p   Pickler
				err error
			)

			if p, err = MakePickler(tc.protocol); err != nil {
				t.Fatal(err)
			}

			var (
				payload []byte
				m       Metadata
			)

			if payload, m, err = p.Export(value, ""); err != nil {
				t.Fatal(err)
			}

			switch {
			case m.Size != int64(len(payload)):
				t.Fatalf("invalid size, expected %d and received %d", len(payload), m.Size)
			case m.MimeType != "application/x-gob":
				t.Fatalf("invalid mime type, expected <%s> and received <%s>", "application/x-gob", m.MimeType)
			case m.FileExt != "gob":
				t.Fatalf("invalid file extension, expected <%s> and received <%s>", "gob", m.FileExt)
			}

			var decoded []int
			if err = p.Unpickle(payload, &decoded); err != nil {
				t.Fatal(err)
			}

			if !reflect.DeepEqual(value, decoded) {
				t.Fatalf("invalid value: got = %v, want %v", decoded, value)
			}
		})
	}
}

func TestPickler_Export_encodings_differ(t *testing.T) {
	value := []string{"hello", "world"}

	text, _ := MakePickler(ProtocolText)
	compressed, _ := MakePickler(ProtocolCompressed)

	textPayload, textMeta, err := text.Export(value, "")
	if err != nil {
		t.Fatal(err)
	}

	compressedPayload, compressedMeta, err := compressed.Export(value, "")
	if err != nil {
		t.Fatal(err)
	}

	switch {
	case bytes.Equal(textPayload, compressedPayload):
		t.Fatal("expected payload encodings to differ between protocols")
	case textMeta.MimeType != compressedMeta.MimeType:
		t.Fatal("expected mime type to remain constant between protocols")
	case textMeta.FileExt != compressedMeta.FileExt:
		t.Fatal("expected file extension to remain constant between protocols")
	}
}

func TestPickler_Export_unsupported_format(t *testing.T) {
	p := NewPickler()
	if _, _, err := p.Export([]int{1}, "json"); err != ErrUnsupportedFormat {
		t.Fatalf("invalid error, expected <%v> and received <%v>", ErrUnsupportedFormat, err)
	}
}

func TestPickler_Export_invalid_value(t *testing.T) {
	p := NewPickler()
	// Channels cannot be represented within an encoded object graph
	if _, _, err := p.Export(make(chan int), ""); err == nil {
		t.Fatal("expected error encoding channel value, received nil")
	}
}

func TestPickler_Unpickle_invalid_payload(t *testing.T) {
	binary, _ := MakePickler(ProtocolBinary)
	compressed, _ := MakePickler(ProtocolCompressed)

	payload, _, err := binary.Export([]int{1, 2, 3}, "")
	if err != nil {
		t.Fatal(err)
	}

	var decoded []int
	// A raw binary payload is not a valid compressed stream
	if err = compressed.Unpickle(payload, &decoded); err == nil {
		t.Fatal("expected error decoding mismatched payload, received nil")
	}
}

func TestPickler_Save(t *testing.T) {
	var err error
	if err = os.Mkdir("./test_data", 0744); err != nil {
		t.Fatal(err)
		return
	}
	defer os.RemoveAll("./test_data")

	value := []string{"hello", "world"}
	p := NewPickler()
	if err = p.Save(value, "./test_data/saved", ""); err != nil {
		t.Fatal(err)
	}

	var (
		payload []byte
		written []byte
	)

	if payload, _, err = p.Export(value, ""); err != nil {
		t.Fatal(err)
	}

	if written, err = os.ReadFile("./test_data/saved.gob"); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(payload, written) {
		t.Fatal("expected saved file contents to match the exported payload")
	}
}

func ExamplePickler_Export() {
	var (
		payload []byte
		m       Metadata
		err     error
	)

	p := NewPickler()
	if payload, m, err = p.Export([]int{1, 2, 3}, ""); err != nil {
		log.Fatal(err)
		return
	}

	fmt.Println("Exported", m.Size, "bytes as", m.MimeType, len(payload))
}

func ExamplePickler_Unpickle() {
	var (
		payload []byte
		decoded []int
		err     error
	)

	p := NewPickler()
	if payload, _, err = p.Export([]int{1, 2, 3}, ""); err != nil {
		log.Fatal(err)
		return
	}

	if err = p.Unpickle(payload, &decoded); err != nil {
		log.Fatal(err)
		return
	}

	fmt.Println("Decoded value:", decoded)
}
