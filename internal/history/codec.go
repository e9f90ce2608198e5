package history

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// Codec encodes the history document for the file backend.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// YAMLCodec stores history as human-readable YAML.
type YAMLCodec struct{}

func (YAMLCodec) Name() string                       { return "yaml" }
func (YAMLCodec) Marshal(v any) ([]byte, error)      { return yaml.Marshal(v) }
func (YAMLCodec) Unmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }

// CBORCodec stores history as deterministic CBOR. Timestamps are written as
// tagged RFC 3339 strings with nanoseconds so they survive a round trip.
type CBORCodec struct{}

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	opts.TimeTag = cbor.EncTagRequired
	var err error
	cborEnc, err = opts.EncMode()
	if err != nil {
		panic("history: CBOR encoder initialization failed: " + err.Error())
	}
	cborDec, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("history: CBOR decoder initialization failed: " + err.Error())
	}
}

func (CBORCodec) Name() string                       { return "cbor" }
func (CBORCodec) Marshal(v any) ([]byte, error)      { return cborEnc.Marshal(v) }
func (CBORCodec) Unmarshal(data []byte, v any) error { return cborDec.Unmarshal(data, v) }

// CodecByName returns the codec for "yaml" or "cbor". An empty name picks the
// codec from the file extension of path, defaulting to YAML.
func CodecByName(name, path string) (Codec, error) {
	if name == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".cbor":
			name = "cbor"
		default:
			name = "yaml"
		}
	}
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return YAMLCodec{}, nil
	case "cbor":
		return CBORCodec{}, nil
	}
	return nil, fmt.Errorf("unknown history format %q", name)
}
