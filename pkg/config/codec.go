package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Codec defines the deserialization contract for configuration data.
type Codec interface {
	// Unmarshal deserializes bytes into a value.
	Unmarshal(data []byte, v any) error

	// ContentType returns the MIME type for observability and debugging.
	ContentType() string
}

// JSONCodec implements Codec using encoding/json.
type JSONCodec struct{}

// Unmarshal deserializes JSON bytes into v.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// ContentType returns the JSON MIME type.
func (JSONCodec) ContentType() string {
	return "application/json"
}

// Ensure JSONCodec implements Codec.
var _ Codec = JSONCodec{}

// YAMLCodec implements Codec using gopkg.in/yaml.v3.
type YAMLCodec struct{}

// Unmarshal deserializes YAML bytes into v.
func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// ContentType returns the YAML MIME type.
func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// Ensure YAMLCodec implements Codec.
var _ Codec = YAMLCodec{}

// TOMLCodec implements Codec using github.com/BurntSushi/toml.
type TOMLCodec struct{}

// Unmarshal deserializes TOML bytes into v.
func (TOMLCodec) Unmarshal(data []byte, v any) error {
	_, err := toml.Decode(string(data), v)
	return err
}

// ContentType returns the TOML MIME type.
func (TOMLCodec) ContentType() string {
	return "application/toml"
}

// Ensure TOMLCodec implements Codec.
var _ Codec = TOMLCodec{}

// CodecFor picks a codec from a file extension.
func CodecFor(path string) (Codec, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return JSONCodec{}, nil
	case ".yaml", ".yml":
		return YAMLCodec{}, nil
	case ".toml":
		return TOMLCodec{}, nil
	default:
		return nil, fmt.Errorf("no codec for extension %q", ext)
	}
}

// detect picks a codec from content: JSON when it starts like JSON, YAML
// otherwise (which also accepts plain JSON).
func detect(data []byte) Codec {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return JSONCodec{}
	}
	return YAMLCodec{}
}
