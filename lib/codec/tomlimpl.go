package codec

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// tomlValueKey is the key the value is stored under.
// TOML documents are tables, so scalars and slices are wrapped into one.
const tomlValueKey = "value"

// NewTOMLCodec creates a new codec using toml encoding
func NewTOMLCodec() ICodec {
	return &tomlCodecImpl{}
}

// tomlCodecImpl implements the ICodec interface using toml encoding
type tomlCodecImpl struct {
}

type tomlEnvelope struct {
	Value any `toml:"value"`
}

type tomlPrimitiveEnvelope struct {
	Value toml.Primitive `toml:"value"`
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (t tomlCodecImpl) Name() string {
	return "toml"
}

func (t tomlCodecImpl) Serialize(v any) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("toml: can not encode nil value")
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tomlEnvelope{Value: v}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (t tomlCodecImpl) Deserialize(b []byte, v any) error {
	var env tomlPrimitiveEnvelope
	md, err := toml.Decode(string(b), &env)
	if err != nil {
		return err
	}
	if !md.IsDefined(tomlValueKey) {
		return fmt.Errorf("toml: missing %q key", tomlValueKey)
	}
	return md.PrimitiveDecode(env.Value, v)
}
