package codec

import "gopkg.in/yaml.v3"

// NewYAMLCodec creates a new codec using yaml encoding
func NewYAMLCodec() ICodec {
	return &yamlCodecImpl{}
}

// yamlCodecImpl implements the ICodec interface using yaml encoding
type yamlCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (y yamlCodecImpl) Name() string {
	return "yaml"
}

func (y yamlCodecImpl) Serialize(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (y yamlCodecImpl) Deserialize(b []byte, v any) error {
	return yaml.Unmarshal(b, v)
}
