package codec

import (
	"encoding"
	"fmt"
)

// NewBinaryCodec creates a new codec that stores raw bytes without any framing.
// It supports []byte, string and types implementing encoding.BinaryMarshaler /
// encoding.BinaryUnmarshaler. It is the fastest codec and the natural choice
// for stores whose values already are byte payloads.
func NewBinaryCodec() ICodec {
	return &binaryCodecImpl{}
}

// binaryCodecImpl implements ICodec by passing bytes through
type binaryCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (b binaryCodecImpl) Name() string {
	return "binary"
}

func (b binaryCodecImpl) Serialize(v any) ([]byte, error) {
	switch val := v.(type) {
	case []byte:
		return copyBytes(val), nil
	case *[]byte:
		if val == nil {
			return nil, fmt.Errorf("binary: can not encode nil pointer")
		}
		return copyBytes(*val), nil
	case string:
		return []byte(val), nil
	case *string:
		if val == nil {
			return nil, fmt.Errorf("binary: can not encode nil pointer")
		}
		return []byte(*val), nil
	case encoding.BinaryMarshaler:
		return val.MarshalBinary()
	case *any:
		if val == nil || *val == nil {
			return nil, fmt.Errorf("binary: can not encode nil pointer")
		}
		return b.Serialize(*val)
	default:
		return nil, fmt.Errorf("binary: unsupported type %T", v)
	}
}

func (b binaryCodecImpl) Deserialize(data []byte, v any) error {
	switch val := v.(type) {
	case *[]byte:
		*val = copyBytes(data)
		return nil
	case *string:
		*val = string(data)
		return nil
	case encoding.BinaryUnmarshaler:
		return val.UnmarshalBinary(data)
	case *any:
		*val = copyBytes(data)
		return nil
	default:
		return fmt.Errorf("binary: unsupported target type %T", v)
	}
}

// copyBytes returns a copy of b that never aliases the input (nil stays nil)
func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
