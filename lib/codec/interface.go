package codec

import "fmt"

// ICodec is the interface for all value codecs.
// A codec turns a single Go value into bytes and back. Stores use it to
// encode every value of their mapping, the object helpers use it for whole objects.
type ICodec interface {
	// Name returns the short name of the codec (e.g. "json")
	Name() string
	// Serialize serializes v into a byte array
	// It returns the serialized byte array and an error if any
	Serialize(v any) ([]byte, error)
	// Deserialize deserializes a byte array into v
	// v must be a non-nil pointer
	// It returns an error if any
	Deserialize(b []byte, v any) error
}

// Names lists the names accepted by ByName.
var Names = []string{"json", "gob", "yaml", "toml", "binary"}

// ByName creates the codec with the given name.
func ByName(name string) (ICodec, error) {
	switch name {
	case "json":
		return NewJSONCodec(), nil
	case "gob":
		return NewGOBCodec(), nil
	case "yaml":
		return NewYAMLCodec(), nil
	case "toml":
		return NewTOMLCodec(), nil
	case "binary":
		return NewBinaryCodec(), nil
	default:
		return nil, fmt.Errorf("invalid codec %s", name)
	}
}
