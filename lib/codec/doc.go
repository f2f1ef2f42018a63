// Package codec provides value serialization for the pdict stores and the
// single-object helpers. It defines a common interface and multiple
// implementations for turning a Go value into bytes and back.
//
// The package focuses on:
//   - Providing a consistent interface for different serialization formats
//   - Letting stores stay generic over their value type
//   - Persisting single objects to files (SaveObject / LoadObject)
//
// Key Components:
//
//   - ICodec: Core interface that all codec implementations must satisfy.
//
//   - gobCodecImpl: Go's gob encoding. Round-trips native Go values (structs with
//     exported fields, maps, slices) and is the default of the persisted store.
//     Concrete types stored in interface values must be registered with gob.Register.
//
//   - jsonCodecImpl: JSON encoding, human-readable and interoperable. Numbers
//     decoded into interface values become float64.
//
//   - yamlCodecImpl / tomlCodecImpl: Text formats for configuration-like values.
//     TOML wraps every value in a table under the "value" key, because TOML
//     documents can not hold bare scalars.
//
//   - binaryCodecImpl: Passes []byte and string through unchanged and supports
//     encoding.BinaryMarshaler. Smallest payload, no type information.
//
// Thread Safety:
//
//	All codec implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	c, _ := codec.ByName("json")
//	data, err := c.Serialize(value)
//	// ... store data ...
//	var restored MyType
//	err = c.Deserialize(data, &restored)
package codec
