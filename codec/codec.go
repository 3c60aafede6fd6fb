package codec

// Codec converts values to and from their stored byte form.
type Codec interface {
	// Name identifies the codec in errors and logs.
	Name() string
	// Marshal encodes v. Failures are ENCODE_FAILED app errors.
	Marshal(v any) ([]byte, error)
	// Unmarshal decodes data into the value pointed to by v. Failures are
	// DECODE_FAILED app errors.
	Unmarshal(data []byte, v any) error
}

const (
	NameJSON    = "json"
	NameMsgPack = "msgpack"
)
