package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/kbukum/redisfacade/errors"
)

// structTag lets one struct definition serve both codecs.
const structTag = "json"

type msgpackCodec struct{}

// MsgPack returns the compact binary codec. Struct fields are named by their
// json tags and integers are written in their smallest encoding.
func MsgPack() Codec {
	return msgpackCodec{}
}

func (msgpackCodec) Name() string { return NameMsgPack }

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag(structTag)
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, errors.EncodeFailed(NameMsgPack, err)
	}
	return buf.Bytes(), nil
}

func (msgpackCodec) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag(structTag)
	if err := dec.Decode(v); err != nil {
		return errors.DecodeFailed(NameMsgPack, err)
	}
	return nil
}
