package codec

import (
	"github.com/bytedance/sonic"

	"github.com/kbukum/redisfacade/errors"
)

type jsonCodec struct {
	api sonic.API
}

// JSON returns the structured-text codec. It follows encoding/json semantics
// (struct tags, Marshaler interfaces, base64 for []byte).
func JSON() Codec {
	return jsonCodec{api: sonic.ConfigStd}
}

func (jsonCodec) Name() string { return NameJSON }

func (c jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := c.api.Marshal(v)
	if err != nil {
		return nil, errors.EncodeFailed(NameJSON, err)
	}
	return data, nil
}

func (c jsonCodec) Unmarshal(data []byte, v any) error {
	if err := c.api.Unmarshal(data, v); err != nil {
		return errors.DecodeFailed(NameJSON, err)
	}
	return nil
}
