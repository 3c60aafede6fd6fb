package codec

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// DateTimeLayout is the text form of DateTime: RFC 3339 with nanoseconds and
// a numeric UTC offset.
const DateTimeLayout = time.RFC3339Nano

// DateTimeExtID is the msgpack extension type carrying a DateTime.
const DateTimeExtID int8 = 1

// The encoder is keyed on the value type so unaddressable values (map
// members, interface payloads) encode too; *DateTime dereferences to it.
func init() {
	msgpack.RegisterExtEncoder(DateTimeExtID, DateTime{},
		func(_ *msgpack.Encoder, v reflect.Value) ([]byte, error) {
			return v.Interface().(DateTime).MarshalMsgpack()
		})
	msgpack.RegisterExtDecoder(DateTimeExtID, (*DateTime)(nil),
		func(d *msgpack.Decoder, v reflect.Value, extLen int) error {
			buf := make([]byte, extLen)
			if err := d.ReadFull(buf); err != nil {
				return err
			}
			return v.Interface().(*DateTime).UnmarshalMsgpack(buf)
		})
}

// DateTime is a time.Time that keeps its offset when encoded by either codec.
type DateTime struct {
	time.Time
}

// NewDateTime wraps t.
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

// String returns the text form.
func (d DateTime) String() string {
	return d.Format(DateTimeLayout)
}

// Equal reports whether both values denote the same instant and offset.
func (d DateTime) Equal(other DateTime) bool {
	_, off := d.Zone()
	_, otherOff := other.Zone()
	return d.Time.Equal(other.Time) && off == otherOff
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.Format(DateTimeLayout))), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("datetime: expected a JSON string, got %s", data)
	}
	return d.parse(s)
}

func (d DateTime) MarshalMsgpack() ([]byte, error) {
	return []byte(d.Format(DateTimeLayout)), nil
}

func (d *DateTime) UnmarshalMsgpack(data []byte) error {
	return d.parse(string(data))
}

func (d *DateTime) parse(s string) error {
	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return fmt.Errorf("datetime: %w", err)
	}
	d.Time = t
	return nil
}
