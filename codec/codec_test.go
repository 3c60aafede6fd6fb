package codec

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/kbukum/redisfacade/errors"
)

type address struct {
	City string `json:"city"`
	Zip  string `json:"zip,omitempty"`
}

type profile struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Age      int               `json:"age"`
	Tags     []string          `json:"tags"`
	Address  *address          `json:"address"`
	Labels   map[string]string `json:"labels"`
	JoinedAt DateTime          `json:"joined_at"`
}

type failingMarshaler struct{}

func (failingMarshaler) MarshalJSON() ([]byte, error) {
	return nil, fmt.Errorf("refused")
}

func sampleProfile(t *testing.T) profile {
	t.Helper()
	loc := time.FixedZone("", 5*3600+30*60)
	return profile{
		ID:       "p-1",
		Name:     "Ada",
		Age:      36,
		Tags:     []string{"math", "engines"},
		Address:  &address{City: "London"},
		Labels:   map[string]string{"tier": "gold"},
		JoinedAt: NewDateTime(time.Date(2024, 3, 9, 14, 5, 7, 123456789, loc)),
	}
}

func assertProfile(t *testing.T, want, got profile) {
	t.Helper()
	if got.ID != want.ID || got.Name != want.Name || got.Age != want.Age {
		t.Errorf("scalar fields differ: want %+v, got %+v", want, got)
	}
	if len(got.Tags) != len(want.Tags) || got.Tags[1] != want.Tags[1] {
		t.Errorf("tags differ: want %v, got %v", want.Tags, got.Tags)
	}
	if got.Address == nil || got.Address.City != want.Address.City {
		t.Errorf("address differs: want %+v, got %+v", want.Address, got.Address)
	}
	if got.Labels["tier"] != "gold" {
		t.Errorf("labels differ: got %v", got.Labels)
	}
	if !got.JoinedAt.Equal(want.JoinedAt) {
		t.Errorf("joined_at differs: want %s, got %s", want.JoinedAt, got.JoinedAt)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, c := range []Codec{JSON(), MsgPack()} {
		t.Run(c.Name(), func(t *testing.T) {
			want := sampleProfile(t)
			data, err := c.Marshal(want)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var got profile
			if err := c.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			assertProfile(t, want, got)
		})
	}
}

func TestJSON_DateTimeTextForm(t *testing.T) {
	dt := NewDateTime(time.Date(2024, 3, 9, 14, 5, 7, 0, time.FixedZone("", -7*3600)))
	data, err := JSON().Marshal(dt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-03-09T14:05:07-07:00"` {
		t.Errorf("unexpected text form: %s", data)
	}
}

func TestJSON_NamedFieldsFromTags(t *testing.T) {
	data, err := JSON().Marshal(address{City: "Oslo"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"city":"Oslo"}` {
		t.Errorf("unexpected document: %s", data)
	}
}

func TestMsgPack_UsesJSONTags(t *testing.T) {
	data, err := MsgPack().Marshal(address{City: "Oslo"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var generic map[string]any
	if err := MsgPack().Unmarshal(data, &generic); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if generic["city"] != "Oslo" {
		t.Errorf("expected json tag name 'city', got %v", generic)
	}
}

func TestMsgPack_DateTimeExtension(t *testing.T) {
	dt := NewDateTime(time.Date(1999, 12, 31, 23, 59, 59, 0, time.FixedZone("", 9*3600)))
	data, err := MsgPack().Marshal(dt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// fixext/ext header followed by the extension id
	if len(data) < 3 {
		t.Fatalf("payload too short: %x", data)
	}
	var got DateTime
	if err := MsgPack().Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Equal(dt) {
		t.Errorf("expected %s, got %s", dt, got)
	}
}

func TestMsgPack_DateTimeUnaddressable(t *testing.T) {
	dt := NewDateTime(time.Date(2024, 3, 9, 8, 0, 0, 0, time.FixedZone("", 3600)))
	tests := []struct {
		name  string
		value any
	}{
		{"value", dt},
		{"pointer", &dt},
		{"map member", map[string]DateTime{"at": dt}},
		{"interface slice", []any{dt}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MsgPack().Marshal(tt.value)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if !bytes.Contains(data, []byte(dt.String())) {
				t.Errorf("payload %x does not carry %s", data, dt)
			}
		})
	}

	data, err := MsgPack().Marshal(map[string]DateTime{"at": dt})
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]DateTime
	if err := MsgPack().Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got["at"].Equal(dt) {
		t.Errorf("expected %s, got %s", dt, got["at"])
	}
}

func TestEncodeFailed(t *testing.T) {
	_, err := JSON().Marshal(failingMarshaler{})
	if !errors.HasCode(err, errors.ErrCodeEncodeFailed) {
		t.Errorf("expected ENCODE_FAILED, got %v", err)
	}
	_, err = MsgPack().Marshal(make(chan int))
	if !errors.HasCode(err, errors.ErrCodeEncodeFailed) {
		t.Errorf("expected ENCODE_FAILED, got %v", err)
	}
}

func TestDecodeFailed(t *testing.T) {
	tests := []struct {
		name  string
		codec Codec
		data  []byte
	}{
		{"json truncated", JSON(), []byte(`{"id":`)},
		{"json empty", JSON(), nil},
		{"json bad datetime", JSON(), []byte(`{"joined_at":"yesterday"}`)},
		{"msgpack reserved code", MsgPack(), []byte{0xc1}},
		{"msgpack empty", MsgPack(), nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var p profile
			err := tc.codec.Unmarshal(tc.data, &p)
			if !errors.HasCode(err, errors.ErrCodeDecodeFailed) {
				t.Fatalf("expected DECODE_FAILED, got %v", err)
			}
			appErr, _ := errors.AsAppError(err)
			if appErr.Details["codec"] != tc.codec.Name() {
				t.Errorf("expected codec detail %q, got %v", tc.codec.Name(), appErr.Details["codec"])
			}
		})
	}
}

func TestDateTime_NullJSON(t *testing.T) {
	var dt DateTime
	if err := JSON().Unmarshal([]byte("null"), &dt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dt.IsZero() {
		t.Errorf("expected zero value, got %s", dt)
	}
}
