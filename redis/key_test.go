package redis

import (
	"testing"

	"github.com/google/uuid"

	"github.com/kbukum/redisfacade/errors"
)

func TestKey_Null(t *testing.T) {
	var zero Key
	if !zero.IsNull() || !NullKey.IsNull() {
		t.Error("zero Key and NullKey should be null")
	}
	if !BytesKey(nil).IsNull() {
		t.Error("BytesKey(nil) should be null")
	}
	if NullKey.Bytes() != nil {
		t.Error("null key should have nil bytes")
	}
	if NullKey.String() != "<null>" {
		t.Errorf("NullKey.String() = %q", NullKey.String())
	}
}

func TestKey_EmptyIsNotNull(t *testing.T) {
	if StringKey("").IsNull() {
		t.Error(`StringKey("") should not be null`)
	}
	if BytesKey([]byte{}).IsNull() {
		t.Error("BytesKey of an empty slice should not be null")
	}
}

func TestKey_StringAndBytesAddressSameKey(t *testing.T) {
	s := StringKey("user:1")
	b := BytesKey([]byte("user:1"))
	if s != b {
		t.Errorf("StringKey and BytesKey differ: %v vs %v", s, b)
	}
	if string(b.Bytes()) != "user:1" {
		t.Errorf("Bytes() = %q", b.Bytes())
	}
}

func TestUUIDKey_Canonical(t *testing.T) {
	id := uuid.MustParse("3F2504E0-4F89-11D3-9A0C-0305E82C3301")
	k := UUIDKey(id)
	if k.String() != "3f2504e0-4f89-11d3-9a0c-0305e82c3301" {
		t.Errorf("UUIDKey = %q, want canonical lowercase form", k.String())
	}
}

func TestParseUUIDKey(t *testing.T) {
	k, err := ParseUUIDKey("{3F2504E0-4F89-11D3-9A0C-0305E82C3301}")
	if err != nil {
		t.Fatalf("ParseUUIDKey failed: %v", err)
	}
	if k.String() != "3f2504e0-4f89-11d3-9a0c-0305e82c3301" {
		t.Errorf("ParseUUIDKey = %q", k.String())
	}

	tests := []string{"", "not-a-uuid"}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			k, err := ParseUUIDKey(raw)
			if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
			if !k.IsNull() {
				t.Error("failed parse should yield the null key")
			}
		})
	}
}

func TestCoordinate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		coord   Coordinate
		wantErr bool
	}{
		{"palermo", NewCoordinate(13.361389, 38.115556), false},
		{"origin", NewCoordinate(0, 0), false},
		{"edges", NewCoordinate(180, MaxLatitude), false},
		{"lower edges", NewCoordinate(-180, MinLatitude), false},
		{"longitude too large", NewCoordinate(180.1, 0), true},
		{"latitude beyond geohash", NewCoordinate(0, 86), true},
		{"latitude too small", NewCoordinate(0, -85.1), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.coord.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate(%v) error = %v, wantErr %v", tc.coord, err, tc.wantErr)
			}
			if err != nil && !errors.HasCode(err, errors.ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
		})
	}
}
