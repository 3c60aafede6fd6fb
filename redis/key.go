package redis

import (
	"github.com/google/uuid"

	"github.com/kbukum/redisfacade/validation"
)

// Key names a Redis key. The zero value is the null key, which every write
// operation rejects before touching the network.
type Key struct {
	name  string
	valid bool
}

// NullKey is the null key.
var NullKey = Key{}

// StringKey returns the key named s. The empty string is a valid key.
func StringKey(s string) Key {
	return Key{name: s, valid: true}
}

// BytesKey returns the key whose name is b. A nil slice yields the null key;
// an empty non-nil slice is the empty key. String and byte keys with the
// same bytes address the same Redis key.
func BytesKey(b []byte) Key {
	if b == nil {
		return NullKey
	}
	return Key{name: string(b), valid: true}
}

// UUIDKey returns the key for id in canonical lowercase hyphenated form.
func UUIDKey(id uuid.UUID) Key {
	return Key{name: id.String(), valid: true}
}

// ParseUUIDKey parses s as a UUID and returns its canonical key.
func ParseUUIDKey(s string) (Key, error) {
	id, err := validation.ValidateUUID("key", s)
	if err != nil {
		return NullKey, err
	}
	return UUIDKey(id), nil
}

// IsNull reports whether k is the null key.
func (k Key) IsNull() bool {
	return !k.valid
}

// String returns the key name, or "<null>" for the null key.
func (k Key) String() string {
	if !k.valid {
		return "<null>"
	}
	return k.name
}

// Bytes returns the key name as bytes, or nil for the null key.
func (k Key) Bytes() []byte {
	if !k.valid {
		return nil
	}
	return []byte(k.name)
}
