// Package codec provides the value encodings used by the redis facade.
//
// Two codecs are shipped:
//
//   - JSON, the structured-text codec, backed by bytedance/sonic. It encodes
//     JSON documents and geo set members.
//   - MsgPack, the compact binary codec, backed by vmihailenco/msgpack/v5.
//     It encodes byte-oriented values stored with SET.
//
// Both codecs are immutable values and safe for concurrent use. Failures are
// reported as *errors.AppError with ENCODE_FAILED or DECODE_FAILED codes.
//
// DateTime is a timezone-aware time type that keeps its UTC offset through
// either codec:
//
//	type Event struct {
//	    Name string         `json:"name"`
//	    At   codec.DateTime `json:"at"`
//	}
package codec
