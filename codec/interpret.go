/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Interpretation of raw attribute values
 */

package codec

import (
	"time"
)

// Interpreter converts raw payloads of decoded attributes into
// typed values. The conversion depends on the value tag and, for
// enums, on the attribute name.
//
// Interpreter never fails: payloads it cannot make sense of
// are returned as Binary
type Interpreter struct {
	// VendorOperation, if not nil, names "operations-supported"
	// values in the vendor extension range 0x4000...0x8fff
	VendorOperation func(code int64) (string, bool)
}

// NewInterpreter creates a new Interpreter
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

// Interpret converts raw value of the named attribute
func (interp *Interpreter) Interpret(name string, tag Tag, raw []byte) Value {
	if tag.IsOutOfBand() {
		return Void{}
	}

	switch tag {
	case TagInteger:
		return Integer(DecodeInteger(raw))

	case TagBoolean:
		return InterpretBoolean(raw)

	case TagEnum:
		code := DecodeInteger(raw)
		if name == "printer-type" || name == "printer-type-mask" {
			return InterpretPrinterType(code)
		}
		return interp.InterpretEnum(name, code)

	case TagDateTime:
		return InterpretDateTime(raw)

	case TagResolution:
		if len(raw) != 9 {
			return Binary(raw)
		}
		return Resolution{
			X:     DecodeInteger(raw[0:4]),
			Y:     DecodeInteger(raw[4:8]),
			Units: Units(raw[8]),
		}

	case TagRange:
		return InterpretRange(raw)

	case TagTextLang, TagNameLang:
		return interpretWithLang(raw)
	}

	// All types in 0x40...0x5f range are character strings
	if 0x40 <= tag && tag <= 0x5f {
		return String(raw)
	}

	return Binary(raw)
}

// InterpretEnum converts enum value of the named attribute.
// Unknown values of attributes with symbolic names get a
// descriptive placeholder; values of other attributes are
// returned as numbers
func (interp *Interpreter) InterpretEnum(name string, code int64) Enum {
	if !HasEnumTable(name) {
		return Enum{Code: code}
	}

	var s string
	if name == "operations-supported" {
		s, _ = lookupOperation(code, interp.VendorOperation)
	} else {
		s, _ = LookupEnum(name, code)
	}

	return Enum{Code: code, Name: s}
}

// DecodeInteger decodes big-endian two's complement integer.
// Any length up to 8 bytes is accepted; values not less than
// 2^31 are taken as negative 32-bit numbers
func DecodeInteger(raw []byte) int64 {
	if len(raw) > 8 {
		raw = raw[len(raw)-8:]
	}

	var v uint64
	for _, b := range raw {
		v = v<<8 | uint64(b)
	}

	i := int64(v)
	if v >= 1<<31 && v < 1<<32 {
		i -= 1 << 32
	}

	return i
}

// InterpretRange decodes rangeOfInteger. The payload is split into
// two equal halves, each decoded as integer
func InterpretRange(raw []byte) Value {
	if len(raw) == 0 || len(raw)%2 != 0 {
		return Binary(raw)
	}

	half := len(raw) / 2
	return Range{
		Lower: DecodeInteger(raw[:half]),
		Upper: DecodeInteger(raw[half:]),
	}
}

// InterpretBoolean decodes boolean. Any non-zero byte is true
func InterpretBoolean(raw []byte) Value {
	if len(raw) == 0 {
		return Binary(raw)
	}
	return Boolean(raw[0] != 0)
}

// InterpretDateTime decodes dateTime (RFC 2579)
func InterpretDateTime(raw []byte) Value {
	// Wire format:
	//
	//   2 bytes:  Year
	//   1 byte:   Month, 1...12
	//   1 byte:   Day, 1...31
	//   1 byte:   Hour, 0...23
	//   1 byte:   Minute, 0...59
	//   1 byte:   Second, 0...60
	//   1 byte:   Deci-seconds, 0...9
	//   1 byte:   Direction from UTC, '+' or '-'
	//   1 byte:   Hours from UTC, 0...13
	//   1 byte:   Minutes from UTC, 0...59
	if len(raw) != 11 {
		return Binary(raw)
	}

	offset := (int(raw[9])*60 + int(raw[10])) * 60
	switch raw[8] {
	case '+':
	case '-':
		offset = -offset
	default:
		return Binary(raw)
	}

	zone := time.FixedZone("", offset)
	t := time.Date(int(raw[0])<<8|int(raw[1]), time.Month(raw[2]),
		int(raw[3]), int(raw[4]), int(raw[5]), int(raw[6]),
		int(raw[7])*int(time.Second/10), zone)

	return DateTime{t}
}

// interpretWithLang decodes textWithLanguage and
// nameWithLanguage, returning the text part
func interpretWithLang(raw []byte) Value {
	// Wire format:
	//
	//   2 bytes:  len(Lang)
	//   variable: Lang
	//   2 bytes:  len(Text)
	//   variable: Text
	if len(raw) < 2 {
		return String(raw)
	}

	l := int(raw[0])<<8 | int(raw[1])
	if 2+l+2 > len(raw) {
		return String(raw)
	}

	text := raw[2+l:]
	l = int(text[0])<<8 | int(text[1])
	if 2+l != len(text) {
		return String(raw)
	}

	return String(text[2:])
}
