/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP message encoder
 */

package codec

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxValueLength is the maximum length of attribute
	// name or value, in bytes
	MaxValueLength = 0xffff

	// MinInteger is the smallest value EncodeInteger accepts
	MinInteger = -2147483648

	// MaxInteger is the largest value EncodeInteger accepts
	MaxInteger = 2147483646
)

// EncodeStringLength encodes length of the string as a 2-byte
// big-endian number
func EncodeStringLength(s string) ([2]byte, error) {
	l := len(s)
	if l > MaxValueLength {
		return [2]byte{}, fmt.Errorf("%w: %d bytes", ErrValueTooLong, l)
	}

	return [2]byte{byte(l >> 8), byte(l)}, nil
}

// EncodeInteger encodes integer as 4 bytes, two's complement,
// big-endian. Values outside of MinInteger...MaxInteger are
// rejected, never truncated
func EncodeInteger(i int64) ([4]byte, error) {
	if i < MinInteger || i > MaxInteger {
		return [4]byte{}, fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}

	v := uint32(int32(i))
	return [4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}, nil
}

// EncodeRange encodes rangeOfInteger, written as "N:M" or "N-M".
// A bare "N" means "N:N"
func EncodeRange(s string) ([]byte, error) {
	lower, upper, err := parseRange(s)
	if err != nil {
		return nil, err
	}

	return encodeRangeValue(lower, upper)
}

// parseRange parses "N", "N:M" or "N-M". A leading minus
// belongs to the number
func parseRange(s string) (lower, upper int64, err error) {
	s = strings.TrimSpace(s)

	lo, hi := s, s
	if len(s) > 1 {
		if i := strings.IndexAny(s[1:], ":-"); i >= 0 {
			lo, hi = s[:i+1], s[i+2:]
		}
	}

	lower, err = strconv.ParseInt(strings.TrimSpace(lo), 10, 64)
	if err == nil {
		upper, err = strconv.ParseInt(strings.TrimSpace(hi), 10, 64)
	}

	if err != nil {
		err = fmt.Errorf("%w: range %q", ErrBadValue, s)
	}

	return
}

// encodeRangeValue encodes two integers of a range
func encodeRangeValue(lower, upper int64) ([]byte, error) {
	l, err := EncodeInteger(lower)
	if err != nil {
		return nil, err
	}

	u, err := EncodeInteger(upper)
	if err != nil {
		return nil, err
	}

	return append(l[:], u[:]...), nil
}

// Encoder encodes properties and request messages, resolving
// wire types of attributes by their names through the Schema
//
// Encoder has no mutable state and may be shared
type Encoder struct {
	schema *Schema
}

// NewEncoder creates a new Encoder. If schema is nil,
// DefaultSchema is used
func NewEncoder(schema *Schema) *Encoder {
	if schema == nil {
		schema = DefaultSchema()
	}

	return &Encoder{schema: schema}
}

// Schema returns the Schema of the Encoder
func (e *Encoder) Schema() *Schema {
	return e.schema
}

// EncodeProperty encodes a named property with one or
// more values.
//
// If omitEmpty is true, empty values (false, 0, "" and "0")
// are skipped, and if all values are empty, nothing is encoded
func (e *Encoder) EncodeProperty(name string, values []Value,
	omitEmpty bool) ([]byte, error) {

	var buf bytes.Buffer
	err := e.encodeProperty(&buf, name, values, omitEmpty)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// EncodeProperties encodes list of properties into the block
// of attributes
func (e *Encoder) EncodeProperties(props Properties) ([]byte, error) {
	var buf bytes.Buffer
	err := e.encodeProperties(&buf, props)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// EncodeMessage encodes the whole message: header, groups of
// attributes, each started with its delimiter tag, and the
// end-of-attributes tag
func (e *Encoder) EncodeMessage(version Version, code uint16,
	requestID int32, groups []RequestGroup) ([]byte, error) {

	// Wire format:
	//
	//   2 bytes:  Version
	//   2 bytes:  Code (Operation or Status)
	//   4 bytes:  RequestID
	//   variable: attributes
	//   1 byte:   TagEnd
	var buf bytes.Buffer

	encodeU16(&buf, uint16(version))
	encodeU16(&buf, code)
	encodeU32(&buf, uint32(requestID))

	for _, grp := range groups {
		if !grp.Tag.IsGroup() {
			return nil, fmt.Errorf("%w: %s is not a group tag",
				ErrBadValue, grp.Tag)
		}

		buf.WriteByte(byte(grp.Tag))
		err := e.encodeProperties(&buf, grp.Props)
		if err != nil {
			return nil, err
		}
	}

	buf.WriteByte(byte(TagEnd))

	return buf.Bytes(), nil
}

// EncodeRequest encodes the Request
func (e *Encoder) EncodeRequest(rq *Request) ([]byte, error) {
	return e.EncodeMessage(rq.Version, uint16(rq.Op), rq.RequestID,
		rq.Groups)
}

// Encode properties
func (e *Encoder) encodeProperties(buf *bytes.Buffer, props Properties) error {
	for _, p := range props {
		err := e.encodeProperty(buf, p.Name, p.Values, p.OmitEmpty)
		if err != nil {
			return err
		}
	}

	return nil
}

// Encode property
func (e *Encoder) encodeProperty(buf *bytes.Buffer, name string,
	values []Value, omitEmpty bool) error {

	// Wire format
	//     1 byte:   Tag
	//     2 bytes:  len(Name)
	//     variable: name
	//     2 bytes:  len(Value)
	//     variable  Value
	//
	// And each additional value comes as attribute
	// without name
	var vt ValueType
	resolved := false
	attrName := name

	for _, v := range values {
		if omitEmpty && isEmpty(v) {
			continue
		}

		if !resolved {
			var err error
			vt, err = e.schema.Resolve(name)
			if err != nil {
				return err
			}
			resolved = true
		}

		data, err := e.encodeValue(vt, v)
		if err == nil {
			err = encodeTLV(buf, vt.Tag, attrName, data)
		}

		if err != nil {
			return fmt.Errorf("%q: %w", name, err)
		}

		attrName = ""
	}

	return nil
}

// Encode a single value according to the encoding class
// of its type
func (e *Encoder) encodeValue(vt ValueType, v Value) ([]byte, error) {
	switch vt.Build {
	case BuildNoValue:
		return []byte{}, nil

	case BuildBoolean:
		b, err := toBoolean(v)
		if err != nil {
			return nil, err
		}
		if b {
			return []byte{0x01}, nil
		}
		return []byte{0x00}, nil

	case BuildInteger:
		i, err := toInteger(v)
		if err != nil {
			return nil, err
		}
		data, err := EncodeInteger(i)
		return data[:], err

	case BuildEnum:
		if s, ok := v.(String); ok {
			return []byte(s), nil
		}

		i, err := toInteger(v)
		if err != nil {
			return nil, err
		}
		data, err := EncodeInteger(i)
		return data[:], err

	case BuildString:
		switch v := v.(type) {
		case String:
			return []byte(v), nil
		case Integer:
			return []byte(v.String()), nil
		}

	case BuildRange:
		switch v := v.(type) {
		case String:
			return EncodeRange(string(v))
		case Integer:
			return encodeRangeValue(int64(v), int64(v))
		case Range:
			return encodeRangeValue(v.Lower, v.Upper)
		}

	case BuildResolution:
		switch v := v.(type) {
		case String:
			return encodeResolution(string(v))
		case Resolution:
			data, err := encodeRangeValue(v.X, v.Y)
			if err == nil && v.Units != UnitsNone {
				data = append(data, byte(v.Units))
			}
			return data, err
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, vt.Name)
	}

	return nil, badValue(vt, v)
}

// encodeResolution encodes resolution, written as a range with
// optional units suffix: "300dpi-300dpi", "100x100", "600dpi"
func encodeResolution(s string) ([]byte, error) {
	units := UnitsNone
	switch {
	case strings.Contains(s, "dpi"):
		units = UnitsDpi
	case strings.Contains(s, "dpc"):
		units = UnitsDpc
	}

	r := strings.NewReplacer("dpi", "", "dpcm", "", "dpc", "",
		"x", ":", "-", ":")

	data, err := EncodeRange(r.Replace(s))
	if err == nil && units != UnitsNone {
		data = append(data, byte(units))
	}

	return data, err
}

// Convert Value to bool, for the boolean type
func toBoolean(v Value) (bool, error) {
	switch v := v.(type) {
	case Boolean:
		return bool(v), nil
	case Integer:
		return v != 0, nil
	case String:
		return !isEmpty(v), nil
	}

	return false, fmt.Errorf("%w: %s value for boolean", ErrBadValue, typeOf(v))
}

// Convert Value to integer, for the integer and enum types.
// Booleans are converted to 0 or 1
func toInteger(v Value) (int64, error) {
	switch v := v.(type) {
	case Integer:
		return int64(v), nil
	case Enum:
		return v.Code, nil
	case Boolean:
		if v {
			return 1, nil
		}
		return 0, nil
	case String:
		i, err := strconv.ParseInt(strings.TrimSpace(string(v)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrBadValue, string(v))
		}
		return i, nil
	}

	return 0, fmt.Errorf("%w: %s value for integer", ErrBadValue, typeOf(v))
}

// badValue creates error for a value of a kind the
// type cannot take
func badValue(vt ValueType, v Value) error {
	return fmt.Errorf("%w: %s value for %s", ErrBadValue, typeOf(v), vt.Name)
}

// typeOf returns name of the Value kind, nil-safe
func typeOf(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.Type().String()
}

// encodeTLV encodes one tag-length-value unit
func encodeTLV(buf *bytes.Buffer, tag Tag, name string, value []byte) error {
	nl, err := EncodeStringLength(name)
	if err != nil {
		return err
	}

	if len(value) > MaxValueLength {
		return fmt.Errorf("%w: %d bytes", ErrValueTooLong, len(value))
	}

	buf.WriteByte(byte(tag))
	buf.Write(nl[:])
	buf.WriteString(name)
	encodeU16(buf, uint16(len(value)))
	buf.Write(value)

	return nil
}

// Encode 16-bit integer
func encodeU16(buf *bytes.Buffer, v uint16) {
	buf.Write([]byte{byte(v >> 8), byte(v)})
}

// Encode 32-bit integer
func encodeU32(buf *bytes.Buffer, v uint32) {
	buf.Write([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}
