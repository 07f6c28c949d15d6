/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Values of IPP attributes
 */

package codec

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Type enumerates kinds of Value
type Type int

// Type values
const (
	TypeVoid       Type = iota // Value is Void
	TypeInteger                // Value is Integer
	TypeBoolean                // Value is Boolean
	TypeString                 // Value is String
	TypeDateTime               // Value is DateTime
	TypeResolution             // Value is Resolution
	TypeRange                  // Value is Range
	TypeEnum                   // Value is Enum
	TypeFlags                  // Value is Flags
	TypeBinary                 // Value is Binary
	TypeCollection             // Value is Collection
)

// String returns name of the Type, for debugging
func (t Type) String() string {
	if 0 <= t && int(t) < len(typeNames) {
		return typeNames[t]
	}

	return fmt.Sprintf("0x%4.4x", uint(t))
}

var typeNames = [...]string{
	TypeVoid:       "Void",
	TypeInteger:    "Integer",
	TypeBoolean:    "Boolean",
	TypeString:     "String",
	TypeDateTime:   "DateTime",
	TypeResolution: "Resolution",
	TypeRange:      "Range",
	TypeEnum:       "Enum",
	TypeFlags:      "Flags",
	TypeBinary:     "Binary",
	TypeCollection: "Collection",
}

// Value represents a single value of an IPP attribute.
//
// The same types are used in both directions: the Encoder accepts
// them as property values, the Interpreter produces them from the
// raw bytes of a response
type Value interface {
	String() string
	Type() Type
}

// Void is the Value without content. It is encoded for
// the no-value type and decoded from out-of-band tags
type Void struct{}

// String converts Void to string
func (Void) String() string { return "" }

// Type returns TypeVoid
func (Void) Type() Type { return TypeVoid }

// Integer is the integer Value. It is wider than the wire
// representation, so out-of-range values can be detected
// by the Encoder rather than silently truncated
type Integer int64

// String converts Integer to string
func (v Integer) String() string { return strconv.FormatInt(int64(v), 10) }

// Type returns TypeInteger
func (Integer) Type() Type { return TypeInteger }

// Boolean is the boolean Value
type Boolean bool

// String converts Boolean to string
func (v Boolean) String() string { return strconv.FormatBool(bool(v)) }

// Type returns TypeBoolean
func (Boolean) Type() Type { return TypeBoolean }

// String is the Value for all textual types: keyword, uri,
// charset, naturalLanguage, mimeMediaType, text and name
type String string

// String returns the string itself
func (v String) String() string { return string(v) }

// Type returns TypeString
func (String) Type() Type { return TypeString }

// Range is the rangeOfInteger Value
type Range struct {
	Lower, Upper int64 // Lower/upper bounds
}

// String formats Range as "lower-upper"
func (v Range) String() string {
	return fmt.Sprintf("%d-%d", v.Lower, v.Upper)
}

// Type returns TypeRange
func (Range) Type() Type { return TypeRange }

// Units represents units of Resolution. It is a single byte
// on the wire
type Units uint8

// Resolution units codes
const (
	UnitsNone Units = 0 // Units byte absent
	UnitsDpi  Units = 3 // Dots per inch
	UnitsDpc  Units = 4 // Dots per centimeter
)

// String converts Units to string
func (u Units) String() string {
	switch u {
	case UnitsNone:
		return ""
	case UnitsDpi:
		return "dpi"
	case UnitsDpc:
		return "dpc"
	}

	return fmt.Sprintf("0x%2.2x", uint8(u))
}

// Resolution is the resolution Value
type Resolution struct {
	X, Y  int64 // Cross-feed and feed resolutions
	Units Units // Resolution units
}

// String formats Resolution as "x-y units"
func (v Resolution) String() string {
	s := fmt.Sprintf("%d-%d", v.X, v.Y)
	if v.Units != UnitsNone {
		s += " " + v.Units.String()
	}
	return s
}

// Type returns TypeResolution
func (Resolution) Type() Type { return TypeResolution }

// DateTime is the dateTime Value
type DateTime struct{ time.Time }

// DateTimeLayout is the ISO 8601 layout, used to format DateTime
const DateTimeLayout = "2006-01-02T15:04:05-07:00"

// String formats DateTime according to ISO 8601
func (v DateTime) String() string { return v.Time.Format(DateTimeLayout) }

// Type returns TypeDateTime
func (DateTime) Type() Type { return TypeDateTime }

// Enum is the interpreted enum Value: the wire code and
// its symbolic name, if known
type Enum struct {
	Code int64  // Numeric value
	Name string // Symbolic name or placeholder, may be empty
}

// String returns symbolic name of Enum, or its numeric
// value, if name is not known
func (v Enum) String() string {
	if v.Name != "" {
		return v.Name
	}
	return strconv.FormatInt(v.Code, 10)
}

// Type returns TypeEnum
func (Enum) Type() Type { return TypeEnum }

// Flags is the Value of bitmask enums (i.e., "printer-type"),
// decoded into the list of names of the bits that are set
type Flags []string

// String returns comma-separated list of flags
func (v Flags) String() string { return strings.Join(v, ",") }

// Type returns TypeFlags
func (Flags) Type() Type { return TypeFlags }

// Has reports whether flag is set
func (v Flags) Has(flag string) bool {
	for _, f := range v {
		if f == flag {
			return true
		}
	}
	return false
}

// Binary is the Value of octetString and of tags the
// codec doesn't interpret
type Binary []byte

// String formats Binary as hex string
func (v Binary) String() string { return fmt.Sprintf("%x", []byte(v)) }

// Type returns TypeBinary
func (Binary) Type() Type { return TypeBinary }

// Collection is the Value of begCollection attributes (RFC 3382).
// Its members are attributes, which values in turn may be
// collections
type Collection []Attribute

// String formats Collection as "{name=value ...}"
func (v Collection) String() string {
	s := []string{}
	for _, attr := range v {
		s = append(s, attr.Name+"="+attr.Values.String())
	}
	return "{" + strings.Join(s, " ") + "}"
}

// Type returns TypeCollection
func (Collection) Type() Type { return TypeCollection }

// Member returns the collection member by name, or nil
func (v Collection) Member(name string) *Attribute {
	for i := range v {
		if v[i].Name == name {
			return &v[i]
		}
	}
	return nil
}

// isEmpty reports whether value is considered missing
// by the Encoder's omitEmpty mode
func isEmpty(v Value) bool {
	switch v := v.(type) {
	case nil:
		return true
	case Boolean:
		return !bool(v)
	case Integer:
		return v == 0
	case String:
		return v == "" || v == "0"
	}
	return false
}
