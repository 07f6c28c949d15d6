/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Attributes and properties
 */

package codec

import (
	"strings"
)

// Attribute represents a decoded IPP attribute: a name and
// one or more values
type Attribute struct {
	Name   string // Attribute name
	Values Values // Slice of values
}

// AttrValue is a single decoded attribute value. It keeps
// both the raw payload, as received, and its interpretation
type AttrValue struct {
	T   Tag    // Value tag
	Raw []byte // Raw payload, nil for collections
	V   Value  // Interpreted value
}

// Values represents a sequence of attribute values
type Values []AttrValue

// Add value to Values
func (values *Values) Add(v AttrValue) {
	*values = append(*values, v)
}

// String converts Values to string
func (values Values) String() string {
	if len(values) == 1 {
		return values[0].V.String()
	}

	s := make([]string, len(values))
	for i, v := range values {
		s[i] = v.V.String()
	}

	return "[" + strings.Join(s, ",") + "]"
}

// First returns the first value, or nil if there are none
func (values Values) First() Value {
	if len(values) == 0 {
		return nil
	}
	return values[0].V
}

// Property is a named attribute to be encoded. Its wire type
// is looked up in the Schema by name
type Property struct {
	Name      string  // Attribute name
	Values    []Value // One or more values
	OmitEmpty bool    // Skip empty values, see Encoder.EncodeProperty
}

// MakeProperty makes Property with one or more values
func MakeProperty(name string, val1 Value, values ...Value) Property {
	p := Property{Name: name, Values: make([]Value, 0, len(values)+1)}
	p.Values = append(p.Values, val1)
	p.Values = append(p.Values, values...)
	return p
}

// Properties is an ordered list of properties, encoded as
// a single block within a group of attributes
type Properties []Property

// Add appends a property with one or more values
func (props *Properties) Add(name string, val1 Value, values ...Value) {
	*props = append(*props, MakeProperty(name, val1, values...))
}

// Strings converts slice of strings into slice of String values
func Strings(s ...string) []Value {
	values := make([]Value, len(s))
	for i := range s {
		values[i] = String(s[i])
	}
	return values
}
