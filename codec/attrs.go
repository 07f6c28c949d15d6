/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Convenient access to decoded attributes
 */

package codec

import (
	"strings"
)

// AttrMap represents a collection of IPP attributes,
// enrolled into a map for convenient access
type AttrMap map[string]Values

// NewAttrMap creates AttrMap out of slice of attributes
func NewAttrMap(attrs []Attribute) AttrMap {
	m := make(AttrMap)

	// Note, we move from the end of list to the beginning, so
	// in a case of duplicated attributes, first occurrence wins
	for i := len(attrs) - 1; i >= 0; i-- {
		attr := attrs[i]
		m[attr.Name] = attr.Values
	}

	return m
}

// Has reports whether attribute is present
func (attrs AttrMap) Has(name string) bool {
	_, ok := attrs[name]
	return ok
}

// Single returns a single-string attribute. Multiple names may
// be specified, for fallback purposes
func (attrs AttrMap) Single(names ...string) string {
	strs := attrs.Strings(names...)
	if strs == nil {
		return ""
	}

	return strs[0]
}

// Joined returns a multi-value attribute, represented as
// a comma-separated list
func (attrs AttrMap) Joined(names ...string) string {
	return strings.Join(attrs.Strings(names...), ",")
}

// Strings returns string representation of all values of
// the attribute. Multiple names may be specified, for fallback
// purposes
func (attrs AttrMap) Strings(names ...string) []string {
	for _, name := range names {
		if v, ok := attrs[name]; ok && len(v) > 0 {
			strs := make([]string, len(v))
			for i := range v {
				strs[i] = v[i].V.String()
			}
			return strs
		}
	}

	return nil
}

// Int returns integer attribute. Enums are returned by
// their numeric values
func (attrs AttrMap) Int(names ...string) (int64, bool) {
	if v := attrs.Get(TypeInteger, names...); v != nil {
		return int64(v[0].(Integer)), true
	}

	if v := attrs.Get(TypeEnum, names...); v != nil {
		return v[0].(Enum).Code, true
	}

	return 0, false
}

// Bool returns boolean attribute. The second return value
// is false, if attribute is missed
func (attrs AttrMap) Bool(names ...string) (bool, bool) {
	if v := attrs.Get(TypeBoolean, names...); v != nil {
		return bool(v[0].(Boolean)), true
	}

	return false, false
}

// Get returns attribute's values by attribute name.
// Multiple names may be specified, for fallback purposes.
// Value type is checked and enforced
func (attrs AttrMap) Get(t Type, names ...string) []Value {
	for _, name := range names {
		v, ok := attrs[name]
		if ok && len(v) > 0 && v[0].V.Type() == t {
			vals := make([]Value, len(v))
			for i := range v {
				vals[i] = v[i].V
			}
			return vals
		}
	}

	return nil
}
