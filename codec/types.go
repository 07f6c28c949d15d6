/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Table of value types
 */

package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Build enumerates encoding classes of value types: how the
// Encoder converts a Value into the wire representation
type Build int

// Build values
const (
	BuildNone        Build = iota // Type cannot be encoded
	BuildNoValue                  // Empty value
	BuildBoolean                  // 1 byte, 0x00 or 0x01
	BuildInteger                  // 4 bytes, signed big-endian
	BuildEnum                     // As is for strings, 4 bytes for numbers
	BuildRange                    // 8 bytes, two integers
	BuildResolution               // 8 bytes range + optional units byte
	BuildString                   // Raw bytes of the string
	BuildDateTime                 // Not implemented
	BuildExtended                 // Not implemented
	BuildOctetString              // Not implemented
)

// String returns the name of Build, as used in types.yaml
func (b Build) String() string {
	if 0 <= b && int(b) < len(buildNames) {
		return buildNames[b]
	}
	return fmt.Sprintf("build(%d)", int(b))
}

var buildNames = [...]string{
	BuildNone:        "",
	BuildNoValue:     "no_value",
	BuildBoolean:     "boolean",
	BuildInteger:     "integer",
	BuildEnum:        "enum",
	BuildRange:       "range_of_integers",
	BuildResolution:  "resolution",
	BuildString:      "string",
	BuildDateTime:    "datetime",
	BuildExtended:    "extended",
	BuildOctetString: "octet_string",
}

// UnmarshalYAML decodes Build from its name
func (b *Build) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}

	for i, s := range buildNames {
		if s == name {
			*b = Build(i)
			return nil
		}
	}

	return fmt.Errorf("line %d: unknown build class %q", node.Line, name)
}

// ValueType describes a value type: its name, wire tag
// and encoding class
type ValueType struct {
	Name  string `yaml:"-"`     // Type name, i.e., "rangeOfInteger"
	Tag   Tag    `yaml:"tag"`   // Wire tag
	Build Build  `yaml:"build"` // Encoding class
}

// TypeTable maps type names to value types
//
// TypeTable is immutable after loading and safe for concurrent use
type TypeTable struct {
	types map[string]ValueType
}

// ParseTypeTable parses TypeTable from its YAML representation
func ParseTypeTable(data []byte) (*TypeTable, error) {
	var types map[string]ValueType
	err := yaml.Unmarshal(data, &types)
	if err != nil {
		return nil, err
	}

	for name, vt := range types {
		if vt.Tag.IsDelimiter() || vt.Tag > 0x7f {
			return nil, fmt.Errorf("%s: tag 0x%2.2x is not a value tag",
				name, uint(vt.Tag))
		}

		vt.Name = name
		types[name] = vt
	}

	return &TypeTable{types: types}, nil
}

// Lookup returns ValueType by its name
func (tt *TypeTable) Lookup(name string) (ValueType, error) {
	vt, ok := tt.types[name]
	if !ok {
		return ValueType{}, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return vt, nil
}

// TagFor returns wire tag of the named type
func (tt *TypeTable) TagFor(name string) (Tag, error) {
	vt, err := tt.Lookup(name)
	return vt.Tag, err
}
