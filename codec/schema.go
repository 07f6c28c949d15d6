/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Attribute schema
 */

package codec

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed schema/*.yaml
var schemaFS embed.FS

// Schema files, in lookup order
var schemaGroups = []string{"operation", "job", "printer"}

// Schema maps attribute names to their value types.
//
// IPP attributes are extensible by name while wire tags are a
// small closed set, so new attributes are added to the schema
// files without touching the codec.
//
// Schema is immutable after loading and safe for concurrent use
type Schema struct {
	types  *TypeTable          // Value types
	groups []map[string]string // Attribute name -> type name
}

var (
	defaultSchema     *Schema
	defaultSchemaOnce sync.Once
)

// DefaultSchema returns the Schema, built from the embedded
// schema files. It is loaded on first use
func DefaultSchema() *Schema {
	defaultSchemaOnce.Do(func() {
		sub, err := fs.Sub(schemaFS, "schema")
		if err == nil {
			defaultSchema, err = LoadSchema(sub)
		}

		if err != nil {
			panic(fmt.Errorf("embedded schema: %w", err))
		}
	})

	return defaultSchema
}

// LoadSchema loads Schema from the file system. The following
// files are expected:
//
//	types.yaml      - type name -> {tag, build}
//	operation.yaml  - operation attributes
//	job.yaml        - job attributes
//	printer.yaml    - printer attributes
//
// Attribute files map attribute names to type names and are
// searched in that order
func LoadSchema(fsys fs.FS) (*Schema, error) {
	data, err := fs.ReadFile(fsys, "types.yaml")
	if err != nil {
		return nil, err
	}

	types, err := ParseTypeTable(data)
	if err != nil {
		return nil, fmt.Errorf("types.yaml: %w", err)
	}

	schema := &Schema{types: types}

	for _, grp := range schemaGroups {
		file := grp + ".yaml"
		data, err = fs.ReadFile(fsys, file)
		if err != nil {
			return nil, err
		}

		attrs := make(map[string]string)
		err = yaml.Unmarshal(data, &attrs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}

		schema.groups = append(schema.groups, attrs)
	}

	return schema, nil
}

// Types returns the TypeTable of the Schema
func (schema *Schema) Types() *TypeTable {
	return schema.types
}

// TypeFor returns type name of the attribute
func (schema *Schema) TypeFor(name string) (string, error) {
	for _, attrs := range schema.groups {
		if t, ok := attrs[name]; ok && t != "" {
			return t, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
}

// Resolve returns ValueType of the attribute
func (schema *Schema) Resolve(name string) (ValueType, error) {
	t, err := schema.TypeFor(name)
	if err != nil {
		return ValueType{}, err
	}

	return schema.types.Lookup(t)
}
