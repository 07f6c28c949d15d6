/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Symbolic names of enum values
 */

package codec

import (
	"fmt"
)

// enumTable maps enum values of some attribute to their names
type enumTable struct {
	names    map[int64]string // Known values
	max      int64            // Largest value, assigned by standards
	reserved string           // Name of the range above max
}

// placeholder returns a description of the unknown value
func (tbl *enumTable) placeholder(name string, code int64) string {
	if tbl.reserved != "" && code > tbl.max {
		return fmt.Sprintf("Unknown(IETF standards track %q reserved): 0x%x",
			tbl.reserved, code)
	}

	return fmt.Sprintf("Unknown(%q): 0x%x", name, code)
}

var enumJobState = &enumTable{
	names: map[int64]string{
		3: "pending",
		4: "pending-held",
		5: "processing",
		6: "processing-stopped",
		7: "canceled",
		8: "aborted",
		9: "completed",
	},
	max:      9,
	reserved: "job-state",
}

var enumPrinterState = &enumTable{
	names: map[int64]string{
		3: "idle",
		4: "processing",
		5: "stopped",
	},
	max:      5,
	reserved: "printer-state",
}

var enumPrintQuality = &enumTable{
	names: map[int64]string{
		3: "draft",
		4: "normal",
		5: "high",
	},
	max: 5,
}

var enumOrientation = &enumTable{
	names: map[int64]string{
		3: "portrait",
		4: "landscape",
		5: "reverse-landscape",
		6: "reverse-portrait",
	},
	max:      6,
	reserved: "orientation",
}

var enumFinishings = &enumTable{
	names: map[int64]string{
		3:  "none",
		4:  "staple",
		5:  "punch",
		6:  "cover",
		7:  "bind",
		8:  "saddle-stitch",
		9:  "edge-stitch",
		20: "staple-top-left",
		21: "staple-bottom-left",
		22: "staple-top-right",
		23: "staple-bottom-right",
		24: "edge-stitch-left",
		25: "edge-stitch-top",
		26: "edge-stitch-right",
		27: "edge-stitch-bottom",
		28: "staple-dual-left",
		29: "staple-dual-top",
		30: "staple-dual-right",
		31: "staple-dual-bottom",
	},
	max:      31,
	reserved: "finishing",
}

// enumTables maps attribute names to their tables. The
// -supported and -default variants share the table
var enumTables = map[string]*enumTable{
	"job-state":                       enumJobState,
	"printer-state":                   enumPrinterState,
	"print-quality":                   enumPrintQuality,
	"print-quality-supported":         enumPrintQuality,
	"print-quality-default":           enumPrintQuality,
	"orientation-requested":           enumOrientation,
	"orientation-requested-supported": enumOrientation,
	"orientation-requested-default":   enumOrientation,
	"finishings":                      enumFinishings,
	"finishings-supported":            enumFinishings,
	"finishings-default":              enumFinishings,
}

// HasEnumTable reports whether the attribute has symbolic
// names for its enum values
func HasEnumTable(name string) bool {
	return enumTables[name] != nil || name == "operations-supported"
}

// LookupEnum returns symbolic name of enum value of
// the named attribute.
//
// For values without a name it returns a descriptive placeholder
// that embeds the value, together with the error that wraps
// ErrUnknownEnum
func LookupEnum(name string, code int64) (string, error) {
	if name == "operations-supported" {
		return lookupOperation(code, nil)
	}

	tbl := enumTables[name]
	if tbl == nil {
		return fmt.Sprintf("0x%x", code),
			fmt.Errorf("%w: %q has no enum table", ErrUnknownEnum, name)
	}

	if s, ok := tbl.names[code]; ok {
		return s, nil
	}

	return tbl.placeholder(name, code),
		fmt.Errorf("%w: %s=0x%x", ErrUnknownEnum, name, code)
}

// lookupOperation names operations-supported values. Values in
// the vendor range are passed to the vendor callback, if any
func lookupOperation(code int64,
	vendor func(int64) (string, bool)) (string, error) {

	var s string

	switch {
	case code == 0 || code == 1:
		s = fmt.Sprintf("Unknown(reserved) : %d", code)
	case code == 0x0f:
		s = "Unknown(reserved for a future operation)"
	case 0x1d <= code && code <= 0x21:
		s = fmt.Sprintf("Unknown (reserved IETF \"operations\"): 0x%x", code)
	case 0x02 <= code && code <= 0x2b:
		return Op(code).String(), nil
	case 0x2b < code && code < 0x4000:
		s = fmt.Sprintf("Unknown(IETF standards track operations reserved): 0x%x", code)
	case 0x4000 <= code && code <= 0x8fff:
		if vendor != nil {
			if name, ok := vendor(code); ok {
				return name, nil
			}
		}
		s = fmt.Sprintf("Unknown(Vendor extension for operations): 0x%x", code)
	case code > 0x8fff:
		s = fmt.Sprintf("Unknown operation (should not exists): 0x%x", code)
	default:
		s = fmt.Sprintf("Unknown operation: %d", code)
	}

	return s, fmt.Errorf("%w: operations-supported=0x%x", ErrUnknownEnum, code)
}

// printerTypeBits are names of "printer-type" bits, starting
// from bit 0
var printerTypeBits = [...]string{
	"printer-class",
	"remote-destination",
	"print-black",
	"print-color",
	"hardware-print-on-both-sides",
	"hardware-staple-output",
	"hardware-fast-copies",
	"hardware-fast-copy-collation",
	"punch-output",
	"cover-output",
	"bind-output",
	"sort-output",
	"handle-media-up-to-US-Legal-A4",
	"handle-media-between-US-Legal-A4-and-ISO_C-A2",
	"handle-media-larger-than-ISO_C-A2",
	"handle-user-defined-media-sizes",
	"implicit-server-generated-class",
	"network-default-printer",
	"fax-device",
	"rejecting-jobs",
}

// InterpretPrinterType decodes "printer-type" bitmask into
// the list of names of bits that are set. Bits above 19
// are ignored
func InterpretPrinterType(mask int64) Flags {
	flags := Flags{}
	for bit, name := range printerTypeBits {
		if mask&(1<<uint(bit)) != 0 {
			flags = append(flags, name)
		}
	}
	return flags
}
