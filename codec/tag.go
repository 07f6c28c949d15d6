/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP wire tags
 */

package codec

import (
	"fmt"
)

// Tag represents a one-byte tag of the IPP wire format.
//
// Tags in range 0x00...0x0f are delimiter tags, they start
// a new group of attributes or terminate the message. All
// other tags are value tags, they define how the value that
// follows is encoded
type Tag int

// Tag values
const (
	// Delimiter tags
	TagZero                   Tag = 0x00 // Zero tag, never valid
	TagOperationGroup         Tag = 0x01 // Operation attributes
	TagJobGroup               Tag = 0x02 // Job attributes
	TagEnd                    Tag = 0x03 // End-of-attributes
	TagPrinterGroup           Tag = 0x04 // Printer attributes
	TagUnsupportedGroup       Tag = 0x05 // Unsupported attributes
	TagSubscriptionGroup      Tag = 0x06 // Subscription attributes
	TagEventNotificationGroup Tag = 0x07 // Event notification attributes

	// Out-of-band value tags
	TagUnsupportedValue Tag = 0x10 // unsupported
	TagDefault          Tag = 0x11 // reserved for "default"
	TagUnknown          Tag = 0x12 // unknown
	TagNoValue          Tag = 0x13 // no-value
	TagNotSettable      Tag = 0x15 // not-settable, RFC 3380
	TagDeleteAttr       Tag = 0x16 // delete-attribute, RFC 3380
	TagAdminDefine      Tag = 0x17 // admin-define, RFC 3380

	// Value tags
	TagInteger         Tag = 0x21 // integer
	TagBoolean         Tag = 0x22 // boolean
	TagEnum            Tag = 0x23 // enum
	TagOctetString     Tag = 0x30 // octetString
	TagDateTime        Tag = 0x31 // dateTime
	TagResolution      Tag = 0x32 // resolution
	TagRange           Tag = 0x33 // rangeOfInteger
	TagBeginCollection Tag = 0x34 // begCollection, RFC 3382
	TagTextLang        Tag = 0x35 // textWithLanguage
	TagNameLang        Tag = 0x36 // nameWithLanguage
	TagEndCollection   Tag = 0x37 // endCollection, RFC 3382
	TagText            Tag = 0x41 // textWithoutLanguage
	TagName            Tag = 0x42 // nameWithoutLanguage
	TagKeyword         Tag = 0x44 // keyword
	TagURI             Tag = 0x45 // uri
	TagURIScheme       Tag = 0x46 // uriScheme
	TagCharset         Tag = 0x47 // charset
	TagLanguage        Tag = 0x48 // naturalLanguage
	TagMimeType        Tag = 0x49 // mimeMediaType
	TagMemberName      Tag = 0x4a // memberAttrName, RFC 3382
	TagExtension       Tag = 0x7f // extended type
)

// IsDelimiter returns true for delimiter tags
func (tag Tag) IsDelimiter() bool {
	return uint(tag) < 0x10
}

// IsGroup returns true for tags that start a group of attributes
func (tag Tag) IsGroup() bool {
	return tag.IsDelimiter() && tag != TagZero && tag != TagEnd
}

// IsOutOfBand returns true for tags that carry no value
func (tag Tag) IsOutOfBand() bool {
	return 0x10 <= tag && tag <= 0x1f
}

// String returns the symbolic type name of the tag, as it
// appears in the IPP specifications (i.e., "rangeOfInteger")
//
// Tags without a registered name are classified by the range
// they belong to
func (tag Tag) String() string {
	if 0 <= tag && int(tag) < len(tagNames) {
		if s := tagNames[tag]; s != "" {
			return s
		}
	}

	switch {
	case tag.IsDelimiter():
		return fmt.Sprintf("0x%2.2x (attributes tag reserved for future versions of IPP)", uint(tag))
	case tag.IsOutOfBand():
		return "out-of-band"
	case 0x20 <= tag && tag <= 0x2f:
		return "new integer type"
	case 0x38 <= tag && tag <= 0x3f:
		return "new octet-stream type"
	case 0x4b <= tag && tag <= 0x5f:
		return "new character string type"
	}

	return fmt.Sprintf("0x%2.2x", uint(tag))
}

var tagNames = [...]string{
	// Delimiter tags
	TagZero:                   "zero",
	TagOperationGroup:         "operation-attributes",
	TagJobGroup:               "job-attributes",
	TagEnd:                    "end-of-attributes",
	TagPrinterGroup:           "printer-attributes",
	TagUnsupportedGroup:       "unsupported-attributes",
	TagSubscriptionGroup:      "subscription-attributes",
	TagEventNotificationGroup: "event-notification-attributes",

	// Value tags
	TagUnsupportedValue: "unsupported",
	TagDefault:          "default",
	TagUnknown:          "unknown",
	TagNoValue:          "no-value",
	TagNotSettable:      "not-settable",
	TagDeleteAttr:       "delete-attribute",
	TagAdminDefine:      "admin-define",
	TagInteger:          "integer",
	TagBoolean:          "boolean",
	TagEnum:             "enum",
	TagOctetString:      "octetString",
	TagDateTime:         "dateTime",
	TagResolution:       "resolution",
	TagRange:            "rangeOfInteger",
	TagBeginCollection:  "begCollection",
	TagTextLang:         "textWithLanguage",
	TagNameLang:         "nameWithLanguage",
	TagEndCollection:    "endCollection",
	TagText:             "textWithoutLanguage",
	TagName:             "nameWithoutLanguage",
	TagKeyword:          "keyword",
	TagURI:              "uri",
	TagURIScheme:        "uriScheme",
	TagCharset:          "charset",
	TagLanguage:         "naturalLanguage",
	TagMimeType:         "mimeMediaType",
	TagMemberName:       "memberAttrName",
	TagExtension:        "extended",
}
