/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP message decoder
 */

package codec

import (
	"errors"
	"fmt"
)

// MaxCollectionDepth is the maximum nesting level of collections
const MaxCollectionDepth = 32

// Decoder decodes IPP response messages
//
// Decoder has no mutable state and may be shared
type Decoder struct {
	interp *Interpreter
}

// NewDecoder creates a new Decoder. If interp is nil,
// the default Interpreter is used
func NewDecoder(interp *Interpreter) *Decoder {
	if interp == nil {
		interp = NewInterpreter()
	}

	return &Decoder{interp: interp}
}

// Interpreter returns Interpreter of the Decoder
func (d *Decoder) Interpreter() *Interpreter {
	return d.interp
}

// Decode decodes the response message.
//
// Malformed input doesn't discard what was already decoded:
// the returned Response is never nil and contains everything up
// to the point of failure, while error wraps ErrMalformedResponse
// and tells the offset. Response.Complete is set only when
// end-of-attributes tag was reached
func (d *Decoder) Decode(data []byte) (*Response, error) {
	md := messageDecoder{data: data, interp: d.interp}
	rsp := &Response{}

	err := md.decode(rsp)
	if err != nil {
		err = fmt.Errorf("%w: %s at 0x%x", ErrMalformedResponse, err, md.off)
	}

	return rsp, err
}

// messageDecoder represents decoder state
type messageDecoder struct {
	data   []byte       // Input data
	off    int          // Offset of the last read
	cnt    int          // Count of read bytes
	interp *Interpreter // Value interpreter
}

// Decode the message
func (md *messageDecoder) decode(rsp *Response) error {
	// Wire format:
	//
	//   2 bytes:  Version
	//   2 bytes:  Code (Operation or Status)
	//   4 bytes:  RequestID
	//   variable: attributes
	//   1 byte:   TagEnd

	// Parse message header
	version, err := md.decodeU16()
	if err != nil {
		return err
	}
	rsp.Version = Version(version)

	status, err := md.decodeU16()
	if err != nil {
		return err
	}
	rsp.Status = Status(status)

	id, err := md.decodeU32()
	if err != nil {
		return err
	}
	rsp.RequestID = int32(id)

	// Now parse attributes. End of data at the tag boundary
	// terminates the message as well as TagEnd does
	for {
		if md.cnt == len(md.data) {
			return nil
		}

		tag, err := md.decodeTag()
		if err != nil {
			return err
		}

		switch {
		case tag == TagZero:
			return errors.New("Invalid tag 0")

		case tag == TagEnd:
			rsp.Complete = true
			return nil

		case tag.IsDelimiter():
			rsp.Groups = append(rsp.Groups, Group{Tag: tag})

		case tag == TagMemberName || tag == TagEndCollection:
			// Stray collection syntax outside of collection,
			// skip it
			_, _, err = md.decodeTLV()
			if err != nil {
				return err
			}

		default:
			err = md.decodeAttribute(rsp, tag)
			if err != nil {
				return err
			}
		}
	}
}

// Decode attribute and save it into the last group.
//
// Attribute without name is the next value of the
// preceding attribute
func (md *messageDecoder) decodeAttribute(rsp *Response, tag Tag) error {
	name, raw, err := md.decodeTLV()
	if err != nil {
		return err
	}

	// Attribute without a group is skipped, together
	// with its collection, if any
	if len(rsp.Groups) == 0 {
		if tag == TagBeginCollection {
			_, err = md.decodeCollection(1)
		}
		return err
	}

	grp := &rsp.Groups[len(rsp.Groups)-1]

	var prev *Attribute
	if name == "" && len(grp.Attrs) > 0 {
		prev = &grp.Attrs[len(grp.Attrs)-1]
		name = prev.Name
	}

	var val AttrValue
	if tag == TagBeginCollection {
		var collection Collection
		collection, err = md.decodeCollection(1)
		if err != nil {
			return err
		}
		val = AttrValue{T: tag, V: collection}
	} else {
		val = md.value(name, tag, raw)
	}

	if prev != nil {
		prev.Values.Add(val)
	} else {
		grp.Attrs = append(grp.Attrs, Attribute{Name: name, Values: Values{val}})
	}

	return nil
}

// Decode a Collection
//
// Collection is like a nested object - an attribute which value is a sequence
// of named attributes. Collections can be nested.
//
// Wire format:
//   ATTR: Tag = TagBeginCollection,            - the outer attribute that
//         Name = "name", value - ignored         contains the collection
//
//   ATTR: Tag = TagMemberName, name = "",      - member name  \
//         value - string, name of the next                     |
//         member                                               | repeated for
//                                                              | each member
//   ATTR: Tag = any attribute tag, name = "",  - repeated for  |
//         value = member value                   multi-value  /
//                                                members
//
//   ATTR: Tag = TagEndCollection, name = "",
//         value - ignored
func (md *messageDecoder) decodeCollection(depth int) (Collection, error) {
	if depth > MaxCollectionDepth {
		return nil, fmt.Errorf("Collection: nesting deeper than %d",
			MaxCollectionDepth)
	}

	collection := make(Collection, 0)
	memberName := ""

	for {
		tag, err := md.decodeTag()
		if err != nil {
			return nil, err
		}

		// Delimiter cannot be inside a collection
		if tag.IsDelimiter() {
			return nil, fmt.Errorf("Collection: unexpected tag %s", tag)
		}

		name, raw, err := md.decodeTLV()
		if err != nil {
			return nil, err
		}

		switch tag {
		case TagEndCollection:
			return collection, nil

		case TagMemberName:
			memberName = string(raw)
			continue
		}

		// Some devices use named attributes within the
		// collection instead of TagMemberName
		if memberName == "" && name != "" {
			memberName = name
		}

		var prev *Attribute
		if memberName == "" && len(collection) > 0 {
			prev = &collection[len(collection)-1]
			name = prev.Name
		} else {
			name = memberName
		}

		var val AttrValue
		if tag == TagBeginCollection {
			var nested Collection
			nested, err = md.decodeCollection(depth + 1)
			if err != nil {
				return nil, err
			}
			val = AttrValue{T: tag, V: nested}
		} else {
			val = md.value(name, tag, raw)
		}

		if prev != nil {
			prev.Values.Add(val)
		} else {
			collection = append(collection,
				Attribute{Name: name, Values: Values{val}})
		}

		memberName = ""
	}
}

// Make AttrValue out of raw value
func (md *messageDecoder) value(name string, tag Tag, raw []byte) AttrValue {
	return AttrValue{
		T:   tag,
		Raw: raw,
		V:   md.interp.Interpret(name, tag, raw),
	}
}

// Decode a single tag-length-value unit, without the tag
//
// Wire format:
//   2+N bytes:  Name length (2 bytes) + name string
//   2+N bytes:  Value length (2 bytes) + value bytes
func (md *messageDecoder) decodeTLV() (name string, value []byte, err error) {
	var data []byte
	data, err = md.decodeBytes()
	if err == nil {
		name = string(data)
		value, err = md.decodeBytes()
	}

	return
}

// Decode a tag
func (md *messageDecoder) decodeTag() (Tag, error) {
	data, err := md.read(1)
	if err != nil {
		return 0, err
	}
	return Tag(data[0]), nil
}

// Decode a 16-bit integer
func (md *messageDecoder) decodeU16() (uint16, error) {
	data, err := md.read(2)
	if err != nil {
		return 0, err
	}
	return uint16(data[0])<<8 | uint16(data[1]), nil
}

// Decode a 32-bit integer
func (md *messageDecoder) decodeU32() (uint32, error) {
	data, err := md.read(4)
	if err != nil {
		return 0, err
	}
	return uint32(data[0])<<24 | uint32(data[1])<<16 |
		uint32(data[2])<<8 | uint32(data[3]), nil
}

// Decode sequence of bytes
func (md *messageDecoder) decodeBytes() ([]byte, error) {
	length, err := md.decodeU16()
	if err != nil {
		return nil, err
	}

	data, err := md.read(int(length))
	if err != nil {
		return nil, err
	}

	return append([]byte(nil), data...), nil
}

// Read a piece of raw data from input buffer
func (md *messageDecoder) read(n int) ([]byte, error) {
	md.off = md.cnt

	if n > len(md.data)-md.cnt {
		return nil, errors.New("Message truncated")
	}

	data := md.data[md.cnt : md.cnt+n]
	md.cnt += n

	return data, nil
}
