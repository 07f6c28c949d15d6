/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP responses
 */

package codec

// Group represents a group of attributes: the delimiter
// tag and attributes that follow it
type Group struct {
	Tag   Tag         // Group tag
	Attrs []Attribute // Group attributes
}

// Name returns name of the group, i.e., "job-attributes"
func (grp Group) Name() string {
	return grp.Tag.String()
}

// Map returns attributes of the group as AttrMap
func (grp Group) Map() AttrMap {
	return NewAttrMap(grp.Attrs)
}

// Response represents a decoded IPP response message.
//
// Groups come in the order of appearance. Groups of the same
// kind may repeat, i.e., Get-Jobs response has one job-attributes
// group per job
type Response struct {
	Version   Version // Protocol version
	Status    Status  // Status code
	RequestID int32   // Request ID
	Groups    []Group // Groups of attributes
	Complete  bool    // End-of-attributes tag was reached
}

// Values returns attributes of all groups, grouped by the group
// name. Each occurrence of a group adds an AttrMap to the list
func (rsp *Response) Values() map[string][]AttrMap {
	values := make(map[string][]AttrMap)
	for _, grp := range rsp.Groups {
		name := grp.Name()
		values[name] = append(values[name], grp.Map())
	}
	return values
}

// GroupsOf returns all groups with the specified tag
func (rsp *Response) GroupsOf(tag Tag) []Group {
	var groups []Group
	for _, grp := range rsp.Groups {
		if grp.Tag == tag {
			groups = append(groups, grp)
		}
	}
	return groups
}

// Operation returns operation attributes of the response
func (rsp *Response) Operation() AttrMap {
	var attrs []Attribute
	for _, grp := range rsp.GroupsOf(TagOperationGroup) {
		attrs = append(attrs, grp.Attrs...)
	}
	return NewAttrMap(attrs)
}

// Jobs returns attributes of the jobs, one AttrMap per job
func (rsp *Response) Jobs() []AttrMap {
	return rsp.maps(TagJobGroup)
}

// Printers returns attributes of the printers, one AttrMap
// per printer
func (rsp *Response) Printers() []AttrMap {
	return rsp.maps(TagPrinterGroup)
}

// Unsupported returns unsupported attributes, as reported
// by the server
func (rsp *Response) Unsupported() AttrMap {
	var attrs []Attribute
	for _, grp := range rsp.GroupsOf(TagUnsupportedGroup) {
		attrs = append(attrs, grp.Attrs...)
	}
	return NewAttrMap(attrs)
}

// StatusMessage returns "status-message" operation
// attribute, if present
func (rsp *Response) StatusMessage() string {
	return rsp.Operation().Single("status-message")
}

// Charset returns "attributes-charset" of the response
func (rsp *Response) Charset() string {
	return rsp.Operation().Single("attributes-charset")
}

// Language returns "attributes-natural-language" of
// the response
func (rsp *Response) Language() string {
	return rsp.Operation().Single("attributes-natural-language")
}

// maps returns AttrMap for each group with the specified tag
func (rsp *Response) maps(tag Tag) []AttrMap {
	var maps []AttrMap
	for _, grp := range rsp.GroupsOf(tag) {
		maps = append(maps, grp.Map())
	}
	return maps
}
