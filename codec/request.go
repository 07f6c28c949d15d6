/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP requests
 */

package codec

import (
	"strings"
	"sync/atomic"
)

// Defaults for RequestContext
const (
	DefaultCharset  = "utf-8"
	DefaultLanguage = "en-us"
)

// RequestContext carries per-connection request parameters:
// charset, natural language, requesting user name and the
// request-id counter.
//
// Request IDs start from 1 and grow by one with every request
// made from the context
type RequestContext struct {
	Charset   string // attributes-charset, DefaultCharset if empty
	Language  string // attributes-natural-language, DefaultLanguage if empty
	Username  string // requesting-user-name, omitted if empty
	requestID int32  // Last used request ID
}

// NewRequestContext creates a new RequestContext with
// default charset and language
func NewRequestContext(username string) *RequestContext {
	return &RequestContext{
		Charset:  DefaultCharset,
		Language: DefaultLanguage,
		Username: username,
	}
}

// NextRequestID advances the counter and returns the new
// request ID
func (ctx *RequestContext) NextRequestID() int32 {
	return atomic.AddInt32(&ctx.requestID, 1)
}

// RequestID returns the last used request ID
func (ctx *RequestContext) RequestID() int32 {
	return atomic.LoadInt32(&ctx.requestID)
}

// SetRequestID sets the counter. The next request will
// use id+1
func (ctx *RequestContext) SetRequestID(id int32) {
	atomic.StoreInt32(&ctx.requestID, id)
}

// RequestGroup is a group of request attributes: the
// delimiter tag and the properties that follow it
type RequestGroup struct {
	Tag   Tag        // Group tag
	Props Properties // Group properties
}

// Request represents an IPP request message
type Request struct {
	Version   Version        // Protocol version
	Op        Op             // Operation code
	RequestID int32          // Request ID
	Groups    []RequestGroup // Groups of attributes
}

// NewRequest creates a new request for the operation, taking the
// next request ID from the context. The operation group is
// pre-filled with attributes-charset, attributes-natural-language
// and, if context has the user name, requesting-user-name
func NewRequest(ctx *RequestContext, op Op) *Request {
	charset := ctx.Charset
	if charset == "" {
		charset = DefaultCharset
	}

	lang := ctx.Language
	if lang == "" {
		lang = DefaultLanguage
	}

	rq := &Request{
		Version:   DefaultVersion,
		Op:        op,
		RequestID: ctx.NextRequestID(),
	}

	rq.AddOperation("attributes-charset", String(strings.ToLower(charset)))
	rq.AddOperation("attributes-natural-language", String(lang))

	if ctx.Username != "" {
		rq.AddOperation("requesting-user-name", String(ctx.Username))
	}

	return rq
}

// AddOperation adds property to the operation attributes group
func (rq *Request) AddOperation(name string, val1 Value, values ...Value) {
	rq.Add(TagOperationGroup, MakeProperty(name, val1, values...))
}

// AddJob adds property to the job attributes group
func (rq *Request) AddJob(name string, val1 Value, values ...Value) {
	rq.Add(TagJobGroup, MakeProperty(name, val1, values...))
}

// AddPrinter adds property to the printer attributes group
func (rq *Request) AddPrinter(name string, val1 Value, values ...Value) {
	rq.Add(TagPrinterGroup, MakeProperty(name, val1, values...))
}

// Group returns properties of the group, or nil
func (rq *Request) Group(tag Tag) Properties {
	for _, grp := range rq.Groups {
		if grp.Tag == tag {
			return grp.Props
		}
	}
	return nil
}

// Add appends property to the group, creating the group if needed.
// Operation attributes always go first
func (rq *Request) Add(tag Tag, prop Property) {
	for i := range rq.Groups {
		if rq.Groups[i].Tag == tag {
			rq.Groups[i].Props = append(rq.Groups[i].Props, prop)
			return
		}
	}

	grp := RequestGroup{Tag: tag, Props: Properties{prop}}
	if tag == TagOperationGroup {
		rq.Groups = append([]RequestGroup{grp}, rq.Groups...)
	} else {
		rq.Groups = append(rq.Groups, grp)
	}
}
