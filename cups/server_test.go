/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Fake CUPS server for tests
 */

package cups

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/OpenPrinting/goipp"
	"github.com/OpenPrinting/ipp-cups/codec"
	"github.com/OpenPrinting/ipp-cups/logger"
	"github.com/OpenPrinting/ipp-cups/transport"
)

// fakeRequest is the request, received by fakeServer
type fakeRequest struct {
	path string        // HTTP path
	msg  goipp.Message // Decoded IPP message
	doc  []byte        // Data after the IPP message
}

// fakeServer decodes requests with goipp and replies with
// responses, prepared by the reply callback
type fakeServer struct {
	lock     sync.Mutex
	requests []fakeRequest
	reply    func(rq, rsp *goipp.Message)
	raw      []byte // If not nil, sent instead of response
}

// ServeHTTP implements http.Handler interface
func (srv *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	in := bytes.NewReader(body)
	var msg goipp.Message
	err := msg.Decode(in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, _ := io.ReadAll(in)

	srv.lock.Lock()
	srv.requests = append(srv.requests, fakeRequest{r.URL.Path, msg, doc})
	reply, raw := srv.reply, srv.raw
	srv.lock.Unlock()

	w.Header().Set("Content-Type", goipp.ContentType)

	if raw != nil {
		w.Write(raw)
		return
	}

	rsp := goipp.NewResponse(goipp.DefaultVersion, goipp.StatusOk, msg.RequestID)
	rsp.Operation.Add(goipp.MakeAttribute("attributes-charset",
		goipp.TagCharset, goipp.String("utf-8")))
	rsp.Operation.Add(goipp.MakeAttribute("attributes-natural-language",
		goipp.TagLanguage, goipp.String("en-us")))

	if reply != nil {
		reply(&msg, rsp)
	}

	data, _ := rsp.EncodeBytes()
	w.Write(data)
}

// Requests returns received requests
func (srv *fakeServer) Requests() []fakeRequest {
	srv.lock.Lock()
	defer srv.lock.Unlock()
	return append([]fakeRequest(nil), srv.requests...)
}

// newTestManager creates Manager, connected to the fakeServer
func newTestManager(t *testing.T, srv *fakeServer) (*Manager, *bytes.Buffer) {
	ts := httptest.NewServer(srv)

	buf := &bytes.Buffer{}
	log := logger.NewWriterLogger(buf, logger.LevelAll)

	client, err := transport.NewClient(ts.URL, log)
	if err != nil {
		t.Fatalf("%s", err)
	}

	m := NewManager(client, codec.NewRequestContext("alice"), log)

	t.Cleanup(func() {
		m.Close()
		ts.Close()
	})

	return m, buf
}

// withGroups sets response groups: operation group of the
// response, followed by the specified groups
func withGroups(rsp *goipp.Message, groups ...goipp.Group) {
	rsp.Groups = goipp.Groups{
		{Tag: goipp.TagOperationGroup, Attrs: rsp.Operation},
	}
	rsp.Groups = append(rsp.Groups, groups...)
}

// findAttr returns values of the attribute or nil
func findAttr(attrs goipp.Attributes, name string) goipp.Values {
	for _, attr := range attrs {
		if attr.Name == name {
			return attr.Values
		}
	}
	return nil
}

// checkOperation checks operation code and path of the request
func checkOperation(t *testing.T, rq fakeRequest, op goipp.Op, path string) {
	t.Helper()

	if goipp.Op(rq.msg.Code) != op {
		t.Errorf("operation: expected %s, present %s",
			op, goipp.Op(rq.msg.Code))
	}

	if rq.path != path {
		t.Errorf("%s: path: expected %q, present %q", op, path, rq.path)
	}
}

// checkAttrs compares request attributes
func checkAttrs(t *testing.T, title string, present, expected goipp.Attributes) {
	t.Helper()

	if !present.Equal(expected) {
		f := goipp.NewFormatter()
		f.Printf("%s: attributes mismatch", title)
		f.Printf("expected:")
		f.SetIndent(4)
		f.FmtAttributes(expected)
		f.SetIndent(0)
		f.Printf("present:")
		f.SetIndent(4)
		f.FmtAttributes(present)
		t.Errorf("%s", f.String())
	}
}

// Common operation attributes of requests
func commonAttrs() goipp.Attributes {
	return goipp.Attributes{
		goipp.MakeAttribute("attributes-charset",
			goipp.TagCharset, goipp.String("utf-8")),
		goipp.MakeAttribute("attributes-natural-language",
			goipp.TagLanguage, goipp.String("en-us")),
		goipp.MakeAttribute("requesting-user-name",
			goipp.TagName, goipp.String("alice")),
	}
}
