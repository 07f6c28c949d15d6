/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Printer operations tests
 */

package cups

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/OpenPrinting/goipp"
	"github.com/OpenPrinting/ipp-cups/codec"
	"github.com/OpenPrinting/ipp-cups/conf"
)

const testPrinterURI = "ipp://localhost/printers/laser"

// printerAttrs returns attributes of the test printer
func printerAttrs(name string, state int) goipp.Attributes {
	return goipp.Attributes{
		goipp.MakeAttribute("printer-uri-supported",
			goipp.TagURI, goipp.String("ipp://localhost/printers/"+name)),
		goipp.MakeAttribute("printer-name",
			goipp.TagName, goipp.String(name)),
		goipp.MakeAttribute("printer-state",
			goipp.TagEnum, goipp.Integer(state)),
		goipp.MakeAttribute("printer-location",
			goipp.TagText, goipp.String("Room 101")),
		goipp.MakeAttribute("printer-type",
			goipp.TagEnum, goipp.Integer(1<<2|1<<19)),
		goipp.MakeAttribute("printer-uuid",
			goipp.TagURI, goipp.String("urn:uuid:4f1d7b30-7bd5-4f0c-a0b4-3b2e0cf0a3a1")),
	}
}

// Test PrinterManager.Get
func TestPrinterGet(t *testing.T) {
	srv := &fakeServer{
		reply: func(rq, rsp *goipp.Message) {
			rsp.Printer = printerAttrs("laser", 3)
		},
	}

	m, _ := newTestManager(t, srv)

	p, err := m.Printers().Get(context.Background(), testPrinterURI)
	if err != nil {
		t.Fatalf("Get: %s", err)
	}

	requests := srv.Requests()
	if len(requests) != 1 {
		t.Fatalf("expected 1 request, present %d", len(requests))
	}

	checkOperation(t, requests[0], goipp.OpGetPrinterAttributes, "/")

	expected := append(commonAttrs(),
		goipp.MakeAttribute("printer-uri",
			goipp.TagURI, goipp.String(testPrinterURI)))
	checkAttrs(t, "Get-Printer-Attributes", requests[0].msg.Operation, expected)

	if p.Name != "laser" || p.URI != testPrinterURI {
		t.Errorf("bad printer: %+v", p)
	}

	if p.State.Code != 3 || p.State.Name != "idle" {
		t.Errorf("printer-state: got %#v", p.State)
	}

	if p.Location() != "Room 101" {
		t.Errorf("Location: got %q", p.Location())
	}

	if !reflect.DeepEqual(p.Type(), codec.Flags{"print-black", "rejecting-jobs"}) {
		t.Errorf("Type: got %q", p.Type())
	}

	if p.IsAcceptingJobs() {
		t.Errorf("IsAcceptingJobs: rejecting-jobs ignored")
	}

	u, err := p.UUID()
	if err != nil || u.String() != "4f1d7b30-7bd5-4f0c-a0b4-3b2e0cf0a3a1" {
		t.Errorf("UUID: got %s, %v", u, err)
	}
}

// Test PrinterManager.Get for missed printer
func TestPrinterGetNotFound(t *testing.T) {
	srv := &fakeServer{}
	m, _ := newTestManager(t, srv)

	_, err := m.Printers().Get(context.Background(), testPrinterURI)
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, present %v", err)
	}

	_, err = m.Printers().Get(context.Background(), "")
	if err != ErrNoURI {
		t.Errorf("expected ErrNoURI, present %v", err)
	}
}

// Test PrinterManager.List
func TestPrinterList(t *testing.T) {
	srv := &fakeServer{
		reply: func(rq, rsp *goipp.Message) {
			withGroups(rsp,
				goipp.Group{Tag: goipp.TagPrinterGroup,
					Attrs: printerAttrs("laser", 3)},
				goipp.Group{Tag: goipp.TagPrinterGroup,
					Attrs: printerAttrs("inkjet", 5)},
			)
		},
	}

	m, _ := newTestManager(t, srv)

	printers, err := m.Printers().List(context.Background())
	if err != nil {
		t.Fatalf("List: %s", err)
	}

	requests := srv.Requests()
	checkOperation(t, requests[0], goipp.Op(codec.OpCupsGetPrinters), "/")

	requested := findAttr(requests[0].msg.Operation, "requested-attributes")
	if len(requested) != len(DefaultPrinterAttributes) {
		t.Errorf("requested-attributes: got %s", requested)
	}

	for i := range requested {
		if requested[i].T != goipp.TagKeyword ||
			requested[i].V.String() != DefaultPrinterAttributes[i] {
			t.Errorf("requested-attributes[%d]: got %s %s",
				i, requested[i].T, requested[i].V)
		}
	}

	if len(printers) != 2 {
		t.Fatalf("expected 2 printers, present %d", len(printers))
	}

	if printers[0].Name != "laser" || printers[1].Name != "inkjet" {
		t.Errorf("bad names: %q, %q", printers[0].Name, printers[1].Name)
	}

	if printers[1].State.Name != "stopped" {
		t.Errorf("printer-state: got %#v", printers[1].State)
	}

	if printers[1].URI != "ipp://localhost/printers/inkjet" {
		t.Errorf("URI: got %q", printers[1].URI)
	}
}

// Test PrinterManager.Default
func TestPrinterDefault(t *testing.T) {
	srv := &fakeServer{}
	m, _ := newTestManager(t, srv)

	_, err := m.Printers().Default(context.Background())
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, present %v", err)
	}

	srv.lock.Lock()
	srv.reply = func(rq, rsp *goipp.Message) {
		rsp.Printer = printerAttrs("laser", 4)
	}
	srv.lock.Unlock()

	p, err := m.Printers().Default(context.Background(), "all")
	if err != nil {
		t.Fatalf("Default: %s", err)
	}

	if p.Name != "laser" || p.State.Name != "processing" {
		t.Errorf("bad printer: %+v", p)
	}

	requests := srv.Requests()
	checkOperation(t, requests[1], goipp.Op(codec.OpCupsGetDefault), "/")

	requested := findAttr(requests[1].msg.Operation, "requested-attributes")
	if len(requested) != 1 || requested[0].V.String() != "all" {
		t.Errorf("requested-attributes: got %s", requested)
	}
}

// Test Pause, Resume and Purge
func TestPrinterAdmin(t *testing.T) {
	srv := &fakeServer{
		reply: func(rq, rsp *goipp.Message) {
			if goipp.Op(rq.Code) == goipp.OpGetPrinterAttributes {
				rsp.Printer = printerAttrs("laser", 5)
			}
		},
	}

	m, _ := newTestManager(t, srv)
	pm := m.Printers()
	p := NewPrinter(testPrinterURI)

	err := pm.Pause(context.Background(), p)
	if err != nil {
		t.Fatalf("Pause: %s", err)
	}

	if p.State.Name != "stopped" {
		t.Errorf("attributes not reloaded after Pause")
	}

	err = pm.Resume(context.Background(), p)
	if err != nil {
		t.Fatalf("Resume: %s", err)
	}

	err = pm.Purge(context.Background(), p)
	if err != nil {
		t.Fatalf("Purge: %s", err)
	}

	requests := srv.Requests()
	if len(requests) != 5 {
		t.Fatalf("expected 5 requests, present %d", len(requests))
	}

	checkOperation(t, requests[0], goipp.OpPausePrinter, "/admin/")
	checkOperation(t, requests[1], goipp.OpGetPrinterAttributes, "/")
	checkOperation(t, requests[2], goipp.OpResumePrinter, "/admin/")
	checkOperation(t, requests[3], goipp.OpGetPrinterAttributes, "/")
	checkOperation(t, requests[4], goipp.OpPurgeJobs, "/admin/")

	expected := append(commonAttrs(),
		goipp.MakeAttribute("printer-uri",
			goipp.TagURI, goipp.String(testPrinterURI)),
		goipp.MakeAttribute("purge-jobs",
			goipp.TagBoolean, goipp.Boolean(true)))
	checkAttrs(t, "Purge-Jobs", requests[4].msg.Operation, expected)

	err = pm.Pause(context.Background(), NewPrinter(""))
	if err != ErrNoURI {
		t.Errorf("expected ErrNoURI, present %v", err)
	}
}

// Test non-successful status
func TestErrorStatus(t *testing.T) {
	srv := &fakeServer{
		reply: func(rq, rsp *goipp.Message) {
			rsp.Code = goipp.Code(goipp.StatusErrorNotFound)
			rsp.Operation.Add(goipp.MakeAttribute("status-message",
				goipp.TagText, goipp.String("The printer does not exist.")))
		},
	}

	m, buf := newTestManager(t, srv)

	_, err := m.Printers().Get(context.Background(), testPrinterURI)

	var ippErr *Error
	if !errors.As(err, &ippErr) {
		t.Fatalf("expected *Error, present %v", err)
	}

	if ippErr.Op != codec.OpGetPrinterAttributes ||
		ippErr.Status != codec.StatusErrorNotFound ||
		ippErr.Message != "The printer does not exist." {
		t.Errorf("bad error: %#v", ippErr)
	}

	msg := "Get-Printer-Attributes: client-error-not-found: The printer does not exist."
	if err.Error() != msg {
		t.Errorf("Error(): expected %q, present %q", msg, err)
	}

	if !strings.Contains(buf.String(), "! IPP: "+msg) {
		t.Errorf("error not logged:\n%s", buf.String())
	}
}

// Test malformed and incomplete responses
func TestMalformedResponse(t *testing.T) {
	header := []byte{0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}
	printer := []byte{
		0x04,
		0x42, 0x00, 0x0c, 'p', 'r', 'i', 'n', 't', 'e', 'r',
		'-', 'n', 'a', 'm', 'e', 0x00, 0x02, 'l', 'p',
	}

	type testData struct {
		comment string // Test description
		raw     []byte // Response
		err     error  // Expected error, nil if none
		logged  bool   // Error and dump expected in the log
	}

	tests := []testData{
		{
			comment: "truncated header",
			raw:     header[:5],
			err:     codec.ErrMalformedResponse,
			logged:  true,
		},

		{
			comment: "no end tag",
			raw:     append(append([]byte{}, header...), printer...),
		},

		{
			comment: "truncated attribute after printer-name",
			raw: append(append(append([]byte{}, header...), printer...),
				0x41, 0x00),
			logged: true,
		},
	}

	for _, test := range tests {
		srv := &fakeServer{raw: test.raw}
		m, buf := newTestManager(t, srv)

		p, err := m.Printers().Get(context.Background(), testPrinterURI)

		if test.err != nil {
			if !errors.Is(err, test.err) {
				t.Errorf("%s: expected %v, present %v",
					test.comment, test.err, err)
			}
		} else if err != nil {
			t.Errorf("%s: %s", test.comment, err)
		} else if p.Name != "lp" {
			t.Errorf("%s: printer-name: got %q", test.comment, p.Name)
		}

		logged := strings.Contains(buf.String(),
			"! IPP: Get-Printer-Attributes: Malformed response") &&
			strings.Contains(buf.String(), "0000: 01 01 00 00")

		if logged != test.logged {
			t.Errorf("%s: log: expected error logged=%v:\n%s",
				test.comment, test.logged, buf.String())
		}
	}
}

// Test NewManagerFromConf
func TestNewManagerFromConf(t *testing.T) {
	cfg := conf.Default()
	cfg.Address = "ftp://localhost"

	_, err := NewManagerFromConf(cfg)
	if err == nil {
		t.Errorf("bad address not detected")
	}

	cfg.Address = "ipp://localhost"
	cfg.User = "bob"
	cfg.Charset = "us-ascii"
	cfg.Language = "de-de"

	m, err := NewManagerFromConf(cfg)
	if err != nil {
		t.Fatalf("%s", err)
	}
	defer m.Close()

	rq := m.NewRequest(codec.OpGetJobs)
	expected := codec.Properties{
		codec.MakeProperty("attributes-charset", codec.String("us-ascii")),
		codec.MakeProperty("attributes-natural-language", codec.String("de-de")),
		codec.MakeProperty("requesting-user-name", codec.String("bob")),
	}

	if !reflect.DeepEqual(rq.Group(codec.TagOperationGroup), expected) {
		t.Errorf("expected %v, present %v",
			expected, rq.Group(codec.TagOperationGroup))
	}
}
