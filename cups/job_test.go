/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Job operations tests
 */

package cups

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/OpenPrinting/goipp"
	"github.com/OpenPrinting/ipp-cups/codec"
)

const testJobURI = "ipp://localhost/jobs/12"

// jobAttrs returns attributes of the test job
func jobAttrs(id int, name string, state int) goipp.Attributes {
	attrs := goipp.Attributes{
		goipp.MakeAttribute("job-id",
			goipp.TagInteger, goipp.Integer(id)),
		goipp.MakeAttribute("job-uri",
			goipp.TagURI, goipp.String(testJobURI)),
		goipp.MakeAttribute("job-state",
			goipp.TagEnum, goipp.Integer(state)),
		goipp.MakeAttr("job-state-reasons",
			goipp.TagKeyword, goipp.String("job-incoming"),
			goipp.String("job-hold-until-specified")),
		goipp.MakeAttribute("job-uuid",
			goipp.TagURI, goipp.String("urn:uuid:00000000-0000-4000-8000-00000000000c")),
	}

	if name != "" {
		attrs.Add(goipp.MakeAttribute("job-name",
			goipp.TagName, goipp.String(name)))
	}

	return attrs
}

// Test JobManager.List
func TestJobList(t *testing.T) {
	srv := &fakeServer{
		reply: func(rq, rsp *goipp.Message) {
			withGroups(rsp,
				goipp.Group{Tag: goipp.TagJobGroup,
					Attrs: jobAttrs(12, "report", 3)},
				goipp.Group{Tag: goipp.TagJobGroup,
					Attrs: jobAttrs(13, "", 9)},
			)
		},
	}

	m, _ := newTestManager(t, srv)

	jobs, err := m.Jobs().List(context.Background(),
		NewPrinter(testPrinterURI), DefaultListOptions())
	if err != nil {
		t.Fatalf("List: %s", err)
	}

	requests := srv.Requests()
	checkOperation(t, requests[0], goipp.OpGetJobs, "/jobs/")

	expected := append(commonAttrs(),
		goipp.MakeAttribute("printer-uri",
			goipp.TagURI, goipp.String(testPrinterURI)),
		goipp.MakeAttribute("my-jobs",
			goipp.TagBoolean, goipp.Boolean(true)),
		goipp.MakeAttribute("requested-attributes",
			goipp.TagKeyword, goipp.String("all")))
	checkAttrs(t, "Get-Jobs", requests[0].msg.Operation, expected)

	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, present %d", len(jobs))
	}

	if jobs[0].ID != 12 || jobs[0].Name != "report" ||
		jobs[0].State.Name != "pending" || jobs[0].URI != testJobURI {
		t.Errorf("bad job: %+v", jobs[0])
	}

	if jobs[0].StateReason != "job-incoming" {
		t.Errorf("StateReason: got %q", jobs[0].StateReason)
	}

	if jobs[1].Name != "Job #13" || jobs[1].State.Name != "completed" {
		t.Errorf("bad job: %+v", jobs[1])
	}

	u, err := jobs[0].UUID()
	if err != nil || u.String() != "00000000-0000-4000-8000-00000000000c" {
		t.Errorf("UUID: got %s, %v", u, err)
	}
}

// Test Get-Jobs options
func TestJobListOptions(t *testing.T) {
	srv := &fakeServer{}
	m, _ := newTestManager(t, srv)

	opts := ListOptions{
		MyJobs:    false,
		Limit:     5,
		WhichJobs: "completed",
		Subset:    true,
	}

	_, err := m.Jobs().List(context.Background(), NewPrinter(testPrinterURI), opts)
	if err != nil {
		t.Fatalf("List: %s", err)
	}

	expected := append(commonAttrs(),
		goipp.MakeAttribute("printer-uri",
			goipp.TagURI, goipp.String(testPrinterURI)),
		goipp.MakeAttribute("limit",
			goipp.TagInteger, goipp.Integer(5)),
		goipp.MakeAttribute("which-jobs",
			goipp.TagKeyword, goipp.String("completed")),
		goipp.MakeAttr("requested-attributes",
			goipp.TagKeyword, goipp.String("job-uri"),
			goipp.String("job-name"), goipp.String("job-state"),
			goipp.String("job-state-reasons")))
	checkAttrs(t, "Get-Jobs", srv.Requests()[0].msg.Operation, expected)
}

// Test JobManager.Send
func TestJobSend(t *testing.T) {
	srv := &fakeServer{
		reply: func(rq, rsp *goipp.Message) {
			if goipp.Op(rq.Code) == goipp.OpCreateJob {
				rsp.Job = jobAttrs(12, "", 3)
			}
		},
	}

	m, _ := newTestManager(t, srv)

	path := filepath.Join(t.TempDir(), "page.pdf")
	err := os.WriteFile(path, []byte("%PDF-1.4\n"), 0644)
	if err != nil {
		t.Fatalf("%s", err)
	}

	job := NewJob("report")
	job.Copies = 2
	job.Sides = SidesTwoSidedLongEdge
	job.PageRanges = "1-5,8"
	job.Settings.Add("print-quality", codec.Integer(5))
	job.AddText("hello", "greeting", "")
	job.AddFile(path, "", "application/pdf")

	err = m.Jobs().Send(context.Background(), NewPrinter(testPrinterURI),
		job, DefaultOperationTimeout)
	if err != nil {
		t.Fatalf("Send: %s", err)
	}

	requests := srv.Requests()
	if len(requests) != 3 {
		t.Fatalf("expected 3 requests, present %d", len(requests))
	}

	// Create-Job
	checkOperation(t, requests[0], goipp.OpCreateJob, "/printers/")

	expected := append(commonAttrs(),
		goipp.MakeAttribute("printer-uri",
			goipp.TagURI, goipp.String(testPrinterURI)),
		goipp.MakeAttribute("job-name",
			goipp.TagName, goipp.String("report")),
		goipp.MakeAttribute("ipp-attribute-fidelity",
			goipp.TagBoolean, goipp.Boolean(false)),
		goipp.MakeAttribute("multiple-operation-time-out",
			goipp.TagInteger, goipp.Integer(60)))
	checkAttrs(t, "Create-Job", requests[0].msg.Operation, expected)

	expected = goipp.Attributes{
		goipp.MakeAttribute("copies",
			goipp.TagInteger, goipp.Integer(2)),
		goipp.MakeAttribute("sides",
			goipp.TagKeyword, goipp.String("two-sided-long-edge")),
		goipp.MakeAttr("page-ranges",
			goipp.TagRange, goipp.Range{Lower: 1, Upper: 5},
			goipp.Range{Lower: 8, Upper: 8}),
		goipp.MakeAttribute("print-quality",
			goipp.TagEnum, goipp.Integer(5)),
	}
	checkAttrs(t, "Create-Job", requests[0].msg.Job, expected)

	// Send-Document
	for i, doc := range []struct {
		name, format, content string
		last                  bool
	}{
		{"greeting", "text/plain", "hello", false},
		{"page.pdf", "application/pdf", "%PDF-1.4\n", true},
	} {
		rq := requests[i+1]
		checkOperation(t, rq, goipp.OpSendDocument, "/printers/")

		expected := append(commonAttrs(),
			goipp.MakeAttribute("job-uri",
				goipp.TagURI, goipp.String(testJobURI)),
			goipp.MakeAttribute("document-name",
				goipp.TagName, goipp.String(doc.name)),
			goipp.MakeAttribute("document-format",
				goipp.TagMimeType, goipp.String(doc.format)),
			goipp.MakeAttribute("last-document",
				goipp.TagBoolean, goipp.Boolean(doc.last)))
		checkAttrs(t, "Send-Document", rq.msg.Operation, expected)

		if string(rq.doc) != doc.content {
			t.Errorf("Send-Document: expected %q, present %q",
				doc.content, rq.doc)
		}
	}

	if job.ID != 12 || job.URI != testJobURI || job.Name != "report" ||
		job.PrinterURI != testPrinterURI {
		t.Errorf("bad job: %+v", job)
	}
}

// Test JobManager.Send errors
func TestJobSendErrors(t *testing.T) {
	srv := &fakeServer{}
	m, _ := newTestManager(t, srv)
	jm := m.Jobs()

	err := jm.Send(context.Background(), NewPrinter(testPrinterURI),
		NewJob("empty"), DefaultOperationTimeout)
	if err != ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, present %v", err)
	}

	// Server doesn't return job-uri
	job := NewJob("text").AddText("hello", "", "")
	err = jm.Send(context.Background(), NewPrinter(testPrinterURI),
		job, DefaultOperationTimeout)
	if !errors.Is(err, ErrNoURI) {
		t.Errorf("expected ErrNoURI, present %v", err)
	}

	// Missed file
	job = NewJob("file").AddFile("/no/such/file", "", "")
	job.URI = testJobURI
	srv.lock.Lock()
	srv.reply = func(rq, rsp *goipp.Message) {
		rsp.Job = jobAttrs(12, "", 3)
	}
	srv.lock.Unlock()

	err = jm.Send(context.Background(), NewPrinter(testPrinterURI),
		job, DefaultOperationTimeout)
	if !os.IsNotExist(err) {
		t.Errorf("expected file not found, present %v", err)
	}

	// Invalid settings are rejected before sending
	cnt := len(srv.Requests())
	job = NewJob("bad").AddText("hello", "", "")
	job.Settings.Add("no-such-attribute", codec.String("x"))
	err = jm.Send(context.Background(), NewPrinter(testPrinterURI),
		job, DefaultOperationTimeout)
	if !errors.Is(err, codec.ErrUnknownAttribute) {
		t.Errorf("expected ErrUnknownAttribute, present %v", err)
	}

	if len(srv.Requests()) != cnt {
		t.Errorf("invalid request was sent")
	}
}

// Test Cancel, Release, Restart, Hold and Update
func TestJobOperations(t *testing.T) {
	srv := &fakeServer{
		reply: func(rq, rsp *goipp.Message) {
			if goipp.Op(rq.Code) == goipp.OpGetJobAttributes {
				rsp.Job = jobAttrs(12, "report", 7)
			}
		},
	}

	m, _ := newTestManager(t, srv)
	jm := m.Jobs()

	job := NewJob("report")
	job.URI = testJobURI

	ctx := context.Background()
	for _, op := range []func() error{
		func() error { return jm.Cancel(ctx, job) },
		func() error { return jm.Release(ctx, job) },
		func() error { return jm.Restart(ctx, job) },
		func() error { return jm.Hold(ctx, job, "weekend") },
		func() error { return jm.Hold(ctx, job, "tomorrow") },
		func() error {
			return jm.Update(ctx, job, codec.Properties{
				codec.MakeProperty("job-priority", codec.Integer(80)),
			})
		},
	} {
		err := op()
		if err != nil {
			t.Fatalf("%s", err)
		}
	}

	requests := srv.Requests()
	if len(requests) != 12 {
		t.Fatalf("expected 12 requests, present %d", len(requests))
	}

	ops := []goipp.Op{
		goipp.OpCancelJob,
		goipp.OpReleaseJob,
		goipp.OpRestartJob,
		goipp.OpHoldJob,
		goipp.OpHoldJob,
		goipp.OpSetJobAttributes,
	}

	for i, op := range ops {
		checkOperation(t, requests[2*i], op, "/jobs/")
		checkOperation(t, requests[2*i+1], goipp.OpGetJobAttributes, "/jobs/")

		reload := append(commonAttrs(),
			goipp.MakeAttribute("job-uri",
				goipp.TagURI, goipp.String(testJobURI)),
			goipp.MakeAttribute("requested-attributes",
				goipp.TagKeyword, goipp.String("all")))
		checkAttrs(t, "Get-Job-Attributes",
			requests[2*i+1].msg.Operation, reload)
	}

	expected := append(commonAttrs(),
		goipp.MakeAttribute("job-uri",
			goipp.TagURI, goipp.String(testJobURI)))
	checkAttrs(t, "Cancel-Job", requests[0].msg.Operation, expected)

	for i, until := range []string{"weekend", "indefinite"} {
		expected := append(commonAttrs(),
			goipp.MakeAttribute("job-uri",
				goipp.TagURI, goipp.String(testJobURI)),
			goipp.MakeAttribute("job-hold-until",
				goipp.TagKeyword, goipp.String(until)))
		checkAttrs(t, "Hold-Job", requests[6+2*i].msg.Operation, expected)
	}

	expected = goipp.Attributes{
		goipp.MakeAttribute("job-priority",
			goipp.TagInteger, goipp.Integer(80)),
		goipp.MakeAttribute("copies",
			goipp.TagInteger, goipp.Integer(1)),
	}
	checkAttrs(t, "Set-Job-Attributes", requests[10].msg.Job, expected)

	if job.State.Name != "canceled" {
		t.Errorf("job-state: got %#v", job.State)
	}
}

// Test JobManager.Reload
func TestJobReload(t *testing.T) {
	srv := &fakeServer{}
	m, _ := newTestManager(t, srv)
	jm := m.Jobs()

	job := NewJob("report")

	err := jm.Reload(context.Background(), job, false, "all")
	if err != ErrNoURI {
		t.Errorf("expected ErrNoURI, present %v", err)
	}

	job.URI = testJobURI
	err = jm.Reload(context.Background(), job, false, "job-attributes")
	if !errors.Is(err, ErrAttributeGroup) {
		t.Errorf("expected ErrAttributeGroup, present %v", err)
	}

	err = jm.Reload(context.Background(), job, true, "")
	if err != nil {
		t.Fatalf("Reload: %s", err)
	}

	requested := findAttr(srv.Requests()[0].msg.Operation, "requested-attributes")
	if len(requested) != len(subsetJobAttributes) {
		t.Errorf("requested-attributes: got %s", requested)
	}
}
