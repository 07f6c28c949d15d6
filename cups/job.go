/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Jobs and job operations
 */

package cups

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenPrinting/ipp-cups/codec"
	"github.com/google/uuid"
)

// Values of the sides attribute
const (
	SidesOneSided          = "one-sided"
	SidesTwoSidedLongEdge  = "two-sided-long-edge"
	SidesTwoSidedShortEdge = "two-sided-short-edge"
)

// Job defaults
const (
	DefaultHoldUntil        = "indefinite" // job-hold-until
	DefaultOperationTimeout = 60           // multiple-operation-time-out, seconds
)

// holdUntilValues lists accepted job-hold-until keywords,
// other than DefaultHoldUntil
var holdUntilValues = []string{
	"no-hold",
	"day-time",
	"evening",
	"night",
	"weekend",
	"second-shift",
	"third-shift",
}

// subsetJobAttributes are requested when only a subset
// of job attributes is needed
var subsetJobAttributes = []string{
	"job-uri",
	"job-name",
	"job-state",
	"job-state-reasons",
}

// Document is a part of job content
type Document struct {
	Name     string // document-name
	MimeType string // document-format
	Path     string // File to send, if not empty
	Data     []byte // Content to send, if Path is empty
}

// open returns document content
func (doc *Document) open() (io.ReadCloser, error) {
	if doc.Path != "" {
		return os.Open(doc.Path)
	}

	return io.NopCloser(bytes.NewReader(doc.Data)), nil
}

// Job represents a print job
type Job struct {
	ID          int64            // job-id
	URI         string           // job-uri
	Name        string           // job-name
	PrinterURI  string           // job-printer-uri
	Username    string           // job-originating-user-name
	State       codec.Enum       // job-state
	StateReason string           // job-state-reasons
	Copies      int64            // copies
	Sides       string           // sides, "" to omit
	PageRanges  string           // page-ranges, i.e., "1-5,8"
	Fidelity    bool             // ipp-attribute-fidelity
	Settings    codec.Properties // Extra job attributes to send
	Attrs       codec.AttrMap    // Received attributes
	Documents   []Document       // Content
}

// NewJob creates a new Job
func NewJob(name string) *Job {
	return &Job{Name: name, Copies: 1, Attrs: make(codec.AttrMap)}
}

// AddFile adds a file to the job content. If name is empty,
// the file's base name is used
func (job *Job) AddFile(path, name, mimeType string) *Job {
	if name == "" {
		name = filepath.Base(path)
	}

	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	job.Documents = append(job.Documents,
		Document{Name: name, MimeType: mimeType, Path: path})
	return job
}

// AddText adds a text to the job content
func (job *Job) AddText(text, name, mimeType string) *Job {
	if mimeType == "" {
		mimeType = "text/plain"
	}

	job.Documents = append(job.Documents,
		Document{Name: name, MimeType: mimeType, Data: []byte(text)})
	return job
}

// UUID returns job-uuid
func (job *Job) UUID() (uuid.UUID, error) {
	return parseUUID(job.Attrs, "job-uuid")
}

// fill fills job from received attributes. Received
// attributes are merged with already known
func (job *Job) fill(attrs codec.AttrMap) {
	if job.Attrs == nil {
		job.Attrs = make(codec.AttrMap)
	}

	for name, values := range attrs {
		job.Attrs[name] = values
	}

	if id, ok := attrs.Int("job-id"); ok {
		job.ID = id
	}

	if uri := attrs.Single("job-uri"); uri != "" {
		job.URI = uri
	}

	if name := attrs.Single("job-name"); name != "" {
		job.Name = name
	} else if job.Name == "" {
		job.Name = fmt.Sprintf("Job #%d", job.ID)
	}

	if v := attrs.Get(codec.TypeEnum, "job-state"); v != nil {
		job.State = v[0].(codec.Enum)
	}

	job.StateReason = attrs.Single("job-state-reasons")

	if copies, ok := attrs.Int("copies"); ok && copies > 0 {
		job.Copies = copies
	}

	if uri := attrs.Single("job-printer-uri"); uri != "" {
		job.PrinterURI = uri
	}

	if user := attrs.Single("job-originating-user-name"); user != "" {
		job.Username = user
	}

	if ranges := attrs.Strings("page-ranges"); ranges != nil {
		job.PageRanges = strings.Join(ranges, ",")
	}
}

// templateAttrs adds job template attributes
func (job *Job) templateAttrs(rq *codec.Request) {
	rq.Add(codec.TagJobGroup, codec.Property{
		Name:      "copies",
		Values:    []codec.Value{codec.Integer(job.Copies)},
		OmitEmpty: true,
	})

	rq.Add(codec.TagJobGroup, codec.Property{
		Name:      "sides",
		Values:    []codec.Value{codec.String(job.Sides)},
		OmitEmpty: true,
	})

	if job.PageRanges != "" {
		ranges := strings.Replace(strings.TrimSpace(job.PageRanges),
			"-", ":", -1)
		rq.Add(codec.TagJobGroup, codec.Property{
			Name:   "page-ranges",
			Values: codec.Strings(strings.Split(ranges, ",")...),
		})
	}

	for _, prop := range job.Settings {
		rq.Add(codec.TagJobGroup, prop)
	}
}

// ListOptions are options of the Get-Jobs operation
type ListOptions struct {
	MyJobs    bool   // Only jobs of the requesting user
	Limit     int64  // Maximum number of jobs, 0 for all
	WhichJobs string // "completed" or "not-completed"
	Subset    bool   // Request only basic attributes
}

// DefaultListOptions returns default Get-Jobs options
func DefaultListOptions() ListOptions {
	return ListOptions{MyJobs: true, WhichJobs: "not-completed"}
}

// JobManager performs job operations
type JobManager struct {
	*Manager
}

// List returns printer's jobs, using Get-Jobs
func (jm *JobManager) List(ctx context.Context, p *Printer,
	opts ListOptions) ([]*Job, error) {

	if p.URI == "" {
		return nil, ErrNoURI
	}

	rq := jm.NewRequest(codec.OpGetJobs)
	rq.AddOperation("printer-uri", codec.String(p.URI))
	rq.Add(codec.TagOperationGroup, codec.Property{
		Name:      "limit",
		Values:    []codec.Value{codec.Integer(opts.Limit)},
		OmitEmpty: true,
	})

	// Server defaults to not-completed
	if opts.WhichJobs == "completed" {
		rq.AddOperation("which-jobs", codec.String(opts.WhichJobs))
	}

	rq.Add(codec.TagOperationGroup, codec.Property{
		Name:      "my-jobs",
		Values:    []codec.Value{codec.Boolean(opts.MyJobs)},
		OmitEmpty: true,
	})

	if opts.Subset {
		rq.AddOperation("requested-attributes",
			codec.String(subsetJobAttributes[0]),
			codec.Strings(subsetJobAttributes[1:]...)...)
	} else {
		// Some CUPS versions return almost nothing without it
		rq.AddOperation("requested-attributes", codec.String("all"))
	}

	rsp, err := jm.Do(ctx, pathJobs, rq, nil)
	if err != nil {
		return nil, err
	}

	var jobs []*Job
	for _, attrs := range rsp.Jobs() {
		job := NewJob("")
		job.fill(attrs)
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// Reload refreshes job attributes, using Get-Job-Attributes.
// The group is "all", "job-template" or "job-description";
// if subset is true, only basic attributes are requested
func (jm *JobManager) Reload(ctx context.Context, job *Job,
	subset bool, group string) error {

	if job.URI == "" {
		return ErrNoURI
	}

	rq := jm.NewRequest(codec.OpGetJobAttributes)
	rq.AddOperation("job-uri", codec.String(job.URI))

	switch {
	case subset:
		rq.AddOperation("requested-attributes",
			codec.String(subsetJobAttributes[0]),
			codec.Strings(subsetJobAttributes[1:]...)...)
	case group == "":
	case group == "all", group == "job-template", group == "job-description":
		rq.AddOperation("requested-attributes", codec.String(group))
	default:
		return fmt.Errorf("%w: %q", ErrAttributeGroup, group)
	}

	rsp, err := jm.Do(ctx, pathJobs, rq, nil)
	if err != nil {
		return err
	}

	if jobs := rsp.Jobs(); len(jobs) > 0 {
		job.fill(jobs[0])
	}

	return nil
}

// Send creates the job on the printer, using Create-Job,
// and sends its documents, using Send-Document. Timeout is
// the multiple-operation-time-out in seconds
func (jm *JobManager) Send(ctx context.Context, p *Printer, job *Job,
	timeout int64) error {

	if p.URI == "" {
		return ErrNoURI
	}

	if len(job.Documents) == 0 {
		return ErrNoDocuments
	}

	// Create job
	rq := jm.NewRequest(codec.OpCreateJob)
	rq.AddOperation("printer-uri", codec.String(p.URI))
	rq.AddOperation("job-name", codec.String(job.Name))
	rq.AddOperation("ipp-attribute-fidelity", codec.Boolean(job.Fidelity))
	rq.AddOperation("multiple-operation-time-out", codec.Integer(timeout))
	job.templateAttrs(rq)

	rsp, err := jm.Do(ctx, pathPrinters, rq, nil)
	if err != nil {
		return err
	}

	if jobs := rsp.Jobs(); len(jobs) > 0 {
		job.fill(jobs[0])
	}
	job.PrinterURI = p.URI

	if job.URI == "" {
		return fmt.Errorf("%s: %w", codec.OpCreateJob, ErrNoURI)
	}

	// Send documents
	for i := range job.Documents {
		err = jm.sendDocument(ctx, job, &job.Documents[i],
			i == len(job.Documents)-1)
		if err != nil {
			return err
		}
	}

	return nil
}

// Send a single document
func (jm *JobManager) sendDocument(ctx context.Context, job *Job,
	doc *Document, last bool) error {

	content, err := doc.open()
	if err != nil {
		return err
	}
	defer content.Close()

	rq := jm.NewRequest(codec.OpSendDocument)
	rq.AddOperation("job-uri", codec.String(job.URI))
	rq.AddOperation("document-name", codec.String(doc.Name))
	rq.Add(codec.TagOperationGroup, codec.Property{
		Name:      "ipp-attribute-fidelity",
		Values:    []codec.Value{codec.Boolean(job.Fidelity)},
		OmitEmpty: true,
	})
	rq.Add(codec.TagOperationGroup, codec.Property{
		Name:      "document-format",
		Values:    []codec.Value{codec.String(doc.MimeType)},
		OmitEmpty: true,
	})
	rq.AddOperation("last-document", codec.Boolean(last))

	_, err = jm.Do(ctx, pathPrinters, rq, content)
	return err
}

// Update changes job attributes, using Set-Job-Attributes.
// Job's template attributes are sent along with the update.
// Job attributes are reloaded after that
func (jm *JobManager) Update(ctx context.Context, job *Job,
	update codec.Properties) error {

	if job.URI == "" {
		return ErrNoURI
	}

	rq := jm.NewRequest(codec.OpSetJobAttributes)
	rq.AddOperation("job-uri", codec.String(job.URI))
	for _, prop := range update {
		rq.Add(codec.TagJobGroup, prop)
	}
	job.templateAttrs(rq)

	return jm.do(ctx, job, rq)
}

// Cancel cancels the job, using Cancel-Job
func (jm *JobManager) Cancel(ctx context.Context, job *Job) error {
	return jm.simple(ctx, codec.OpCancelJob, job)
}

// Release releases the held job, using Release-Job
func (jm *JobManager) Release(ctx context.Context, job *Job) error {
	return jm.simple(ctx, codec.OpReleaseJob, job)
}

// Restart restarts the job, using Restart-Job
func (jm *JobManager) Restart(ctx context.Context, job *Job) error {
	return jm.simple(ctx, codec.OpRestartJob, job)
}

// Hold holds the job, using Hold-Job. Unknown values of until
// are replaced with DefaultHoldUntil
func (jm *JobManager) Hold(ctx context.Context, job *Job, until string) error {
	if job.URI == "" {
		return ErrNoURI
	}

	known := false
	for _, s := range holdUntilValues {
		if s == until {
			known = true
			break
		}
	}

	if !known {
		until = DefaultHoldUntil
	}

	rq := jm.NewRequest(codec.OpHoldJob)
	rq.AddOperation("job-uri", codec.String(job.URI))
	rq.AddOperation("job-hold-until", codec.String(until))

	return jm.do(ctx, job, rq)
}

// Perform operation that needs only job-uri
func (jm *JobManager) simple(ctx context.Context, op codec.Op, job *Job) error {
	if job.URI == "" {
		return ErrNoURI
	}

	rq := jm.NewRequest(op)
	rq.AddOperation("job-uri", codec.String(job.URI))

	return jm.do(ctx, job, rq)
}

// Send job request and reload job attributes
func (jm *JobManager) do(ctx context.Context, job *Job, rq *codec.Request) error {
	_, err := jm.Do(ctx, pathJobs, rq, nil)
	if err == nil {
		err = jm.Reload(ctx, job, false, "all")
	}

	return err
}
