/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Printers and printer operations
 */

package cups

import (
	"context"

	"github.com/OpenPrinting/ipp-cups/codec"
	"github.com/google/uuid"
)

// DefaultPrinterAttributes are requested by CUPS-Get-Printers and
// CUPS-Get-Default, if caller doesn't specify attributes explicitly
var DefaultPrinterAttributes = []string{
	"printer-uri-supported",
	"printer-name",
	"printer-state",
	"printer-location",
	"printer-info",
	"printer-type",
	"printer-icons",
}

// Printer represents a printer
type Printer struct {
	URI   string        // printer-uri-supported
	Name  string        // printer-name
	State codec.Enum    // printer-state
	Attrs codec.AttrMap // All received attributes
}

// NewPrinter creates a new Printer with the URI
func NewPrinter(uri string) *Printer {
	return &Printer{URI: uri, Attrs: make(codec.AttrMap)}
}

// UUID returns printer-uuid
func (p *Printer) UUID() (uuid.UUID, error) {
	return parseUUID(p.Attrs, "printer-uuid")
}

// Type returns printer-type flags
func (p *Printer) Type() codec.Flags {
	if v := p.Attrs.Get(codec.TypeFlags, "printer-type"); v != nil {
		return v[0].(codec.Flags)
	}
	return nil
}

// Location returns printer-location
func (p *Printer) Location() string {
	return p.Attrs.Single("printer-location")
}

// Info returns printer-info with fallback to printer-make-and-model
func (p *Printer) Info() string {
	return p.Attrs.Single("printer-info", "printer-make-and-model")
}

// IsAcceptingJobs reports printer-is-accepting-jobs. If attribute
// is missed, printer-type is consulted
func (p *Printer) IsAcceptingJobs() bool {
	if accepting, ok := p.Attrs.Bool("printer-is-accepting-jobs"); ok {
		return accepting
	}

	return !p.Type().Has("rejecting-jobs")
}

// fill fills printer from received attributes. Received
// attributes are merged with already known
func (p *Printer) fill(attrs codec.AttrMap) {
	if p.Attrs == nil {
		p.Attrs = make(codec.AttrMap)
	}

	for name, values := range attrs {
		p.Attrs[name] = values
	}

	if uri := attrs.Single("printer-uri-supported"); uri != "" {
		p.URI = uri
	}

	p.Name = attrs.Single("printer-name")

	if v := attrs.Get(codec.TypeEnum, "printer-state"); v != nil {
		p.State = v[0].(codec.Enum)
	}
}

// PrinterManager performs printer operations
type PrinterManager struct {
	*Manager
}

// Get returns printer by URI, using Get-Printer-Attributes.
// ErrNotFound is returned if server doesn't report printer-name
func (pm *PrinterManager) Get(ctx context.Context, uri string) (*Printer, error) {
	p := NewPrinter(uri)

	err := pm.Reload(ctx, p)
	if err != nil {
		return nil, err
	}

	if p.Name == "" {
		return nil, ErrNotFound
	}

	return p, nil
}

// Reload refreshes printer attributes using Get-Printer-Attributes
func (pm *PrinterManager) Reload(ctx context.Context, p *Printer) error {
	if p.URI == "" {
		return ErrNoURI
	}

	rq := pm.NewRequest(codec.OpGetPrinterAttributes)
	rq.AddOperation("printer-uri", codec.String(p.URI))

	rsp, err := pm.Do(ctx, pathRoot, rq, nil)
	if err != nil {
		return err
	}

	if printers := rsp.Printers(); len(printers) > 0 {
		p.fill(printers[0])
	}

	return nil
}

// Default returns the default printer, using CUPS-Get-Default.
// If server has no default printer, ErrNotFound is returned
func (pm *PrinterManager) Default(ctx context.Context,
	attrs ...string) (*Printer, error) {

	printers, err := pm.list(ctx, codec.OpCupsGetDefault, attrs)
	if err != nil {
		return nil, err
	}

	if len(printers) == 0 {
		return nil, ErrNotFound
	}

	return printers[0], nil
}

// List returns all printers, using CUPS-Get-Printers.
// If attrs are not specified, DefaultPrinterAttributes
// are requested
func (pm *PrinterManager) List(ctx context.Context,
	attrs ...string) ([]*Printer, error) {

	return pm.list(ctx, codec.OpCupsGetPrinters, attrs)
}

// Pause stops the printer, using Pause-Printer. Printer
// attributes are reloaded after that
func (pm *PrinterManager) Pause(ctx context.Context, p *Printer) error {
	return pm.admin(ctx, codec.OpPausePrinter, p, true)
}

// Resume restarts the printer, using Resume-Printer. Printer
// attributes are reloaded after that
func (pm *PrinterManager) Resume(ctx context.Context, p *Printer) error {
	return pm.admin(ctx, codec.OpResumePrinter, p, true)
}

// Purge deletes all printer's jobs, using Purge-Jobs
func (pm *PrinterManager) Purge(ctx context.Context, p *Printer) error {
	return pm.admin(ctx, codec.OpPurgeJobs, p, false)
}

// Perform CUPS-Get-Printers or CUPS-Get-Default
func (pm *PrinterManager) list(ctx context.Context, op codec.Op,
	attrs []string) ([]*Printer, error) {

	if len(attrs) == 0 {
		attrs = DefaultPrinterAttributes
	}

	rq := pm.NewRequest(op)
	rq.Add(codec.TagOperationGroup, codec.Property{
		Name:   "requested-attributes",
		Values: codec.Strings(attrs...),
	})

	rsp, err := pm.Do(ctx, pathRoot, rq, nil)
	if err != nil {
		return nil, err
	}

	var printers []*Printer
	for _, attrs := range rsp.Printers() {
		p := NewPrinter("")
		p.fill(attrs)
		printers = append(printers, p)
	}

	return printers, nil
}

// Perform administrative operation on the printer
func (pm *PrinterManager) admin(ctx context.Context, op codec.Op,
	p *Printer, reload bool) error {

	if p.URI == "" {
		return ErrNoURI
	}

	rq := pm.NewRequest(op)
	rq.AddOperation("printer-uri", codec.String(p.URI))
	if op == codec.OpPurgeJobs {
		rq.AddOperation("purge-jobs", codec.Boolean(true))
	}

	_, err := pm.Do(ctx, pathAdmin, rq, nil)
	if err == nil && reload {
		err = pm.Reload(ctx, p)
	}

	return err
}

// parseUUID parses UUID attribute. The urn:uuid: prefix
// is accepted
func parseUUID(attrs codec.AttrMap, name string) (uuid.UUID, error) {
	s := attrs.Single(name)
	if s == "" {
		return uuid.Nil, ErrNotFound
	}

	return uuid.Parse(s)
}
