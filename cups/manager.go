/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Common part of printer and job operations
 */

package cups

import (
	"context"
	"io"

	"github.com/OpenPrinting/ipp-cups/codec"
	"github.com/OpenPrinting/ipp-cups/conf"
	"github.com/OpenPrinting/ipp-cups/logger"
	"github.com/OpenPrinting/ipp-cups/transport"
)

// Paths of server resources
const (
	pathRoot     = "/"
	pathAdmin    = "/admin/"
	pathJobs     = "/jobs/"
	pathPrinters = "/printers/"
)

// Manager sends IPP requests and decodes responses.
// It is shared by PrinterManager and JobManager
type Manager struct {
	rqctx   *codec.RequestContext // Charset, language, user, request IDs
	client  *transport.Client     // HTTP client
	encoder *codec.Encoder        // Request encoder
	decoder *codec.Decoder        // Response decoder
	log     *logger.Logger        // Logger
}

// NewManager creates a new Manager. If log is nil,
// nothing is logged
func NewManager(client *transport.Client, rqctx *codec.RequestContext,
	log *logger.Logger) *Manager {

	if log == nil {
		log = logger.NewDiscardLogger()
	}

	interp := codec.NewInterpreter()
	interp.VendorOperation = func(code int64) (string, bool) {
		op := codec.Op(code)
		return op.String(), op.Known()
	}

	return &Manager{
		rqctx:   rqctx,
		client:  client,
		encoder: codec.NewEncoder(nil),
		decoder: codec.NewDecoder(interp),
		log:     log,
	}
}

// NewManagerFromConf creates a new Manager, as configured
func NewManagerFromConf(cfg *conf.Configuration) (*Manager, error) {
	log := cfg.Logger()

	client, err := transport.NewClient(cfg.Address, log)
	if err != nil {
		return nil, err
	}

	rqctx := codec.NewRequestContext(cfg.User)
	rqctx.Charset = cfg.Charset
	rqctx.Language = cfg.Language

	return NewManager(client, rqctx, log), nil
}

// Close closes the Manager and its client
func (m *Manager) Close() {
	m.client.Close()
	m.log.Close()
}

// Printers returns PrinterManager
func (m *Manager) Printers() *PrinterManager {
	return &PrinterManager{m}
}

// Jobs returns JobManager
func (m *Manager) Jobs() *JobManager {
	return &JobManager{m}
}

// RequestContext returns context of requests
func (m *Manager) RequestContext() *codec.RequestContext {
	return m.rqctx
}

// NewRequest creates a new request for the operation
func (m *Manager) NewRequest(op codec.Op) *codec.Request {
	return codec.NewRequest(m.rqctx, op)
}

// Do sends request to the resource at the path. If doc is not nil,
// it is sent after the request. Non-successful IPP status is
// returned as *Error, together with the decoded response.
// Malformed response is logged and, if at least one attribute
// group was decoded, processed as if it was complete
func (m *Manager) Do(ctx context.Context, path string,
	rq *codec.Request, doc io.Reader) (*codec.Response, error) {

	payload, err := m.encoder.EncodeRequest(rq)
	if err != nil {
		m.log.Error("IPP: %s: %s", rq.Op, err)
		return nil, err
	}

	data, err := m.client.Do(ctx, path, payload, doc)
	if err != nil {
		return nil, err
	}

	// Malformed response is used as far as it was decoded,
	// unless nothing beyond the header survived
	rsp, err := m.decoder.Decode(data)
	if err != nil {
		m.log.Begin().
			Error("IPP: %s: %s", rq.Op, err).
			Dump(logger.LevelDebug, data, "").
			Commit()

		if len(rsp.Groups) == 0 {
			return rsp, err
		}
	}

	if !rsp.Status.IsSuccess() {
		err = &Error{
			Op:      rq.Op,
			Status:  rsp.Status,
			Message: rsp.StatusMessage(),
		}
		m.log.Error("IPP: %s", err)
		return rsp, err
	}

	m.log.Debug(' ', "IPP: %s: %s", rq.Op, rsp.Status)

	return rsp, nil
}
