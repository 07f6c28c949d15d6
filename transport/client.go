/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * HTTP transport for IPP requests
 */

package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/OpenPrinting/goipp"
	"github.com/OpenPrinting/ipp-cups/logger"
)

// DefaultPort is the IANA-assigned IPP port
const DefaultPort = "631"

// Client sends IPP requests to the server over HTTP.
// Client is safe for concurrent use
type Client struct {
	addr    string         // Server address, as configured
	base    url.URL        // Base URL of HTTP requests
	host    string         // Host part of ipp:// URIs
	http    *http.Client   // Underlying HTTP client
	log     *logger.Logger // Logger
	session int32          // Session counter, for logging
	closed  int32          // Non-zero when closed
}

// NewClient creates a new Client. The following address
// forms are supported:
//
//	unix:///path/to/socket  - Unix domain socket (i.e., CUPS local socket)
//	http://host[:port]      - IPP over HTTP
//	ipp://host[:port]       - the same, default port is 631
func NewClient(addr string, log *logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.NewDiscardLogger()
	}

	u, err := url.Parse(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadAddress, addr)
	}

	c := &Client{
		addr: addr,
		log:  log,
		base: url.URL{Scheme: "http"},
	}

	tr := &http.Transport{}

	switch u.Scheme {
	case "unix":
		if u.Path == "" {
			return nil, fmt.Errorf("%w: %q: missed socket path",
				ErrBadAddress, addr)
		}

		path := u.Path
		tr.DialContext = func(ctx context.Context,
			_, _ string) (net.Conn, error) {
			var dialer net.Dialer
			return dialer.DialContext(ctx, "unix", path)
		}

		c.base.Host = "localhost"
		c.host = "localhost"

	case "ipp", "http":
		if u.Host == "" {
			return nil, fmt.Errorf("%w: %q: missed host",
				ErrBadAddress, addr)
		}

		host := u.Host
		if u.Port() == "" && u.Scheme == "ipp" {
			host = net.JoinHostPort(u.Hostname(), DefaultPort)
		}

		c.base.Host = host
		c.base.Path = strings.TrimSuffix(u.Path, "/")
		c.host = host

	default:
		return nil, fmt.Errorf("%w: %q: unsupported scheme",
			ErrBadAddress, addr)
	}

	c.http = &http.Client{Transport: tr}

	return c, nil
}

// Address returns server address, as passed to NewClient
func (c *Client) Address() string {
	return c.addr
}

// URI returns ipp:// URI of the server resource, suitable
// for printer-uri and job-uri attributes
func (c *Client) URI(path string) string {
	u := url.URL{
		Scheme: "ipp",
		Host:   c.host,
		Path:   c.base.Path + "/" + strings.TrimPrefix(path, "/"),
	}
	return u.String()
}

// Close closes idle connections. Client must not be used
// after Close
func (c *Client) Close() {
	atomic.StoreInt32(&c.closed, 1)
	c.http.CloseIdleConnections()
}

// Do sends IPP request to the resource at the path and returns
// the response body. Payload is the encoded IPP message, doc,
// if not nil, is appended to the request body
func (c *Client) Do(ctx context.Context, path string,
	payload []byte, doc io.Reader) ([]byte, error) {

	if atomic.LoadInt32(&c.closed) != 0 {
		return nil, ErrClosed
	}

	session := atomic.AddInt32(&c.session, 1)

	// Prepare request
	u := c.base
	u.Path = c.base.Path + "/" + strings.TrimPrefix(path, "/")

	var body io.Reader = bytes.NewReader(payload)
	if doc != nil {
		body = io.MultiReader(body, doc)
	}

	rq, err := http.NewRequestWithContext(ctx, "POST", u.String(), body)
	if err != nil {
		return nil, err
	}

	rq.Header.Set("Content-Type", goipp.ContentType)

	log := c.log.Begin()
	defer log.Commit()

	c.logRequest(log, session, rq, payload)

	// Execute request
	rsp, err := c.http.Do(rq)
	if err != nil {
		log.Error("HTTP[%d]: %s", session, err)
		return nil, err
	}

	data, err := io.ReadAll(rsp.Body)
	rsp.Body.Close()

	c.logResponse(log, session, rsp, data)

	if err != nil {
		log.Error("HTTP[%d]: %s", session, err)
		return nil, err
	}

	if rsp.StatusCode/100 != 2 {
		err = fmt.Errorf("%w: %s", ErrHTTPStatus, rsp.Status)
		log.Error("HTTP[%d]: %s", session, err)
		return nil, err
	}

	return data, nil
}

// Log HTTP request
func (c *Client) logRequest(log *logger.LogMessage, session int32,
	rq *http.Request, payload []byte) {

	log.HTTPHeader(logger.LevelTraceHTTP, '>',
		fmt.Sprintf("HTTP[%d]: %s %s %s", session, rq.Method, rq.URL, rq.Proto),
		rq.Header)

	c.logIPP(log, session, '>', payload, true)
}

// Log HTTP response
func (c *Client) logResponse(log *logger.LogMessage, session int32,
	rsp *http.Response, data []byte) {

	log.HTTPHeader(logger.LevelTraceHTTP, '<',
		fmt.Sprintf("HTTP[%d]: %s %s", session, rsp.Proto, rsp.Status),
		rsp.Header)

	if rsp.StatusCode/100 == 2 {
		c.logIPP(log, session, '<', data, false)
	}
}

// Log IPP message
func (c *Client) logIPP(log *logger.LogMessage, session int32,
	prefix byte, data []byte, request bool) {

	if !c.log.Enabled(logger.LevelTraceIPP) {
		return
	}

	var msg goipp.Message
	err := msg.DecodeBytes(data)
	if err != nil {
		log.Add(logger.LevelTraceIPP, prefix, "IPP[%d]: %s", session, err)
		log.Dump(logger.LevelTraceIPP, data, "")
		return
	}

	f := goipp.NewFormatter()
	if request {
		f.FmtRequest(&msg)
	} else {
		f.FmtResponse(&msg)
	}

	log.Add(logger.LevelTraceIPP, prefix, "IPP[%d]:", session)
	w := log.LineWriter(logger.LevelTraceIPP, prefix)
	f.WriteTo(w)
	w.Close()
}
