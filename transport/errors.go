/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Transport errors
 */

package transport

import (
	"errors"
)

// Error values for transport
var (
	ErrBadAddress = errors.New("Invalid server address")
	ErrHTTPStatus = errors.New("HTTP request failed")
	ErrClosed     = errors.New("Client closed")
)
