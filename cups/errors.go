/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Operation errors
 */

package cups

import (
	"errors"
	"fmt"

	"github.com/OpenPrinting/ipp-cups/codec"
)

// Error values for operations
var (
	ErrNotFound       = errors.New("Not found")
	ErrNoURI          = errors.New("Object has no URI")
	ErrNoDocuments    = errors.New("Job has no documents")
	ErrAttributeGroup = errors.New("Invalid attribute group")
)

// Error is returned, when server responds with
// non-successful status
type Error struct {
	Op      codec.Op     // Operation
	Status  codec.Status // Response status
	Message string       // status-message, may be empty
}

// Error implements error interface
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Status, e.Message)
	}

	return fmt.Sprintf("%s: %s", e.Op, e.Status)
}
