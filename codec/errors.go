/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Codec errors
 */

package codec

import (
	"errors"
	"fmt"
)

// Error values returned by the codec. Returned errors wrap
// one of these, use errors.Is to test for them
//
// Encoding errors mean the caller supplied an invalid value and the
// request must not be sent. ErrMalformedResponse and ErrUnknownEnum
// are never fatal: the decoder returns what it has parsed so far and
// the interpreter substitutes a descriptive placeholder
var (
	ErrValueTooLong      = errors.New("Value exceeds 65535 bytes")
	ErrOutOfRange        = fmt.Errorf("Values must be between %d and %d", MinInteger, MaxInteger)
	ErrUnknownAttribute  = errors.New("Property not found")
	ErrUnknownType       = errors.New("Type not found")
	ErrUnsupportedType   = errors.New("Property type not supported")
	ErrBadValue          = errors.New("Invalid property value")
	ErrMalformedResponse = errors.New("Malformed response")
	ErrUnknownEnum       = errors.New("Unknown enum value")
)
