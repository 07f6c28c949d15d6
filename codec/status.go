/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP status codes
 */

package codec

import (
	"fmt"
)

// Status represents an IPP Status Code
type Status uint16

// Status codes, as reported by IPP/1.1 servers. Names of
// the codes are in statusNames
const (
	// Successful
	StatusOk                     Status = 0x0000
	StatusOkIgnoredOrSubstituted Status = 0x0001
	StatusOkConflicting          Status = 0x0002

	// Client errors. StatusErrorAttributesNotSettable comes
	// from RFC 3380
	StatusErrorBadRequest                 Status = 0x0400
	StatusErrorForbidden                  Status = 0x0401
	StatusErrorNotAuthenticated           Status = 0x0402
	StatusErrorNotAuthorized              Status = 0x0403
	StatusErrorNotPossible                Status = 0x0404
	StatusErrorTimeout                    Status = 0x0405
	StatusErrorNotFound                   Status = 0x0406
	StatusErrorGone                       Status = 0x0407
	StatusErrorRequestEntity              Status = 0x0408
	StatusErrorRequestValue               Status = 0x0409
	StatusErrorDocumentFormatNotSupported Status = 0x040a
	StatusErrorAttributesOrValues         Status = 0x040b
	StatusErrorURIScheme                  Status = 0x040c
	StatusErrorCharset                    Status = 0x040d
	StatusErrorConflicting                Status = 0x040e
	StatusErrorCompressionNotSupported    Status = 0x040f
	StatusErrorCompressionError           Status = 0x0410
	StatusErrorDocumentFormatError        Status = 0x0411
	StatusErrorDocumentAccess             Status = 0x0412
	StatusErrorAttributesNotSettable      Status = 0x0413

	// Server errors
	StatusErrorInternal                 Status = 0x0500
	StatusErrorOperationNotSupported    Status = 0x0501
	StatusErrorServiceUnavailable       Status = 0x0502
	StatusErrorVersionNotSupported      Status = 0x0503
	StatusErrorDevice                   Status = 0x0504
	StatusErrorTemporary                Status = 0x0505
	StatusErrorNotAcceptingJobs         Status = 0x0506
	StatusErrorBusy                     Status = 0x0507
	StatusErrorJobCanceled              Status = 0x0508
	StatusErrorMultipleJobsNotSupported Status = 0x0509
)

// String returns a Status name, as defined by RFC 8011.
// Unnamed codes are reported by their class, if known
func (status Status) String() string {
	if s := statusNames[status]; s != "" {
		return s
	}

	if s := status.Class(); s != "" {
		return s
	}

	return fmt.Sprintf("0x%4.4x", int(status))
}

// Class returns the class of the Status: "successful",
// "informational", "redirection", "client-error" or
// "server-error". For codes out of known classes it
// returns ""
func (status Status) Class() string {
	switch status >> 8 {
	case 0x00:
		return "successful"
	case 0x01:
		return "informational"
	case 0x02:
		return "redirection"
	case 0x04:
		return "client-error"
	case 0x05:
		return "server-error"
	}

	return ""
}

// IsSuccess reports whether Status belongs to the
// successful class
func (status Status) IsSuccess() bool {
	return status < 0x0100
}

var statusNames = map[Status]string{
	StatusOk:                     "successful-ok",
	StatusOkIgnoredOrSubstituted: "successful-ok-ignored-or-substituted-attributes",
	StatusOkConflicting:          "successful-ok-conflicting-attributes",

	StatusErrorBadRequest:                 "client-error-bad-request",
	StatusErrorForbidden:                  "client-error-forbidden",
	StatusErrorNotAuthenticated:           "client-error-not-authenticated",
	StatusErrorNotAuthorized:              "client-error-not-authorized",
	StatusErrorNotPossible:                "client-error-not-possible",
	StatusErrorTimeout:                    "client-error-timeout",
	StatusErrorNotFound:                   "client-error-not-found",
	StatusErrorGone:                       "client-error-gone",
	StatusErrorRequestEntity:              "client-error-request-entity-too-large",
	StatusErrorRequestValue:               "client-error-request-value-too-long",
	StatusErrorDocumentFormatNotSupported: "client-error-document-format-not-supported",
	StatusErrorAttributesOrValues:         "client-error-attributes-or-values-not-supported",
	StatusErrorURIScheme:                  "client-error-uri-scheme-not-supported",
	StatusErrorCharset:                    "client-error-charset-not-supported",
	StatusErrorConflicting:                "client-error-conflicting-attributes",
	StatusErrorCompressionNotSupported:    "client-error-compression-not-supported",
	StatusErrorCompressionError:           "client-error-compression-error",
	StatusErrorDocumentFormatError:        "client-error-document-format-error",
	StatusErrorDocumentAccess:             "client-error-document-access-error",
	StatusErrorAttributesNotSettable:      "client-error-attributes-not-settable",

	StatusErrorInternal:                 "server-error-internal-error",
	StatusErrorOperationNotSupported:    "server-error-operation-not-supported",
	StatusErrorServiceUnavailable:       "server-error-service-unavailable",
	StatusErrorVersionNotSupported:      "server-error-version-not-supported",
	StatusErrorDevice:                   "server-error-device-error",
	StatusErrorTemporary:                "server-error-temporary-error",
	StatusErrorNotAcceptingJobs:         "server-error-not-accepting-jobs",
	StatusErrorBusy:                     "server-error-busy",
	StatusErrorJobCanceled:              "server-error-job-canceled",
	StatusErrorMultipleJobsNotSupported: "server-error-multiple-document-jobs-not-supported",
}
