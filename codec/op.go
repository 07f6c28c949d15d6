/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP versions and operation codes
 */

package codec

import (
	"fmt"
)

// Version represents a protocol version. It consist
// of Major and Minor version codes, packed into a single
// 16-bit word
type Version uint16

// DefaultVersion is the version requests are sent with (1.1)
const DefaultVersion Version = 0x0101

// MakeVersion makes version from major and minor parts
func MakeVersion(major, minor uint8) Version {
	return Version(major)<<8 | Version(minor)
}

// Major returns a major part of version
func (v Version) Major() uint8 {
	return uint8(v >> 8)
}

// Minor returns a minor part of version
func (v Version) Minor() uint8 {
	return uint8(v)
}

// String converts version to string (i.e., "1.1")
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

// Op represents an IPP Operation Code
type Op uint16

// Op codes
const (
	OpPrintJob             Op = 0x0002 // Print-Job: Print a single file
	OpPrintURI             Op = 0x0003 // Print-URI: Print a single URL
	OpValidateJob          Op = 0x0004 // Validate-Job: Validate job values prior to submission
	OpCreateJob            Op = 0x0005 // Create-Job: Create an empty print job
	OpSendDocument         Op = 0x0006 // Send-Document: Add a file to a job
	OpSendURI              Op = 0x0007 // Send-URI: Add a URL to a job
	OpCancelJob            Op = 0x0008 // Cancel-Job: Cancel a job
	OpGetJobAttributes     Op = 0x0009 // Get-Job-Attributes: Get information about a job
	OpGetJobs              Op = 0x000a // Get-Jobs: Get a list of jobs
	OpGetPrinterAttributes Op = 0x000b // Get-Printer-Attributes: Get information about a printer
	OpHoldJob              Op = 0x000c // Hold-Job: Hold a job for printing
	OpReleaseJob           Op = 0x000d // Release-Job: Release a job for printing
	OpRestartJob           Op = 0x000e // Restart-Job: Reprint a job

	OpPausePrinter               Op = 0x0010 // Pause-Printer: Stop a printer
	OpResumePrinter              Op = 0x0011 // Resume-Printer: Start a printer
	OpPurgeJobs                  Op = 0x0012 // Purge-Jobs: Delete all jobs
	OpSetPrinterAttributes       Op = 0x0013 // Set-Printer-Attributes: Set printer values
	OpSetJobAttributes           Op = 0x0014 // Set-Job-Attributes: Set job values
	OpGetPrinterSupportedValues  Op = 0x0015 // Get-Printer-Supported-Values: Get supported values
	OpCreatePrinterSubscriptions Op = 0x0016 // Create-Printer-Subscriptions: Create printer subscriptions
	OpCreateJobSubscriptions     Op = 0x0017 // Create-Job-Subscriptions: Create job subscriptions
	OpGetSubscriptionAttributes  Op = 0x0018 // Get-Subscription-Attributes: Get subscription information
	OpGetSubscriptions           Op = 0x0019 // Get-Subscriptions: Get list of subscriptions
	OpRenewSubscription          Op = 0x001a // Renew-Subscription: Renew a printer subscription
	OpCancelSubscription         Op = 0x001b // Cancel-Subscription: Cancel a subscription
	OpGetNotifications           Op = 0x001c // Get-Notifications: Get notification events

	OpEnablePrinter               Op = 0x0022 // Enable-Printer: Accept new jobs for a printer
	OpDisablePrinter              Op = 0x0023 // Disable-Printer: Reject new jobs for a printer
	OpPausePrinterAfterCurrentJob Op = 0x0024 // Pause-Printer-After-Current-Job: Stop printer after the current job
	OpHoldNewJobs                 Op = 0x0025 // Hold-New-Jobs: Hold new jobs
	OpReleaseHeldNewJobs          Op = 0x0026 // Release-Held-New-Jobs: Release new jobs that were previously held
	OpDeactivatePrinter           Op = 0x0027 // Deactivate-Printer: Stop a printer and do not accept jobs
	OpActivatePrinter             Op = 0x0028 // Activate-Printer: Start a printer and accept jobs
	OpRestartPrinter              Op = 0x0029 // Restart-Printer: Restart a printer
	OpShutdownPrinter             Op = 0x002a // Shutdown-Printer: Turn a printer off
	OpStartupPrinter              Op = 0x002b // Startup-Printer: Turn a printer on

	OpCupsGetDefault       Op = 0x4001 // CUPS-Get-Default: Get the default printer
	OpCupsGetPrinters      Op = 0x4002 // CUPS-Get-Printers: Get a list of printers and/or classes
	OpCupsAddModifyPrinter Op = 0x4003 // CUPS-Add-Modify-Printer: Add or modify a printer
	OpCupsDeletePrinter    Op = 0x4004 // CUPS-Delete-Printer: Delete a printer
	OpCupsGetClasses       Op = 0x4005 // CUPS-Get-Classes: Get a list of classes
	OpCupsAddModifyClass   Op = 0x4006 // CUPS-Add-Modify-Class: Add or modify a class
	OpCupsDeleteClass      Op = 0x4007 // CUPS-Delete-Class: Delete a class
	OpCupsAcceptJobs       Op = 0x4008 // CUPS-Accept-Jobs: Accept new jobs on a printer
	OpCupsRejectJobs       Op = 0x4009 // CUPS-Reject-Jobs: Reject new jobs on a printer
	OpCupsSetDefault       Op = 0x400a // CUPS-Set-Default: Set the default printer
	OpCupsGetDevices       Op = 0x400b // CUPS-Get-Devices: Get a list of supported devices
	OpCupsGetPpds          Op = 0x400c // CUPS-Get-PPDs: Get a list of supported drivers
	OpCupsMoveJob          Op = 0x400d // CUPS-Move-Job: Move a job to a different printer
	OpCupsAuthenticateJob  Op = 0x400e // CUPS-Authenticate-Job: Authenticate a job
	OpCupsGetPpd           Op = 0x400f // CUPS-Get-PPD: Get a PPD file

	OpCupsGetDocument        Op = 0x4027 // CUPS-Get-Document: Get a document file
	OpCupsCreateLocalPrinter Op = 0x4028 // CUPS-Create-Local-Printer: Create a local (temporary) printer
)

// String returns an Op name
func (op Op) String() string {
	if s := opNames[op]; s != "" {
		return s
	}

	return fmt.Sprintf("0x%4.4x", int(op))
}

// Known reports whether op has a name
func (op Op) Known() bool {
	_, ok := opNames[op]
	return ok
}

// IsVendor reports whether op belongs to the vendor
// extension range 0x4000...0x8fff
func (op Op) IsVendor() bool {
	return 0x4000 <= op && op <= 0x8fff
}

var opNames = map[Op]string{
	OpPrintJob:                    "Print-Job",
	OpPrintURI:                    "Print-URI",
	OpValidateJob:                 "Validate-Job",
	OpCreateJob:                   "Create-Job",
	OpSendDocument:                "Send-Document",
	OpSendURI:                     "Send-URI",
	OpCancelJob:                   "Cancel-Job",
	OpGetJobAttributes:            "Get-Job-Attributes",
	OpGetJobs:                     "Get-Jobs",
	OpGetPrinterAttributes:        "Get-Printer-Attributes",
	OpHoldJob:                     "Hold-Job",
	OpReleaseJob:                  "Release-Job",
	OpRestartJob:                  "Restart-Job",
	OpPausePrinter:                "Pause-Printer",
	OpResumePrinter:               "Resume-Printer",
	OpPurgeJobs:                   "Purge-Jobs",
	OpSetPrinterAttributes:        "Set-Printer-Attributes",
	OpSetJobAttributes:            "Set-Job-Attributes",
	OpGetPrinterSupportedValues:   "Get-Printer-Supported-Values",
	OpCreatePrinterSubscriptions:  "Create-Printer-Subscriptions",
	OpCreateJobSubscriptions:      "Create-Job-Subscriptions",
	OpGetSubscriptionAttributes:   "Get-Subscription-Attributes",
	OpGetSubscriptions:            "Get-Subscriptions",
	OpRenewSubscription:           "Renew-Subscription",
	OpCancelSubscription:          "Cancel-Subscription",
	OpGetNotifications:            "Get-Notifications",
	OpEnablePrinter:               "Enable-Printer",
	OpDisablePrinter:              "Disable-Printer",
	OpPausePrinterAfterCurrentJob: "Pause-Printer-After-Current-Job",
	OpHoldNewJobs:                 "Hold-New-Jobs",
	OpReleaseHeldNewJobs:          "Release-Held-New-Jobs",
	OpDeactivatePrinter:           "Deactivate-Printer",
	OpActivatePrinter:             "Activate-Printer",
	OpRestartPrinter:              "Restart-Printer",
	OpShutdownPrinter:             "Shutdown-Printer",
	OpStartupPrinter:              "Startup-Printer",
	OpCupsGetDefault:              "CUPS-Get-Default",
	OpCupsGetPrinters:             "CUPS-Get-Printers",
	OpCupsAddModifyPrinter:        "CUPS-Add-Modify-Printer",
	OpCupsDeletePrinter:           "CUPS-Delete-Printer",
	OpCupsGetClasses:              "CUPS-Get-Classes",
	OpCupsAddModifyClass:          "CUPS-Add-Modify-Class",
	OpCupsDeleteClass:             "CUPS-Delete-Class",
	OpCupsAcceptJobs:              "CUPS-Accept-Jobs",
	OpCupsRejectJobs:              "CUPS-Reject-Jobs",
	OpCupsSetDefault:              "CUPS-Set-Default",
	OpCupsGetDevices:              "CUPS-Get-Devices",
	OpCupsGetPpds:                 "CUPS-Get-PPDs",
	OpCupsMoveJob:                 "CUPS-Move-Job",
	OpCupsAuthenticateJob:         "CUPS-Authenticate-Job",
	OpCupsGetPpd:                  "CUPS-Get-PPD",
	OpCupsGetDocument:             "CUPS-Get-Document",
	OpCupsCreateLocalPrinter:      "CUPS-Create-Local-Printer",
}
