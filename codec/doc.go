/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Package documentation
 */

/*
Package codec implements the IPP message codec, as used by IPP
clients.

Requests are built out of named properties. Wire types of
properties are not specified by the caller, they are looked up
by attribute name in the Schema:

	ctx := codec.NewRequestContext("user")
	rq := codec.NewRequest(ctx, codec.OpGetJobs)
	rq.AddOperation("printer-uri", codec.String(uri))
	rq.AddOperation("my-jobs", codec.Boolean(true))

	data, err := codec.NewEncoder(nil).EncodeRequest(rq)

Responses are decoded into groups of attributes. Raw values are
preserved, and interpreted values are provided for convenience:
integers, ranges, resolutions, dates and symbolic names of enums:

	rsp, err := codec.NewDecoder(nil).Decode(data)
	for _, job := range rsp.Jobs() {
		fmt.Println(job.Single("job-id"), job.Single("job-state"))
	}

Decoder is tolerant to malformed input: everything decoded before
the failure is returned together with the error.
*/
package codec
