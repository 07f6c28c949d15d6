/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Log levels
 */

package logger

import (
	"fmt"
	"strings"
)

// Level enumerates possible log levels. Levels are bits,
// so any combination of them may be enabled at once
type Level int

// Log levels
const (
	LevelError     Level = 1 << iota // Errors
	LevelInfo                        // Informative messages
	LevelDebug                       // Debug messages
	LevelTraceIPP                    // Decoded IPP messages
	LevelTraceHTTP                   // HTTP headers

	LevelTraceAll = LevelTraceIPP | LevelTraceHTTP
	LevelAll      = LevelError | LevelInfo | LevelDebug | LevelTraceAll
)

// levelNames maps level names, as used in configuration,
// to levels. Each level implies all levels above it
var levelNames = []struct {
	name  string
	level Level
}{
	{"error", LevelError},
	{"info", LevelError | LevelInfo},
	{"debug", LevelError | LevelInfo | LevelDebug},
	{"trace-ipp", LevelError | LevelInfo | LevelDebug | LevelTraceIPP},
	{"trace-http", LevelError | LevelInfo | LevelDebug | LevelTraceHTTP},
	{"all", LevelAll},
	{"trace-all", LevelAll},
}

// ParseLevel parses comma-separated list of level names
// (i.e., "debug,trace-http"). Empty string means no logging
func ParseLevel(s string) (Level, error) {
	var mask Level

	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		found := false
		for _, ln := range levelNames {
			if ln.name == name {
				mask |= ln.level
				found = true
				break
			}
		}

		if !found {
			return 0, fmt.Errorf("invalid log level %q", name)
		}
	}

	return mask, nil
}

// String returns names of levels, set in the mask
func (level Level) String() string {
	names := []string{}

	for _, bit := range []struct {
		level Level
		name  string
	}{
		{LevelError, "error"},
		{LevelInfo, "info"},
		{LevelDebug, "debug"},
		{LevelTraceIPP, "trace-ipp"},
		{LevelTraceHTTP, "trace-http"},
	} {
		if level&bit.level != 0 {
			names = append(names, bit.name)
		}
	}

	return strings.Join(names, ",")
}
