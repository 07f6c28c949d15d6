/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Logging
 */

package logger

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Defaults for log rotation
const (
	DefaultMaxFileSize    = 256 * 1024
	DefaultMaxBackupFiles = 5
)

var (
	logMessagePool = sync.Pool{New: func() interface{} { return &LogMessage{} }}
	logBufferPool  = sync.Pool{New: func() interface{} { return &bytes.Buffer{} }}
)

// Logger implements logging facilities
type Logger struct {
	lock           sync.Mutex   // Write lock
	levels         Level        // Enabled levels
	path           string       // Path to log file
	maxFileSize    int64        // Rotate when file grows above
	maxBackupFiles int          // Count of kept backups
	time           bytes.Buffer // Time prefix buffer
	out            io.Writer    // Output stream
	file           *os.File     // Output file, nil if not opened
	console        bool         // true for console logger
}

// NewFileLogger creates a new logger that writes into the file.
// The file is opened on demand and rotated when it grows
// too large
func NewFileLogger(path string, levels Level) *Logger {
	return &Logger{
		levels:         levels,
		path:           path,
		maxFileSize:    DefaultMaxFileSize,
		maxBackupFiles: DefaultMaxBackupFiles,
	}
}

// NewConsoleLogger creates a new console logger
func NewConsoleLogger(levels Level) *Logger {
	return NewWriterLogger(os.Stdout, levels)
}

// NewWriterLogger creates a new logger that writes into
// io.Writer. Lines are written without time prefix
func NewWriterLogger(out io.Writer, levels Level) *Logger {
	return &Logger{
		levels:  levels,
		out:     out,
		console: true,
	}
}

// NewDiscardLogger creates a new logger that writes nothing
func NewDiscardLogger() *Logger {
	return NewWriterLogger(io.Discard, 0)
}

// SetRotation configures log rotation. Zero maxFileSize
// disables rotation
func (l *Logger) SetRotation(maxFileSize int64, maxBackupFiles int) {
	l.lock.Lock()
	l.maxFileSize = maxFileSize
	l.maxBackupFiles = maxBackupFiles
	l.lock.Unlock()
}

// Levels returns enabled levels
func (l *Logger) Levels() Level {
	return l.levels
}

// Enabled reports whether any of levels is enabled
func (l *Logger) Enabled(level Level) bool {
	return l.levels&level != 0
}

// Close the logger
func (l *Logger) Close() {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.file != nil {
		l.file.Close()
		l.file = nil
		l.out = nil
	}
}

// Begin new log message
func (l *Logger) Begin() *LogMessage {
	msg := logMessagePool.Get().(*LogMessage)
	msg.logger = l
	return msg
}

// Debug writes a LevelDebug message
func (l *Logger) Debug(prefix byte, format string, args ...interface{}) {
	l.Begin().Debug(prefix, format, args...).Commit()
}

// Info writes a LevelInfo message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Begin().Info(format, args...).Commit()
}

// Error writes a LevelError message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Begin().Error(format, args...).Commit()
}

// Dump writes HEX dump with optional title. If title is not "",
// it is formatted, as fmt.Printf does, and prepended to the dump
func (l *Logger) Dump(level Level, data []byte, title string, args ...interface{}) {
	l.Begin().Dump(level, data, title, args...).Commit()
}

// Format a time prefix
func (l *Logger) fmtTime() {
	l.time.Reset()

	if !l.console {
		now := time.Now()

		year, month, day := now.Date()
		fmt.Fprintf(&l.time, "%2.2d-%2.2d-%4.4d ", day, month, year)

		hour, min, sec := now.Clock()
		fmt.Fprintf(&l.time, "%2.2d:%2.2d:%2.2d", hour, min, sec)

		l.time.WriteString(": ")
	}
}

// Open log file on demand
func (l *Logger) open() {
	if l.out != nil || l.console {
		return
	}

	os.MkdirAll(filepath.Dir(l.path), 0755)
	file, err := os.OpenFile(l.path,
		os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err == nil {
		l.file = file
		l.out = file
	}
}

// Handle log rotation
func (l *Logger) rotate() {
	if l.file == nil || l.maxFileSize <= 0 {
		return
	}

	// Do we need to rotate?
	stat, err := l.file.Stat()
	if err != nil || stat.Size() <= l.maxFileSize {
		return
	}

	// Perform rotation
	prevpath := ""
	for i := l.maxBackupFiles; i >= 0; i-- {
		nextpath := l.path
		if i > 0 {
			nextpath += fmt.Sprintf(".%d.gz", i-1)
		}

		switch i {
		case l.maxBackupFiles:
			os.Remove(nextpath)
		case 0:
			err := l.gzip(nextpath, prevpath)
			if err == nil {
				l.file.Truncate(0)
			}
		default:
			os.Rename(nextpath, prevpath)
		}

		prevpath = nextpath
	}
}

// gzip the log file
func (l *Logger) gzip(ipath, opath string) error {
	// Open input file
	ifile, err := os.Open(ipath)
	if err != nil {
		return err
	}

	defer ifile.Close()

	// Open output file
	ofile, err := os.OpenFile(opath, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return err
	}

	// gzip ifile->ofile
	w := gzip.NewWriter(ofile)
	_, err = io.Copy(w, ifile)
	err2 := w.Close()
	err3 := ofile.Close()

	switch {
	case err == nil && err2 != nil:
		err = err2
	case err == nil && err3 != nil:
		err = err3
	}

	// Cleanup and exit
	if err != nil {
		os.Remove(opath)
	}

	return err
}

// LogMessage represents a single (possible multi line) log
// message, which will appear in the output log atomically,
// and will not be interrupted in the middle by other log activity
type LogMessage struct {
	logger *Logger         // Underlying logger
	lines  []*bytes.Buffer // One buffer per line
}

// Add formats a next line of log message, with level and prefix char.
// Lines of disabled levels are dropped
func (msg *LogMessage) Add(level Level, prefix byte,
	format string, args ...interface{}) *LogMessage {

	if !msg.logger.Enabled(level) {
		return msg
	}

	buf := logBufAlloc()
	buf.Write([]byte{prefix, ' '})
	fmt.Fprintf(buf, format, args...)
	buf.WriteByte('\n')
	msg.lines = append(msg.lines, buf)
	return msg
}

// Debug writes a LevelDebug message
func (msg *LogMessage) Debug(prefix byte, format string, args ...interface{}) *LogMessage {
	return msg.Add(LevelDebug, prefix, format, args...)
}

// Info writes a LevelInfo message
func (msg *LogMessage) Info(format string, args ...interface{}) *LogMessage {
	return msg.Add(LevelInfo, ' ', format, args...)
}

// Error writes a LevelError message
func (msg *LogMessage) Error(format string, args ...interface{}) *LogMessage {
	return msg.Add(LevelError, '!', format, args...)
}

// LineWriter returns LineWriter that adds each line, written
// into it, to the message. Don't forget to Close it, to flush
// the last incomplete line
func (msg *LogMessage) LineWriter(level Level, prefix byte) *LineWriter {
	return &LineWriter{
		Func: func(line []byte) {
			msg.Add(level, prefix, "%s", line)
		},
	}
}

// HTTPHeader writes HTTP header with the title line
func (msg *LogMessage) HTTPHeader(level Level, prefix byte,
	title string, hdr http.Header) *LogMessage {

	if !msg.logger.Enabled(level) {
		return msg
	}

	keys := []string{}
	for k := range hdr {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msg.Add(level, prefix, "%s", title)
	for _, k := range keys {
		msg.Add(level, prefix, "%s: %s", k, hdr.Get(k))
	}

	return msg.Add(level, prefix, "")
}

// Dump writes HEX dump with optional title. If title is not "",
// it is formatted, as fmt.Printf does, and prepended to the dump
func (msg *LogMessage) Dump(level Level, data []byte,
	title string, args ...interface{}) *LogMessage {

	if !msg.logger.Enabled(level) {
		return msg
	}

	if title != "" {
		msg.Add(level, ' ', title, args...)
	}

	hex := logBufAlloc()
	chr := logBufAlloc()

	defer logBufFree(hex)
	defer logBufFree(chr)

	off := 0

	for len(data) > 0 {
		hex.Reset()
		chr.Reset()

		sz := len(data)
		if sz > 16 {
			sz = 16
		}

		i := 0
		for ; i < sz; i++ {
			c := data[i]
			fmt.Fprintf(hex, "%2.2x", data[i])
			if i%4 == 3 {
				hex.Write([]byte(":"))
			} else {
				hex.Write([]byte(" "))
			}

			if 0x20 <= c && c < 0x80 {
				chr.WriteByte(c)
			} else {
				chr.WriteByte('.')
			}
		}

		for ; i < 16; i++ {
			hex.WriteString("   ")
		}

		msg.Add(level, ' ', "%4.4x: %s %s", off, hex, chr)

		off += sz
		data = data[sz:]
	}

	return msg
}

// Commit message to the log
func (msg *LogMessage) Commit() {
	// Don't forget to free the message
	defer msg.free()

	// Ignore empty messages
	if len(msg.lines) == 0 {
		return
	}

	l := msg.logger

	// Lock the logger
	l.lock.Lock()
	defer l.lock.Unlock()

	l.open()
	if l.out == nil {
		return
	}

	// Rotate now
	l.rotate()

	// Send message content to the logger
	l.fmtTime()
	for _, line := range msg.lines {
		l.out.Write(l.time.Bytes())
		l.out.Write(line.Bytes())
	}
}

// Reject the message
func (msg *LogMessage) Reject() {
	msg.free()
}

// Return message to the logMessagePool
func (msg *LogMessage) free() {
	for _, l := range msg.lines {
		logBufFree(l)
	}

	// Reset the message and put it to the pool
	if len(msg.lines) < 16 {
		msg.lines = msg.lines[:0] // Keep memory, reset content
	} else {
		msg.lines = nil
	}

	msg.logger = nil

	// Put the message
	logMessagePool.Put(msg)
}

// Allocate a buffer
func logBufAlloc() *bytes.Buffer {
	return logBufferPool.Get().(*bytes.Buffer)
}

// Free a buffer
func logBufFree(buf *bytes.Buffer) {
	if buf.Cap() <= 256 {
		buf.Reset()
		logBufferPool.Put(buf)
	}
}
