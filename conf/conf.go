/* ipp-cups - IPP client codec and CUPS operations
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Client configuration
 */

package conf

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/OpenPrinting/ipp-cups/logger"
	"gopkg.in/ini.v1"
)

const (
	// FileName defines a name of ipp-cups configuration file
	FileName = "ipp-cups.conf"

	// PathConfDir defines path to configuration directory
	PathConfDir = "/etc/ipp-cups"

	// PathLogFile defines default path to the log file
	PathLogFile = "/var/log/ipp-cups/client.log"

	// DefaultAddress is the CUPS local socket
	DefaultAddress = "unix:///var/run/cups/cups.sock"
)

// Configuration represents a client configuration
type Configuration struct {
	Address           string       // Server address
	User              string       // requesting-user-name, "" to omit
	Charset           string       // attributes-charset
	Language          string       // attributes-natural-language
	LogLevel          logger.Level // Log levels mask
	LogFile           string       // Log file, "" for console
	LogMaxFileSize    int64        // Maximum log file size
	LogMaxBackupFiles uint         // Count of files preserved during rotation
}

// Default returns configuration with default values
func Default() *Configuration {
	return &Configuration{
		Address:           DefaultAddress,
		Charset:           "utf-8",
		Language:          "en-us",
		LogLevel:          logger.LevelError | logger.LevelInfo,
		LogMaxFileSize:    logger.DefaultMaxFileSize,
		LogMaxBackupFiles: logger.DefaultMaxBackupFiles,
	}
}

// Load loads the configuration. Files are loaded in order,
// values from latter files override former. Missed files
// are silently ignored. If no files specified, the system-wide
// configuration file is used
func Load(files ...string) (*Configuration, error) {
	if len(files) == 0 {
		files = []string{filepath.Join(PathConfDir, FileName)}
	}

	conf := Default()
	for _, file := range files {
		err := conf.load(file)
		if err != nil {
			return nil, fmt.Errorf("conf: %s", err)
		}
	}

	return conf, nil
}

// Logger creates a logger, as configured
func (conf *Configuration) Logger() *logger.Logger {
	if conf.LogFile == "" {
		return logger.NewConsoleLogger(conf.LogLevel)
	}

	log := logger.NewFileLogger(conf.LogFile, conf.LogLevel)
	log.SetRotation(conf.LogMaxFileSize, int(conf.LogMaxBackupFiles))
	return log
}

// Save writes configuration into the file
func (conf *Configuration) Save(path string) error {
	inifile := ini.Empty()

	section, _ := inifile.NewSection("server")
	section.NewKey("address", conf.Address)
	if conf.User != "" {
		section.NewKey("user", conf.User)
	}

	section, _ = inifile.NewSection("request")
	section.NewKey("charset", conf.Charset)
	section.NewKey("language", conf.Language)

	section, _ = inifile.NewSection("logging")
	section.NewKey("level", conf.LogLevel.String())
	if conf.LogFile != "" {
		section.NewKey("file", conf.LogFile)
	}
	section.NewKey("max-file-size", strconv.FormatInt(conf.LogMaxFileSize, 10))
	section.NewKey("max-backup-files", strconv.FormatUint(uint64(conf.LogMaxBackupFiles), 10))

	os.MkdirAll(filepath.Dir(path), 0755)
	return inifile.SaveTo(path)
}

// Create "bad value" error
func confBadValue(key *ini.Key, format string, args ...interface{}) error {
	return fmt.Errorf(key.Name()+": "+format, args...)
}

// Load single configuration file
func (conf *Configuration) load(path string) error {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = nil
		}
		return err
	}

	inifile, err := ini.Load(path)
	if err != nil {
		return err
	}

	for _, section := range inifile.Sections() {
		for _, key := range section.Keys() {
			switch section.Name() {
			case "server":
				switch key.Name() {
				case "address":
					err = confLoadAddressKey(&conf.Address, key)
				case "user":
					conf.User = key.String()
				}
			case "request":
				switch key.Name() {
				case "charset":
					err = confLoadNonEmptyKey(&conf.Charset, key)
					conf.Charset = strings.ToLower(conf.Charset)
				case "language":
					err = confLoadNonEmptyKey(&conf.Language, key)
				}
			case "logging":
				switch key.Name() {
				case "level":
					err = confLoadLogLevelKey(&conf.LogLevel, key)
				case "file":
					conf.LogFile = key.String()
				case "max-file-size":
					err = confLoadSizeKey(&conf.LogMaxFileSize, key)
				case "max-backup-files":
					err = confLoadUintKey(&conf.LogMaxBackupFiles, key)
				}
			}

			if err != nil {
				return err
			}
		}
	}

	return nil
}

// Load server address key
func confLoadAddressKey(out *string, key *ini.Key) error {
	u, err := url.Parse(key.String())
	if err != nil {
		return confBadValue(key, "%s", errors.Unwrap(err))
	}

	switch u.Scheme {
	case "unix":
		if u.Path == "" {
			return confBadValue(key, "missed socket path")
		}
	case "http", "ipp":
		if u.Host == "" {
			return confBadValue(key, "missed host")
		}
	default:
		return confBadValue(key, "scheme must be unix, http or ipp")
	}

	*out = key.String()
	return nil
}

// Load non-empty string key
func confLoadNonEmptyKey(out *string, key *ini.Key) error {
	s := strings.TrimSpace(key.String())
	if s == "" {
		return confBadValue(key, "must not be empty")
	}

	*out = s
	return nil
}

// Load log level key
func confLoadLogLevelKey(out *logger.Level, key *ini.Key) error {
	mask, err := logger.ParseLevel(key.String())
	if err != nil {
		return confBadValue(key, "%s", err)
	}

	*out = mask
	return nil
}

// Load size key
func confLoadSizeKey(out *int64, key *ini.Key) error {
	value := key.String()
	units := uint64(1)

	if l := len(value); l > 0 {
		switch value[l-1] {
		case 'k', 'K':
			units = 1024
		case 'm', 'M':
			units = 1024 * 1024
		}

		if units != 1 {
			value = value[:l-1]
		}
	}

	sz, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return confBadValue(key, "%q: invalid size", value)
	}

	if sz > uint64(math.MaxInt64/units) {
		return confBadValue(key, "size too large")
	}

	*out = int64(sz * units)
	return nil
}

// Load unsigned integer key
func confLoadUintKey(out *uint, key *ini.Key) error {
	num, err := key.Uint()
	if err != nil {
		return confBadValue(key, "%q: invalid number", key.String())
	}

	*out = num
	return nil
}
