/*
 * log.go, part of gocell.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package capi

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/pelletier/go-toml"
	cell "github.com/rmera/gocell"
)

//LogLevel is the verbosity of the library log. Messages with a level
//above the current one are not emitted.
type LogLevel int

const (
	LogNone LogLevel = iota
	LogError
	LogWarning
	LogInfo
	LogDebug
)

func (l LogLevel) String() string {
	switch l {
	case LogNone:
		return "none"
	case LogError:
		return "error"
	case LogWarning:
		return "warning"
	case LogInfo:
		return "info"
	case LogDebug:
		return "debug"
	}
	return fmt.Sprintf("level %d", int(l))
}

func parseLevel(s string) (LogLevel, error) {
	for l := LogNone; l <= LogDebug; l++ {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return LogNone, cell.NewError(cell.FormatFailure, "parseLevel", "unknown log level %q", s)
}

var logger = struct {
	sync.Mutex
	level    LogLevel
	out      *log.Logger
	file     *os.File
	callback func(LogLevel, string)
}{level: LogWarning, out: log.New(os.Stderr, "gocell ", log.LstdFlags)}

func logf(level LogLevel, format string, args ...interface{}) {
	logger.Lock()
	defer logger.Unlock()
	if level == LogNone || level > logger.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if logger.callback != nil {
		logger.callback(level, msg)
		return
	}
	if logger.out != nil {
		logger.out.Printf("[%s] %s", level, msg)
	}
}

//sets the destination of the log, closing the previous log file, if any. Needs the lock.
func setOutput(w io.Writer, f *os.File) {
	if logger.file != nil {
		logger.file.Close()
	}
	logger.file = f
	logger.callback = nil
	if w == nil {
		logger.out = nil
		return
	}
	logger.out = log.New(w, "gocell ", log.LstdFlags)
}

//GetLogLevel returns the current log level.
func GetLogLevel() (LogLevel, Status) {
	logger.Lock()
	defer logger.Unlock()
	return logger.level, Success
}

//SetLogLevel sets the log level.
func SetLogLevel(level LogLevel) Status {
	if level < LogNone || level > LogDebug {
		return fail("SetLogLevel", cell.NewError(cell.InvalidArgument, "SetLogLevel", "invalid log level %d", int(level)))
	}
	logger.Lock()
	logger.level = level
	logger.Unlock()
	return Success
}

//LogFile sends the log to the file path. The file is appended to if it exists.
func LogFile(path string) Status {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fail("LogFile", cell.NewError(cell.FileFailure, "LogFile", "%s", err.Error()))
	}
	logger.Lock()
	setOutput(f, f)
	logger.Unlock()
	return Success
}

//LogStdout sends the log to the standard output.
func LogStdout() Status {
	logger.Lock()
	setOutput(os.Stdout, nil)
	logger.Unlock()
	return Success
}

//LogStderr sends the log to the standard error. This is the default.
func LogStderr() Status {
	logger.Lock()
	setOutput(os.Stderr, nil)
	logger.Unlock()
	return Success
}

//LogSilent discards every log message.
func LogSilent() Status {
	logger.Lock()
	setOutput(nil, nil)
	logger.Unlock()
	return Success
}

//LogCallback sends every log message, with its level, to f, instead of to a file.
//f must not call functions of this package.
func LogCallback(f func(level LogLevel, message string)) Status {
	if f == nil {
		return fail("LogCallback", cell.NewError(cell.InvalidArgument, "LogCallback", "nil callback"))
	}
	logger.Lock()
	setOutput(nil, nil)
	logger.callback = f
	logger.Unlock()
	return Success
}

//LogConfig is the [log] table of a configuration file.
type LogConfig struct {
	Level       string `toml:"level"`
	Destination string `toml:"destination"` //stdout, stderr, silent or file
	File        string `toml:"file"`
}

type config struct {
	Log LogConfig `toml:"log"`
}

//ConfigureLogging sets the log level and destination from the [log] table of
//the TOML file in path. Keys not present keep their current values.
func ConfigureLogging(path string) Status {
	f, err := os.Open(path)
	if err != nil {
		return fail("ConfigureLogging", cell.NewError(cell.FileFailure, "ConfigureLogging", "%s", err.Error()))
	}
	defer f.Close()
	var c config
	if err := toml.NewDecoder(f).Decode(&c); err != nil {
		return fail("ConfigureLogging", cell.NewError(cell.FormatFailure, "ConfigureLogging", "%s", err.Error()))
	}
	return applyLogConfig(c.Log)
}

func applyLogConfig(c LogConfig) Status {
	level, _ := GetLogLevel()
	if c.Level != "" {
		var err error
		if level, err = parseLevel(c.Level); err != nil {
			return fail("ConfigureLogging", err)
		}
	}
	var apply func() Status
	switch strings.ToLower(c.Destination) {
	case "":
		apply = func() Status { return Success }
	case "stdout":
		apply = LogStdout
	case "stderr":
		apply = LogStderr
	case "silent":
		apply = LogSilent
	case "file":
		if c.File == "" {
			return fail("ConfigureLogging", cell.NewError(cell.FormatFailure, "ConfigureLogging", "log destination is 'file', but no file was given"))
		}
		apply = func() Status { return LogFile(c.File) }
	default:
		return fail("ConfigureLogging", cell.NewError(cell.FormatFailure, "ConfigureLogging", "unknown log destination %q", c.Destination))
	}
	if st := apply(); st != Success {
		return st
	}
	SetLogLevel(level)
	return Success
}
