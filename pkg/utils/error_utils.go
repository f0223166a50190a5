/*
 * IPTVProxy serves an M3U playlist through an Xtream-codes compatible API and stream proxy.
 * Copyright (C) 2025  Lucas Duport
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
)

// ErrorDetailLevel controls how much location data is attached to errors.
type ErrorDetailLevel int

const (
	// ErrorDetailNone wraps with a location but never prints
	ErrorDetailNone ErrorDetailLevel = iota
	// ErrorDetailSimple adds file, line and function (default)
	ErrorDetailSimple
	// ErrorDetailFull adds a stack trace
	ErrorDetailFull
)

// detailOverride holds level+1 once SetErrorDetailLevel was called, 0 otherwise.
var detailOverride atomic.Int32

// ParseErrorDetailLevel maps none/simple/full to a level, defaulting to simple.
func ParseErrorDetailLevel(s string) ErrorDetailLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return ErrorDetailNone
	case "full":
		return ErrorDetailFull
	default:
		return ErrorDetailSimple
	}
}

// SetErrorDetailLevel pins the detail level, taking precedence over ERROR_DETAIL_LEVEL.
func SetErrorDetailLevel(level ErrorDetailLevel) {
	detailOverride.Store(int32(level) + 1)
}

// ResetErrorDetailLevel drops a pinned level so the environment applies again.
func ResetErrorDetailLevel() {
	detailOverride.Store(0)
}

func getErrorDetailLevel() ErrorDetailLevel {
	if v := detailOverride.Load(); v > 0 {
		return ErrorDetailLevel(v - 1)
	}
	return ParseErrorDetailLevel(os.Getenv("ERROR_DETAIL_LEVEL"))
}

// locationError keeps the original error reachable through errors.Is/As.
type locationError struct {
	msg string
	err error
}

func (e *locationError) Error() string { return e.msg }
func (e *locationError) Unwrap() error { return e.err }

func formatError(err error, skip int) error {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return &locationError{msg: fmt.Sprintf("error occurred: %v", err), err: err}
	}
	fnName := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		fnName = fn.Name()
	}

	if getErrorDetailLevel() == ErrorDetailFull {
		buffer := make([]byte, 4096)
		n := runtime.Stack(buffer, false)
		stackLines := strings.Split(string(buffer[:n]), "\n")
		if len(stackLines) > 0 {
			stackLines = stackLines[1:]
		}

		return &locationError{err: err, msg: fmt.Sprintf(`
Error Location:
  Full Path: %s
  File: %s
  Line: %d
  Function: %s
Error Details:
  %v
Stack Trace:
%s`, file, filepath.Base(file), line, fnName, err, strings.Join(stackLines, "\n"))}
	}

	return &locationError{err: err, msg: fmt.Sprintf("%s:%d [%s]: %v",
		filepath.Base(file), line, filepath.Base(fnName), err)}
}

// ErrorWithLocation wraps err with the caller's location.
func ErrorWithLocation(err error) error {
	if err == nil {
		return nil
	}
	return formatError(err, 2)
}

// PrintErrorAndReturn wraps err with the caller's location and prints it to
// stderr unless the detail level is none.
func PrintErrorAndReturn(err error) error {
	if err == nil {
		return nil
	}

	wrappedErr := formatError(err, 2)
	if getErrorDetailLevel() != ErrorDetailNone {
		fmt.Fprintln(os.Stderr, wrappedErr)
	}
	return wrappedErr
}
