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
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func TestGetErrorDetailLevel(t *testing.T) {
	tests := []struct {
		name          string
		envValue      string
		expectedLevel ErrorDetailLevel
	}{
		{name: "none detail level", envValue: "none", expectedLevel: ErrorDetailNone},
		{name: "full detail level", envValue: "full", expectedLevel: ErrorDetailFull},
		{name: "simple detail level", envValue: "simple", expectedLevel: ErrorDetailSimple},
		{name: "mixed case", envValue: " FULL ", expectedLevel: ErrorDetailFull},
		{name: "empty env defaults to simple", envValue: "", expectedLevel: ErrorDetailSimple},
		{name: "invalid value defaults to simple", envValue: "invalid", expectedLevel: ErrorDetailSimple},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("ERROR_DETAIL_LEVEL", tt.envValue)
			defer os.Unsetenv("ERROR_DETAIL_LEVEL")

			if got := getErrorDetailLevel(); got != tt.expectedLevel {
				t.Errorf("getErrorDetailLevel() = %v, want %v", got, tt.expectedLevel)
			}
		})
	}
}

func TestSetErrorDetailLevelOverridesEnv(t *testing.T) {
	os.Setenv("ERROR_DETAIL_LEVEL", "full")
	defer os.Unsetenv("ERROR_DETAIL_LEVEL")
	defer ResetErrorDetailLevel()

	SetErrorDetailLevel(ErrorDetailNone)
	if got := getErrorDetailLevel(); got != ErrorDetailNone {
		t.Fatalf("getErrorDetailLevel() = %v, want %v", got, ErrorDetailNone)
	}

	ResetErrorDetailLevel()
	if got := getErrorDetailLevel(); got != ErrorDetailFull {
		t.Fatalf("getErrorDetailLevel() after reset = %v, want %v", got, ErrorDetailFull)
	}
}

func TestErrorWithLocation(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		detailLevel     string
		expectedParts   []string
		unexpectedParts []string
	}{
		{
			name:        "nil error returns nil",
			err:         nil,
			detailLevel: "simple",
		},
		{
			name:            "simple detail level",
			err:             errors.New("test error"),
			detailLevel:     "simple",
			expectedParts:   []string{"error_utils_test.go", "test error"},
			unexpectedParts: []string{"Stack Trace:", "Error Location:"},
		},
		{
			name:        "full detail level",
			err:         errors.New("test error"),
			detailLevel: "full",
			expectedParts: []string{
				"Error Location:",
				"Full Path:",
				"File: error_utils_test.go",
				"Line:",
				"Function:",
				"Error Details:",
				"test error",
				"Stack Trace:",
			},
		},
		{
			name:            "none detail level",
			err:             errors.New("test error"),
			detailLevel:     "none",
			expectedParts:   []string{"error_utils_test.go", "test error"},
			unexpectedParts: []string{"Stack Trace:", "Error Location:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("ERROR_DETAIL_LEVEL", tt.detailLevel)
			defer os.Unsetenv("ERROR_DETAIL_LEVEL")

			got := ErrorWithLocation(tt.err)

			if tt.err == nil {
				if got != nil {
					t.Errorf("ErrorWithLocation() = %v, want nil", got)
				}
				return
			}

			gotStr := got.Error()
			for _, expected := range tt.expectedParts {
				if !strings.Contains(gotStr, expected) {
					t.Errorf("ErrorWithLocation() output missing expected part %q in:\n%s", expected, gotStr)
				}
			}
			for _, unexpected := range tt.unexpectedParts {
				if strings.Contains(gotStr, unexpected) {
					t.Errorf("ErrorWithLocation() output contains unexpected part %q in:\n%s", unexpected, gotStr)
				}
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("ErrorWithLocation() does not unwrap to the original error")
			}
		})
	}
}

func TestPrintErrorAndReturn(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		detailLevel string
		shouldPrint bool
	}{
		{name: "nil error returns nil", err: nil, detailLevel: "simple", shouldPrint: false},
		{name: "prints with simple detail level", err: errors.New("test error"), detailLevel: "simple", shouldPrint: true},
		{name: "prints with full detail level", err: errors.New("test error"), detailLevel: "full", shouldPrint: true},
		{name: "suppresses print with none detail level", err: errors.New("test error"), detailLevel: "none", shouldPrint: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("ERROR_DETAIL_LEVEL", tt.detailLevel)
			defer os.Unsetenv("ERROR_DETAIL_LEVEL")

			oldStderr := os.Stderr
			r, w, _ := os.Pipe()
			os.Stderr = w

			got := PrintErrorAndReturn(tt.err)

			w.Close()
			os.Stderr = oldStderr

			output, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("Failed to read captured output: %v", err)
			}

			if tt.err == nil {
				if got != nil {
					t.Errorf("PrintErrorAndReturn() = %v, want nil", got)
				}
				return
			}

			if printed := len(output) > 0; printed != tt.shouldPrint {
				t.Errorf("PrintErrorAndReturn() printing = %v, want %v", printed, tt.shouldPrint)
			}
			if got == nil {
				t.Error("PrintErrorAndReturn() returned nil for non-nil error")
			}
		})
	}
}
