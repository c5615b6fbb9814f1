//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package logging is a helper for "github.com/op/go-logging" that reduces
// the boilerplate needed in each package to get a configured Logger.
package logging

import (
	golog "log"
	"os"
	"path/filepath"
	"strings"

	"github.com/op/go-logging"

	"github.com/ironpawn/searchcore/internal/config"
)

var (
	standardLog *logging.Logger
	searchLog   *logging.Logger
	testLog     *logging.Logger

	standardFormat = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortpkg:-8.8s}:%{shortfile:-14.14s} %{level:-7.7s}:  %{message}`)
)

func init() {
	standardLog = logging.MustGetLogger("core")
	searchLog = logging.MustGetLogger("search")
	testLog = logging.MustGetLogger("test")
}

// GetLog returns the standard Logger, configured with an os.Stdout
// backend at config.LogLevel.
func GetLog() *logging.Logger {
	backend := logging.NewLogBackend(os.Stdout, "", golog.Lmsgprefix)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, standardFormat))
	leveled.SetLevel(logging.Level(config.LogLevel), "")
	standardLog.SetBackend(leveled)
	return standardLog
}

// GetTestLog returns a Logger configured for test output.
func GetTestLog() *logging.Logger {
	backend := logging.NewLogBackend(os.Stdout, "", golog.Lmsgprefix)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, standardFormat))
	leveled.SetLevel(logging.Level(config.LogLevel), "")
	testLog.SetBackend(leveled)
	return testLog
}

// GetSearchTraceLog returns a Logger dedicated to the high-volume,
// per-node search trace, with a dual stdout+file backend. It is only
// ever called into from the search core when the package-level trace
// flag is on, so the formatting cost stays off the hot path otherwise.
func GetSearchTraceLog() *logging.Logger {
	format := logging.MustStringFormatter(`%{time:15:04:05.000} %{level:-7.7s}:  %{message}`)

	backend1 := logging.NewLogBackend(os.Stdout, "", golog.Lmsgprefix)
	stdoutBackend := logging.AddModuleLevel(logging.NewBackendFormatter(backend1, format))
	stdoutBackend.SetLevel(logging.Level(config.SearchLogLevel), "")
	searchLog.SetBackend(stdoutBackend)

	exe, err := os.Executable()
	if err != nil {
		return searchLog
	}
	logPath := filepath.Join(filepath.Dir(exe), "logs")
	if err := os.MkdirAll(logPath, 0o755); err != nil {
		return searchLog
	}
	exeName := strings.TrimSuffix(filepath.Base(exe), ".exe")
	f, err := os.OpenFile(filepath.Join(logPath, exeName+"_search.log"), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		golog.Println("search trace logfile could not be created:", err)
		return searchLog
	}
	backend2 := logging.NewLogBackend(f, "", golog.Lmsgprefix)
	fileBackend := logging.AddModuleLevel(logging.NewBackendFormatter(backend2, format))
	fileBackend.SetLevel(logging.DEBUG, "")
	searchLog.SetBackend(logging.SetBackend(stdoutBackend, fileBackend))
	return searchLog
}
