/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the dependency the archive package accepts through its
// WithLogger functional option. It never exposes the underlying logrus
// types so a caller can swap implementations without an import.
type Logger interface {
	WithField(key string, value any) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger

	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Fatal(args ...any)

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Fields is a set of structured key/value pairs attached to a log line.
type Fields map[string]any

type entry struct {
	e *logrus.Entry
}

// New builds a Logger at the given level, writing to out. A nil out
// defaults to os.Stderr, matching logrus's own zero-value behavior.
func New(lvl Level, out io.Writer) Logger {
	if out == nil {
		out = os.Stderr
	}
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl == NilLevel {
		l.SetOutput(io.Discard)
	} else {
		l.SetLevel(lvl.logrus())
	}
	return &entry{e: logrus.NewEntry(l)}
}

// Discard returns a Logger that drops every line, the default the archive
// package falls back to when WithLogger is never called.
func Discard() Logger {
	return New(NilLevel, io.Discard)
}

func (l *entry) WithField(key string, value any) Logger {
	return &entry{e: l.e.WithField(key, value)}
}

func (l *entry) WithFields(fields Fields) Logger {
	return &entry{e: l.e.WithFields(logrus.Fields(fields))}
}

func (l *entry) WithError(err error) Logger {
	return &entry{e: l.e.WithError(err)}
}

func (l *entry) Debug(args ...any) { l.e.Debug(args...) }
func (l *entry) Info(args ...any)  { l.e.Info(args...) }
func (l *entry) Warn(args ...any)  { l.e.Warn(args...) }
func (l *entry) Error(args ...any) { l.e.Error(args...) }
func (l *entry) Fatal(args ...any) { l.e.Fatal(args...) }

func (l *entry) Debugf(format string, args ...any) { l.e.Debugf(format, args...) }
func (l *entry) Infof(format string, args ...any)  { l.e.Infof(format, args...) }
func (l *entry) Warnf(format string, args ...any)  { l.e.Warnf(format, args...) }
func (l *entry) Errorf(format string, args ...any) { l.e.Errorf(format, args...) }
