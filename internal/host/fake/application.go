// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hinerm/hIPNAT/internal/host"
)

// Entry is a message received by the fake log service.
type Entry struct {
	Level   string
	Message string
	Args    []any
}

// LogService records every message it receives.
type LogService struct {
	lock    sync.Mutex
	entries []Entry
}

func (l *LogService) record(level, msg string, args []any) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Message: msg, Args: args})
}

func (l *LogService) Info(msg string, args ...any)  { l.record("INFO", msg, args) }
func (l *LogService) Warn(msg string, args ...any)  { l.record("WARN", msg, args) }
func (l *LogService) Error(msg string, args ...any) { l.record("ERROR", msg, args) }

// Entries returns a copy of the recorded messages.
func (l *LogService) Entries() []Entry {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Dialog is an error shown to the user.
type Dialog struct {
	Title   string
	Message string
}

// Application is a host that records the interactions of the plugins.
type Application struct {
	tb testing.TB

	Log          *LogService
	ContextError error

	contextCalls atomic.Int32

	lock           sync.Mutex
	context        *host.Context
	handler        host.ExceptionHandler
	handlerHistory []host.ExceptionHandler
	Dialogs        []Dialog
	DefaultHandled []error
}

// NewApplication returns a fake host whose context holds a recording log service.
func NewApplication(tb testing.TB) *Application {
	tb.Helper()

	log := &LogService{}
	return &Application{
		tb:      tb,
		Log:     log,
		context: host.NewContext(log),
	}
}

func (a *Application) Context() (*host.Context, error) {
	a.tb.Helper()
	a.contextCalls.Add(1)
	if a.ContextError != nil {
		return nil, fmt.Errorf("fake context: %w", a.ContextError)
	}

	a.lock.Lock()
	defer a.lock.Unlock()
	return a.context, nil
}

// ContextCalls returns how many times the context was requested.
func (a *Application) ContextCalls() int {
	a.tb.Helper()
	return int(a.contextCalls.Load())
}

// SetContext replaces the context returned to the plugins.
func (a *Application) SetContext(ctx *host.Context) {
	a.tb.Helper()
	a.lock.Lock()
	defer a.lock.Unlock()
	a.context = ctx
}

func (a *Application) SetExceptionHandler(handler host.ExceptionHandler) {
	a.tb.Helper()
	a.lock.Lock()
	defer a.lock.Unlock()
	a.handler = handler
	a.handlerHistory = append(a.handlerHistory, handler)
}

// Handler returns the currently installed exception handler, nil for the default one.
func (a *Application) Handler() host.ExceptionHandler {
	a.tb.Helper()
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.handler
}

// HandlerHistory returns every handler installed so far, in order.
func (a *Application) HandlerHistory() []host.ExceptionHandler {
	a.tb.Helper()
	a.lock.Lock()
	defer a.lock.Unlock()
	return append([]host.ExceptionHandler(nil), a.handlerHistory...)
}

func (a *Application) HandleException(err error) {
	a.tb.Helper()
	if err == nil {
		return
	}

	a.lock.Lock()
	handler := a.handler
	if handler == nil {
		a.DefaultHandled = append(a.DefaultHandled, err)
	}
	a.lock.Unlock()

	if handler != nil {
		handler.Handle(err)
	}
}

func (a *Application) ShowError(title, message string) {
	a.tb.Helper()
	a.lock.Lock()
	defer a.lock.Unlock()
	a.Dialogs = append(a.Dialogs, Dialog{Title: title, Message: message})
}
