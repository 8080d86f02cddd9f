// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package host

import (
	"fmt"
	"io"
	"sync"

	"github.com/hinerm/hIPNAT/internal/logger"
)

const (
	loggerName = "host"

	unhandledExceptionMessage = "unhandled exception"
)

// ExceptionHandler receives the errors routed to the host.
type ExceptionHandler interface {
	Handle(err error)
}

// ExceptionHandlerFunc adapts a function to the ExceptionHandler interface.
type ExceptionHandlerFunc func(err error)

func (f ExceptionHandlerFunc) Handle(err error) {
	f(err)
}

// ContextFactory builds the application Context on first request.
type ContextFactory func() (*Context, error)

// Option customizes an Application.
type Option func(*Application)

// WithErrorOutput sets the writer where errors shown to the user are printed.
func WithErrorOutput(writer io.Writer) Option {
	return func(a *Application) {
		a.errOutput = writer
	}
}

// WithContextFactory replaces the factory used to build the application Context.
func WithContextFactory(factory ContextFactory) Option {
	return func(a *Application) {
		a.contextFactory = factory
	}
}

// Application is the host runtime the plugins are loaded into.
type Application struct {
	log            logger.Logger
	errOutput      io.Writer
	contextFactory ContextFactory

	contextLock sync.Mutex
	context     *Context

	handlerLock    sync.RWMutex
	handler        ExceptionHandler
	defaultHandler ExceptionHandler
}

// NewApplication returns an Application whose log service writes on log.
func NewApplication(log logger.Logger, opts ...Option) *Application {
	app := &Application{
		log: log.WithName(loggerName),
	}
	app.contextFactory = func() (*Context, error) {
		return NewContext(log), nil
	}
	app.defaultHandler = ExceptionHandlerFunc(func(err error) {
		app.log.Error(unhandledExceptionMessage, "error", err.Error())
	})

	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Context returns the application Context, creating it on the first call.
func (a *Application) Context() (*Context, error) {
	a.contextLock.Lock()
	defer a.contextLock.Unlock()

	if a.context == nil {
		ctx, err := a.contextFactory()
		if err != nil {
			return nil, fmt.Errorf("creating application context: %w", err)
		}
		a.context = ctx
	}

	return a.context, nil
}

// SetExceptionHandler installs handler for the following HandleException calls.
// A nil handler restores the default behavior.
func (a *Application) SetExceptionHandler(handler ExceptionHandler) {
	a.handlerLock.Lock()
	defer a.handlerLock.Unlock()
	a.handler = handler
}

// ExceptionHandler returns the handler that HandleException currently uses.
func (a *Application) ExceptionHandler() ExceptionHandler {
	a.handlerLock.RLock()
	defer a.handlerLock.RUnlock()

	if a.handler == nil {
		return a.defaultHandler
	}
	return a.handler
}

// HandleException forwards err to the installed exception handler.
func (a *Application) HandleException(err error) {
	if err == nil {
		return
	}

	a.ExceptionHandler().Handle(err)
}

// ShowError presents an error message to the user.
func (a *Application) ShowError(title, message string) {
	a.log.Error(message, "title", title)
	if a.errOutput != nil {
		fmt.Fprintf(a.errOutput, "%s: %s\n", title, message)
	}
}
