// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package ipnat

import (
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/hinerm/hIPNAT/internal/host"
	"github.com/hinerm/hIPNAT/internal/info"
	"github.com/hinerm/hIPNAT/internal/logger"
)

const (
	logPrefix = "[" + info.AbbrevName + "] "
)

// Host is the part of the host application runtime used by the suite.
type Host interface {
	Context() (*host.Context, error)
	SetExceptionHandler(handler host.ExceptionHandler)
	HandleException(err error)
	ShowError(title, message string)
}

// Option customizes a Suite.
type Option func(*Suite)

// WithContext sets the host context up front, the host is not asked for one.
func WithContext(ctx *host.Context) Option {
	return func(s *Suite) {
		s.context = ctx
	}
}

// WithFallbackLogService sets the log service used when the host cannot provide one.
func WithFallbackLogService(logService host.LogService) Option {
	return func(s *Suite) {
		s.fallbackLogService = logService
	}
}

// Suite is the handle shared by the plugins of the suite.
type Suite struct {
	app                Host
	metadata           *info.Metadata
	fallbackLogService host.LogService
	newIncidentID      func() string

	initLock    sync.Mutex
	initialized atomic.Bool
	context     *host.Context
	logService  host.LogService

	// exceptionLock serializes the install, handle, restore sequence of HandleException.
	exceptionLock sync.Mutex
}

// New returns a Suite bound to app whose versions are read from metadata.
// Create one Suite per host application and share it: the exception handler
// swap of HandleException is serialized per Suite, so two suites bound to the
// same host may interleave their handlers.
func New(app Host, metadata *info.Metadata, opts ...Option) *Suite {
	suite := &Suite{
		app:           app,
		metadata:      metadata,
		newIncidentID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(suite)
	}

	if suite.metadata == nil {
		suite.metadata = info.Default()
	}
	if suite.fallbackLogService == nil {
		suite.fallbackLogService = logger.NewLoggerWithOptions(logger.Options{
			Output: os.Stderr,
			Format: logger.TextFormat,
			Level:  logger.INFO,
		})
	}

	return suite
}

// initialize binds the host context and its log service. It runs at most once.
func (s *Suite) initialize() {
	s.initLock.Lock()
	defer s.initLock.Unlock()

	if s.initialized.Load() {
		return
	}

	if s.context == nil {
		if ctx, err := s.app.Context(); err == nil {
			s.context = ctx
		}
	}

	if s.logService == nil {
		if logService, err := host.Lookup[host.LogService](s.context); err == nil {
			s.logService = logService
		} else {
			s.logService = s.fallbackLogService
		}
	}

	s.initialized.Store(true)
}

func (s *Suite) log() host.LogService {
	if !s.initialized.Load() {
		s.initialize()
	}
	return s.logService
}

// Metadata returns the build metadata of the suite.
func (s *Suite) Metadata() *info.Metadata {
	return s.metadata
}

// VersionString returns the suite name followed by its version.
func (s *Suite) VersionString() string {
	return s.metadata.VersionString()
}

// Log joins parts with a space and emits them at INFO level. A nil parts is ignored.
func (s *Suite) Log(parts ...string) {
	if parts == nil {
		return
	}
	s.log().Info(logPrefix + strings.Join(parts, " "))
}

// Warn emits msg at WARN level.
func (s *Suite) Warn(msg string) {
	s.log().Warn(logPrefix + msg)
}

// Error shows msg to the user in an error titled with the suite version.
func (s *Suite) Error(msg string) {
	s.app.ShowError(s.VersionString(), msg)
}

// HandleException routes err to the host with the suite exception handler installed.
// The host default handler is restored before returning.
func (s *Suite) HandleException(err error) {
	if err == nil {
		return
	}

	s.exceptionLock.Lock()
	defer s.exceptionLock.Unlock()

	s.app.SetExceptionHandler(&exceptionHandler{suite: s})
	defer s.app.SetExceptionHandler(nil)

	s.app.HandleException(err)
}
