// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/hinerm/hIPNAT/internal/info"
	"github.com/hinerm/hIPNAT/internal/ipnat"
	"github.com/hinerm/hIPNAT/internal/logger"
)

const (
	loggerName = "hipnat:server"

	statusPathPrefix = "/-/"
)

type Server interface {
	Start() error
	Stop() error
	StartAsync(ctx context.Context)
}

type impServer struct {
	Config

	app *fiber.App
}

var (
	ErrServerListen   = errors.New("server listen error")
	ErrServerShutdown = errors.New("server shutdown error")
)

// NewServer builds the status server. Unexpected handler errors are routed
// through the suite exception handling.
func NewServer(ctx context.Context, suite *ipnat.Suite) (Server, error) {
	cfg, err := LoadServerConfig()
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               info.AbbrevName,
		DisableStartupMessage: cfg.DisableStartupMessage,
		ErrorHandler:          errorHandler(suite),
	})

	log := logger.FromContext(ctx)
	app.Use(recover.New())
	app.Use(logger.RequestMiddlewareLogger(log, []string{statusPathPrefix}))

	statusRoutes(app, suite.Metadata())

	return &impServer{
		app:    app,
		Config: *cfg,
	}, nil
}

func errorHandler(suite *ipnat.Suite) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := http.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		message := err.Error()
		if code >= http.StatusInternalServerError {
			suite.HandleException(fmt.Errorf("%s %s: %w", c.Method(), c.Path(), err))
			message = "unexpected error, see the server logs for details"
		}

		return c.Status(code).JSON(fiber.Map{
			"statusCode": code,
			"error":      http.StatusText(code),
			"message":    message,
		})
	}
}

func (s *impServer) Start() error {
	if err := s.app.Listen(fmt.Sprintf("%s:%d", s.HTTPHost, s.HTTPPort)); err != nil {
		return fmt.Errorf("%w: %w", ErrServerListen, err)
	}
	return nil
}

func (s *impServer) Stop() error {
	if err := s.app.Shutdown(); err != nil {
		return fmt.Errorf("%w: %w", ErrServerShutdown, err)
	}
	return nil
}

func (s *impServer) StartAsync(ctx context.Context) {
	log := logger.FromContext(ctx).WithName(loggerName)
	go func() {
		if err := s.Start(); err != nil {
			log.Error(err.Error())
		}
	}()
}
