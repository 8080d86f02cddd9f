// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package host

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	ErrServiceNotFound = errors.New("service not found")
)

// LogService is the logging facility the host exposes to plugins.
type LogService interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Context is the registry of the services shared across the host and its plugins.
type Context struct {
	lock     sync.RWMutex
	services []any
}

// NewContext returns a Context holding services.
func NewContext(services ...any) *Context {
	ctx := &Context{}
	for _, service := range services {
		ctx.Register(service)
	}
	return ctx
}

// Register adds service to the context. Nil services are ignored.
func (c *Context) Register(service any) {
	if service == nil {
		return
	}

	c.lock.Lock()
	defer c.lock.Unlock()
	c.services = append(c.services, service)
}

// Lookup returns the first service registered in ctx that is assignable to T.
func Lookup[T any](ctx *Context) (T, error) {
	var zero T
	if ctx == nil {
		return zero, fmt.Errorf("%w: %s: nil context", ErrServiceNotFound, reflect.TypeFor[T]())
	}

	ctx.lock.RLock()
	defer ctx.lock.RUnlock()

	for _, service := range ctx.services {
		if typed, ok := service.(T); ok {
			return typed, nil
		}
	}

	return zero, fmt.Errorf("%w: %s", ErrServiceNotFound, reflect.TypeFor[T]())
}
