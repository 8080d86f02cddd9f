// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package host models the application runtime that loads the plugin suite.
// The runtime owns a service Context used to look up shared services such as
// logging, an exception handling entry point with a swappable handler and a
// way to present errors to the user.
package host
