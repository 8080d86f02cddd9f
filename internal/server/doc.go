// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package server contains the status server of the hIPNAT suite.
// It sets up the HTTP server using the Fiber framework, configures middleware for logging,
// and exposes the health and build metadata routes.
package server
