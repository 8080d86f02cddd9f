// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package ipnat contains the helpers shared by the hIPNAT plugins.
//
// A Suite is created once by the host integration and passed to every plugin.
// It binds lazily to the host log service on first use and routes errors to
// the host exception handling with a handler that tags every failure with an
// incident id.
package ipnat
