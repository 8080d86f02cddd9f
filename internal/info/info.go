// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package info holds the suite identity and its build metadata.
//
// Build metadata is read lazily from a chain of sources: values injected by
// the linker, manifest files in the packaging layout and the Go build info
// embedded in the binary. Every value is computed at most once.
package info

const (
	// AppName is the name of the command line application.
	AppName = "hipnat"
	// ExtendedName is the long name of the plugin suite.
	ExtendedName = "Image Processing for NeuroAnatomy and Tree-like structures"
	// AbbrevName is the short name of the plugin suite.
	AbbrevName = "hIPNAT"
	// DocURL points to the user documentation.
	DocURL = "https://imagej.net/Neuroanatomy"
	// SrcURL points to the source repository.
	SrcURL = "https://github.com/tferr/hIPNAT"

	// DevVersion is returned when no version can be recovered.
	DevVersion = "X Dev"
)

var (
	// Version is dynamically set by the ci or overridden by the Makefile.
	Version = ""
	// BuildDate is the raw implementation timestamp set at build time by the ci or overridden in the Makefile.
	BuildDate = "" // YYYY-MM-DDThh:mm:ssZ
)
