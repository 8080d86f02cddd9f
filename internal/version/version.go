// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package version formats the build metadata for humans.
package version

import (
	"runtime"

	"github.com/hinerm/hIPNAT/internal/info"
)

// Information formats the version metadata for display.
func Information(version, buildDate, runtimeVersion string) string {
	outputString := version
	if buildDate != "" {
		outputString += " (" + buildDate + ")"
	}

	return outputString + ", Go Version: " + runtimeVersion
}

// ServiceVersionInformation formats the metadata resolved by metadata.
func ServiceVersionInformation(metadata *info.Metadata) string {
	return Information(metadata.Version(), metadata.BuildDate(), runtime.Version())
}
