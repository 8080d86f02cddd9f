// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package info

import (
	"runtime/debug"
	"sync"

	"github.com/caarlos0/env/v11"
)

type config struct {
	ManifestPath string `env:"HIPNAT_MANIFEST_PATH"`
}

// Default returns the process wide metadata resolver. The chain is built on first use.
var Default = sync.OnceValue(func() *Metadata {
	return NewMetadata(defaultSources()...)
})

func defaultSources() []Source {
	sources := []Source{LinkerSource()}

	var cfg config
	if err := env.Parse(&cfg); err == nil && cfg.ManifestPath != "" {
		sources = append(sources, FileSource(cfg.ManifestPath))
	}

	return append(sources, EmbeddedSource(), BuildInfoSource(debug.ReadBuildInfo))
}

// GetVersion returns the suite version from the default resolver.
func GetVersion() string {
	return Default().Version()
}

// GetBuildDate returns the build date from the default resolver.
func GetBuildDate() string {
	return Default().BuildDate()
}

// GetBuildYear returns the build year from the default resolver.
func GetBuildYear() string {
	return Default().BuildYear()
}

// VersionString returns the suite name and version from the default resolver.
func VersionString() string {
	return Default().VersionString()
}
