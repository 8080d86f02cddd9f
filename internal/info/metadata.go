// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package info

import (
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Metadata resolves the build metadata from an ordered chain of sources.
// Sources are read on first use and every value is cached once computed.
type Metadata struct {
	sources []Source

	lock      sync.Mutex
	manifests []Manifest
	loaded    bool
	version   *string
	buildDate *string
}

// Build is a serializable snapshot of the build metadata.
type Build struct {
	Name         string `json:"name" yaml:"name"`
	ExtendedName string `json:"extendedName" yaml:"extendedName"`
	Version      string `json:"version" yaml:"version"`
	BuildDate    string `json:"buildDate,omitempty" yaml:"buildDate,omitempty"`
	BuildYear    string `json:"buildYear,omitempty" yaml:"buildYear,omitempty"`
	GoVersion    string `json:"goVersion" yaml:"goVersion"`
	Release      bool   `json:"release" yaml:"release"`
	DocURL       string `json:"docUrl" yaml:"docUrl"`
	SrcURL       string `json:"srcUrl" yaml:"srcUrl"`
}

// NewMetadata returns a resolver that consults sources in the given order.
func NewMetadata(sources ...Source) *Metadata {
	return &Metadata{sources: sources}
}

// Version returns the implementation version or DevVersion when no source provides one.
func (m *Metadata) Version() string {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.version == nil {
		version := m.firstValue(ImplementationVersionKey)
		if version == "" {
			version = DevVersion
		}
		m.version = &version
	}

	return *m.version
}

// BuildDate returns the implementation date as YYYY-MM-DD or an empty string
// when the date cannot be recovered.
func (m *Metadata) BuildDate() string {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.buildDate == nil {
		buildDate := implementationDay(m.firstValue(ImplementationDateKey))
		m.buildDate = &buildDate
	}

	return *m.buildDate
}

// BuildYear returns the year of the build date or an empty string.
func (m *Metadata) BuildYear() string {
	buildDate := m.BuildDate()
	if len(buildDate) < 4 {
		return ""
	}

	return buildDate[:4]
}

// VersionString returns the abbreviated suite name followed by its version.
func (m *Metadata) VersionString() string {
	return AbbrevName + " v" + m.Version()
}

// SemVer parses the version as a semantic version, tolerating a leading "v".
func (m *Metadata) SemVer() (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(m.Version(), "v"))
}

// IsRelease reports whether the version is a semantic version without prerelease part.
func (m *Metadata) IsRelease() bool {
	version, err := m.SemVer()
	if err != nil {
		return false
	}

	return version.Prerelease() == ""
}

// Build returns a snapshot of the resolved metadata.
func (m *Metadata) Build() Build {
	return Build{
		Name:         AbbrevName,
		ExtendedName: ExtendedName,
		Version:      m.Version(),
		BuildDate:    m.BuildDate(),
		BuildYear:    m.BuildYear(),
		GoVersion:    runtime.Version(),
		Release:      m.IsRelease(),
		DocURL:       DocURL,
		SrcURL:       SrcURL,
	}
}

// firstValue returns the first non-empty value for key. It must be called with the lock held.
func (m *Metadata) firstValue(key string) string {
	if !m.loaded {
		m.manifests = make([]Manifest, 0, len(m.sources))
		for _, source := range m.sources {
			if source == nil {
				continue
			}

			// unreadable sources are skipped, the accessors fall back to their placeholders
			manifest, err := source()
			if err != nil {
				continue
			}
			m.manifests = append(m.manifests, manifest)
		}
		m.loaded = true
	}

	for _, manifest := range m.manifests {
		if value := strings.TrimSpace(manifest.Get(key)); value != "" {
			return value
		}
	}

	return ""
}

// implementationDay keeps the date part of an implementation timestamp.
func implementationDay(timestamp string) string {
	if index := strings.LastIndex(timestamp, "T"); index >= 0 {
		return timestamp[:index]
	}

	if _, err := time.Parse(time.DateOnly, timestamp); err == nil {
		return timestamp
	}

	return ""
}
