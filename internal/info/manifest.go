// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package info

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	ManifestPath = "META-INF/MANIFEST.MF"

	ImplementationTitleKey   = "Implementation-Title"
	ImplementationVersionKey = "Implementation-Version"
	ImplementationDateKey    = "Implementation-Date"
)

var (
	ErrMalformedManifest = errors.New("malformed manifest")
)

// Manifest holds the main attributes of a packaging manifest.
type Manifest map[string]string

// Get returns the value of the attribute with the given name, or an empty string.
func (m Manifest) Get(name string) string {
	if m == nil {
		return ""
	}
	return m[name]
}

// ParseManifest reads the main section of a manifest. Continuation lines begin
// with a single space and are appended to the value of the previous attribute.
// The main section ends at the first blank line.
func ParseManifest(r io.Reader) (Manifest, error) {
	manifest := make(Manifest)
	scanner := bufio.NewScanner(r)

	lineNumber := 0
	lastKey := ""
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			break
		}

		if strings.HasPrefix(line, " ") {
			if lastKey == "" {
				return nil, fmt.Errorf("%w: line %d: continuation without attribute", ErrMalformedManifest, lineNumber)
			}
			manifest[lastKey] += line[1:]
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: line %d: missing attribute separator", ErrMalformedManifest, lineNumber)
		}

		lastKey = key
		manifest[key] = strings.TrimPrefix(value, " ")
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedManifest, err)
	}

	return manifest, nil
}
