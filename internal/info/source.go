// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package info

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
)

const (
	develVersion   = "(devel)"
	vcsTimeSetting = "vcs.time"
)

//go:embed META-INF/MANIFEST.MF
var embeddedManifest embed.FS

// Source returns the manifest attributes recovered from one packaging location.
type Source func() (Manifest, error)

// LinkerSource exposes the values injected at build time with -ldflags.
// The variables are read when the source is invoked, not when it is created.
func LinkerSource() Source {
	return func() (Manifest, error) {
		manifest := make(Manifest)
		if Version != "" {
			manifest[ImplementationVersionKey] = Version
		}
		if BuildDate != "" {
			manifest[ImplementationDateKey] = BuildDate
		}
		return manifest, nil
	}
}

// FSSource reads the manifest found at path inside fsys.
func FSSource(fsys fs.FS, path string) Source {
	return func() (Manifest, error) {
		file, err := fsys.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening manifest %q: %w", path, err)
		}
		defer file.Close()

		return ParseManifest(file)
	}
}

// FileSource reads the manifest stored at path on the local filesystem.
func FileSource(path string) Source {
	cleanedPath := filepath.Clean(path)
	return FSSource(os.DirFS(filepath.Dir(cleanedPath)), filepath.Base(cleanedPath))
}

// EmbeddedSource reads the manifest packaged inside the binary.
func EmbeddedSource() Source {
	return FSSource(embeddedManifest, ManifestPath)
}

// BuildInfoSource maps the module version and the vcs time recorded by the Go
// toolchain to the implementation attributes.
func BuildInfoSource(read func() (*debug.BuildInfo, bool)) Source {
	return func() (Manifest, error) {
		manifest := make(Manifest)
		buildInfo, ok := read()
		if !ok || buildInfo == nil {
			return manifest, nil
		}

		if version := buildInfo.Main.Version; version != "" && version != develVersion {
			manifest[ImplementationVersionKey] = version
		}

		for _, setting := range buildInfo.Settings {
			if setting.Key == vcsTimeSetting && setting.Value != "" {
				manifest[ImplementationDateKey] = setting.Value
			}
		}

		return manifest, nil
	}
}
