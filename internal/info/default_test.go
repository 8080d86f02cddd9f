// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package info

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLinkerValues(t *testing.T) {
	t.Helper()

	previousVersion, previousBuildDate := Version, BuildDate
	t.Cleanup(func() {
		Version, BuildDate = previousVersion, previousBuildDate
	})
	Version, BuildDate = "", ""
}

func TestDefaultSourcesPrecedence(t *testing.T) {
	clearLinkerValues(t)

	t.Run("external manifest wins over embedded manifest and build info", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "MANIFEST.MF")
		content := "Implementation-Version: 5.0.0\nImplementation-Date: 2022-03-04T05:06:07Z\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		t.Setenv("HIPNAT_MANIFEST_PATH", path)

		metadata := NewMetadata(defaultSources()...)
		assert.Equal(t, "5.0.0", metadata.Version())
		assert.Equal(t, "2022-03-04", metadata.BuildDate())
		assert.Equal(t, "2022", metadata.BuildYear())
	})

	t.Run("linker values win over external manifest", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "MANIFEST.MF")
		require.NoError(t, os.WriteFile(path, []byte("Implementation-Version: 5.0.0\n"), 0o600))
		t.Setenv("HIPNAT_MANIFEST_PATH", path)

		Version = "6.1.0"
		t.Cleanup(func() { Version = "" })

		metadata := NewMetadata(defaultSources()...)
		assert.Equal(t, "6.1.0", metadata.Version())
	})

	t.Run("missing external manifest is skipped", func(t *testing.T) {
		t.Setenv("HIPNAT_MANIFEST_PATH", filepath.Join(t.TempDir(), "missing.MF"))

		metadata := NewMetadata(defaultSources()...)
		assert.Equal(t, DevVersion, metadata.Version())
		assert.Empty(t, metadata.BuildDate())
	})

	t.Run("without external manifest", func(t *testing.T) {
		t.Setenv("HIPNAT_MANIFEST_PATH", "")

		sources := defaultSources()
		require.Len(t, sources, 3)

		metadata := NewMetadata(sources...)
		assert.Equal(t, DevVersion, metadata.Version())
		assert.Empty(t, metadata.BuildDate())
		assert.Empty(t, metadata.BuildYear())
	})
}

func TestDefaultAccessors(t *testing.T) {
	clearLinkerValues(t)
	t.Setenv("HIPNAT_MANIFEST_PATH", "")

	metadata := Default()
	require.Same(t, metadata, Default())

	assert.Equal(t, metadata.Version(), GetVersion())
	assert.Equal(t, metadata.BuildDate(), GetBuildDate())
	assert.Equal(t, metadata.BuildYear(), GetBuildYear())
	assert.Equal(t, metadata.VersionString(), VersionString())

	// the test binary carries no linker values, no vcs stamp and an embedded
	// manifest without implementation version or date
	assert.Equal(t, DevVersion, GetVersion())
	assert.Empty(t, GetBuildDate())
	assert.Empty(t, GetBuildYear())
	assert.Equal(t, "hIPNAT vX Dev", VersionString())

	Version = "9.9.9"
	assert.Equal(t, DevVersion, GetVersion(), "resolved values are never recomputed")
}
