// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upload_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/platform/upload"
)

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	gifHeader = []byte("GIF89a\x01\x00\x01\x00")
)

func TestBasename(t *testing.T) {
	assert.Equal(t, "CAON-Msx-London_Twp-StJohns-A-3-12",
		upload.Basename("CAON", "Msx", "London Twp", "St.John's", "A", "3", "12"))
	assert.Equal(t, "CAON-etcpasswd", upload.Basename("CAON", "../etc/passwd"))
}

func TestStore_Save_Sequence(t *testing.T) {
	dir := t.TempDir()
	store := upload.NewStore(dir, 1024)
	base := upload.Basename("CAON", "Msx", "London", "Woodland", "A", "3", "12")

	first, err := store.Save(context.Background(), base, bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, base+"-1.png", first)

	// A GIF with the same key must not reuse sequence 1.
	second, err := store.Save(context.Background(), base, bytes.NewReader(gifHeader))
	require.NoError(t, err)
	assert.Equal(t, base+"-2.gif", second)

	// Freed numbers are reused.
	require.NoError(t, store.Remove(first))
	third, err := store.Save(context.Background(), base, bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, base+"-1.png", third)

	stored, err := os.ReadFile(filepath.Join(dir, second))
	require.NoError(t, err)
	assert.Equal(t, gifHeader, stored)
}

func TestStore_Save_Rejects(t *testing.T) {
	dir := t.TempDir()
	store := upload.NewStore(dir, 16)

	_, err := store.Save(context.Background(), "x", bytes.NewReader([]byte("<html>not an image</html>")))
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.As(err).Code)

	_, err = store.Save(context.Background(), "x", bytes.NewReader(nil))
	require.Error(t, err)

	big := append(append([]byte{}, pngHeader...), make([]byte, 64)...)
	_, err = store.Save(context.Background(), "x", bytes.NewReader(big))
	require.Error(t, err)
	assert.Equal(t, apperr.CodeTooLarge, apperr.As(err).Code)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected uploads leave no files behind")
}

func TestStore_Remove_RejectsPaths(t *testing.T) {
	store := upload.NewStore(t.TempDir(), 16)
	assert.Error(t, store.Remove("../secret.png"))
	assert.NoError(t, store.Remove("missing.png"))
}
