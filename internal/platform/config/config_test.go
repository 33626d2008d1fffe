// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ontvitals/internal/platform/config"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/vitals")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/etc/ontvitals/jwt.pub")
}

/*
TestLoad_Defaults verifies the transcription defaults when only required values are set.
*/
func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "CAON", cfg.DefaultDomain)
	assert.Equal(t, "en", cfg.DefaultLang)
	assert.Equal(t, time.Hour, cfg.ReferenceCacheTTL)
	assert.Equal(t, int64(8<<20), cfg.MaxUploadBytes)
}

/*
TestLoad_Invalid verifies that malformed values stop startup.
*/
func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"lowercase_domain", "DEFAULT_DOMAIN", "caon"},
		{"long_lang", "DEFAULT_LANG", "eng"},
		{"zero_upload", "MAX_UPLOAD_BYTES", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "")

	_, err := config.Load()
	assert.Error(t, err)
}
