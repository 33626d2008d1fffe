//go:build integration

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package death_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/registry/death"
	"github.com/taibuivan/ontvitals/internal/testutil/containers"
	"github.com/taibuivan/ontvitals/pkg/pagination"
)

func TestPostgresRepository_RoundTrip(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()
	repository := death.NewPostgresRepository(pg.Pool)

	record := smith()
	record.UpdatedBy = "jcobb"
	require.NoError(t, repository.Save(ctx, &record))

	stored, err := repository.Get(ctx, key12)
	require.NoError(t, err)
	assert.Equal(t, "Smith", stored.Surname)
	assert.Equal(t, "3 Mar 1887", stored.Date)
	assert.False(t, stored.UpdatedAt.IsZero())

	record.Cause = "Typhoid"
	require.NoError(t, repository.Save(ctx, &record))
	stored, err = repository.Get(ctx, key12)
	require.NoError(t, err)
	assert.Equal(t, "Typhoid", stored.Cause)

	require.NoError(t, repository.SetIDIR(ctx, key12, 42))
	stored, err = repository.Get(ctx, key12)
	require.NoError(t, err)
	assert.Equal(t, int64(42), stored.IDIR)

	require.NoError(t, repository.Delete(ctx, key12))
	_, err = repository.Get(ctx, key12)
	assert.True(t, apperr.IsNotFound(err))
	assert.True(t, apperr.IsNotFound(repository.Delete(ctx, key12)))
}

func TestPostgresRepository_Query(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()
	repository := death.NewPostgresRepository(pg.Pool)

	names := []string{"Smith", "Smyth", "Brown", "Smith"}
	for i, surname := range names {
		record := smith()
		record.RegNum = i + 1
		record.Surname = surname
		require.NoError(t, repository.Save(ctx, &record))
	}

	deaths, total, err := repository.Query(ctx, death.Filter{Domain: "CAON", RegYear: 1887}, pagination.New(0, 2))
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, deaths, 2)
	assert.Equal(t, 1, deaths[0].RegNum)

	deaths, total, err = repository.Query(ctx, death.Filter{Domain: "CAON", Surname: "smith"}, pagination.New(0, 20))
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, deaths, 2)

	_, total, err = repository.Query(ctx, death.Filter{Domain: "CAON", Surname: "Smith", Soundex: true}, pagination.New(0, 20))
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}
