package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOwned(t *testing.T) {
	ctx := context.Background()
	record := &domain.FoodLog{ProfileID: "owner"}
	found := func(context.Context) (*domain.FoodLog, error) { return record, nil }
	missing := func(context.Context) (*domain.FoodLog, error) { return nil, repository.ErrNotFound }
	broken := func(context.Context) (*domain.FoodLog, error) { return nil, errors.New("db down") }

	got, err := GetOwned(ctx, found, "owner")
	require.NoError(t, err)
	assert.Same(t, record, got)

	_, err = GetOwned(ctx, found, "intruder")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = GetOwned(ctx, missing, "owner")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = GetOwned(ctx, broken, "owner")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
