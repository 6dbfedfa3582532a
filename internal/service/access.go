package service

import (
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
)

// owned is implemented by every record that belongs to a profile.
type owned interface {
	OwnerID() string
}

// GetOwned fetches a record and hands it out only to its owner. A record of
// another profile is reported exactly like a missing one.
func GetOwned[T owned](ctx context.Context, fetch func(ctx context.Context) (T, error), profileID string) (T, error) {
	var zero T
	record, err := fetch(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, ErrNotFound) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	if profileID == "" || record.OwnerID() != profileID {
		return zero, ErrNotFound
	}
	return record, nil
}
