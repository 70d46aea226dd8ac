package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/stagewise/venuescout/internal/core/usecases"
)

// HoldActivities holds the activity implementations for the booking hold workflow.
type HoldActivities struct {
	Holds *usecases.HoldService
}

// GetHoldExpiry returns the expiry timestamp of a hold.
func (a *HoldActivities) GetHoldExpiry(ctx context.Context, holdID string) (time.Time, error) {
	hold, err := a.Holds.GetByID(ctx, holdID)
	if err != nil {
		return time.Time{}, fmt.Errorf("get hold %s: %w", holdID, err)
	}
	return hold.ExpiresAt, nil
}

// PlaceHold marks a pending hold as placed and notifies the contact.
func (a *HoldActivities) PlaceHold(ctx context.Context, holdID string) error {
	return a.Holds.PlaceHold(ctx, holdID)
}

// ReleaseHold frees a hold (saga compensation / rollback).
func (a *HoldActivities) ReleaseHold(ctx context.Context, holdID string) error {
	return a.Holds.ReleaseHold(ctx, holdID)
}

// ExpireHold marks a lapsed hold as expired. No-op on terminal states.
func (a *HoldActivities) ExpireHold(ctx context.Context, holdID string) error {
	return a.Holds.ExpireHold(ctx, holdID)
}
