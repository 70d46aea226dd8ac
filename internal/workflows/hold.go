package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// HoldTaskQueue is the Temporal task queue for booking-hold workflows.
const HoldTaskQueue = "booking-holds"

// HoldInput is the input for the booking hold workflow.
type HoldInput struct {
	HoldID string
}

// BookingHoldWorkflow drives a hold through its lifecycle: place the hold and
// notify the contact, then expire it when its window lapses. If placement or
// notification fails, the hold is released (saga compensation).
func BookingHoldWorkflow(ctx workflow.Context, input HoldInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting booking hold workflow", "holdID", input.HoldID)

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	// Step 1: Resolve the hold's expiry so the workflow timer matches it
	var expiresAt time.Time
	err := workflow.ExecuteActivity(ctx, "GetHoldExpiry", input.HoldID).Get(ctx, &expiresAt)
	if err != nil {
		return err
	}

	// Step 2: Place the hold and notify the contact
	err = workflow.ExecuteActivity(ctx, "PlaceHold", input.HoldID).Get(ctx, nil)
	if err != nil {
		logger.Warn("hold placement failed, releasing", "error", err)
		// Compensate: free the hold so the date opens up again
		_ = workflow.ExecuteActivity(ctx, "ReleaseHold", input.HoldID).Get(ctx, nil)
		return err
	}

	// Step 3: Wait out the hold window, then expire it. ExpireHold is a
	// no-op if the hold was confirmed or released in the meantime.
	wait := expiresAt.Sub(workflow.Now(ctx))
	if wait > 0 {
		if err := workflow.Sleep(ctx, wait); err != nil {
			return err
		}
	}
	err = workflow.ExecuteActivity(ctx, "ExpireHold", input.HoldID).Get(ctx, nil)
	if err != nil {
		return err
	}

	logger.Info("Booking hold workflow complete", "holdID", input.HoldID)
	return nil
}
