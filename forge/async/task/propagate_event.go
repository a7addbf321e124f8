package task

import (
	"context"
	"time"

	"github.com/spolu/forge/forge"
	"github.com/spolu/forge/forge/async"
	"github.com/spolu/forge/forge/model"
	"github.com/spolu/forge/lib/db"
	"github.com/spolu/forge/lib/errors"
)

const (
	// TkPropagateEvent propagates an event to the configured indexer.
	TkPropagateEvent model.TkName = "PropagateEvent"
)

func init() {
	async.Registrar[TkPropagateEvent] = NewPropagateEvent
}

// PropagateEvent is in charge of propagating an event to the indexer
// configured for this forge, if any.
type PropagateEvent struct {
	created time.Time
	token   string
}

// NewPropagateEvent constructs and initializes the task.
func NewPropagateEvent(
	ctx context.Context,
	created time.Time,
	subject string,
) async.Task {
	return &PropagateEvent{
		created: created,
		token:   subject,
	}
}

// Name returns the task name.
func (t *PropagateEvent) Name() model.TkName {
	return TkPropagateEvent
}

// Created returns the task creation time.
func (t *PropagateEvent) Created() time.Time {
	return t.created
}

// Subject returns the task subject.
func (t *PropagateEvent) Subject() string {
	return t.token
}

// MaxRetries returns the max retries for the task.
func (t *PropagateEvent) MaxRetries() uint {
	return 18
}

// DeadlineForRetry returns the deadline for the provided retry count.
func (t *PropagateEvent) DeadlineForRetry(
	retry uint,
) time.Time {
	return t.Created().Add((1<<retry - 1) * time.Second)
}

// Execute idempotently runs the task to completion or errors.
func (t *PropagateEvent) Execute(
	ctx context.Context,
) error {
	if forge.GetIndexerURL(ctx) == "" {
		return nil
	}

	client := &forge.Client{}
	err := client.Init(ctx)
	if err != nil {
		return errors.Trace(err)
	}

	ctx = db.Begin(ctx, "forge")
	defer db.LoggedRollback(ctx, "forge")

	event, err := model.LoadEventByToken(ctx, t.token)
	if err != nil {
		return errors.Trace(err)
	} else if event == nil {
		return errors.Trace(
			errors.Newf("Event not found: %s", t.token))
	}

	db.Commit(ctx, "forge")

	resource := forge.NewEventResource(ctx, event)
	_, err = client.PropagateEvent(ctx, &resource)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}
