package async

import (
	"context"
	"testing"
	"time"

	"github.com/spolu/forge/forge/model"
	"github.com/spolu/forge/lib/db"
	"github.com/spolu/forge/lib/env"
	"github.com/stretchr/testify/assert"

	_ "github.com/spolu/forge/forge/model/schemas"
)

type countingTask struct {
	created time.Time
	subject string
	runs    *int
}

func (t *countingTask) Name() model.TkName {
	return "CountingTask"
}

func (t *countingTask) Created() time.Time {
	return t.created
}

func (t *countingTask) Subject() string {
	return t.subject
}

func (t *countingTask) Execute(
	ctx context.Context,
) error {
	*t.runs++
	return nil
}

func (t *countingTask) MaxRetries() uint {
	return 0
}

func (t *countingTask) DeadlineForRetry(
	retry uint,
) time.Time {
	return t.created
}

func setupAsyncTest(
	t *testing.T,
) context.Context {
	ctx := context.Background()

	ctx = env.With(ctx, &env.Env{
		Environment: env.QA,
		Config:      map[env.ConfigKey]string{},
	})

	forgeDB, err := db.NewSqlite3DBInMemory(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.CreateDBTables(ctx, "forge", forgeDB); err != nil {
		t.Fatal(err)
	}
	ctx = db.WithDB(ctx, "forge", forgeDB)

	return ctx
}

// Queueing a due task moves it to the Scheduled channel when no worker is
// around to receive it. TestRunOne must still run it.
func TestRunOneDrainsScheduledTasks(
	t *testing.T,
) {
	t.Parallel()
	ctx := setupAsyncTest(t)

	a, err := NewAsync(ctx)
	assert.Nil(t, err)
	ctx = With(ctx, a)

	runs := 0
	err = Queue(ctx, &countingTask{
		created: time.Now().UTC(),
		subject: "subject_0",
		runs:    &runs,
	})
	assert.Nil(t, err)

	assert.Equal(t, 0, len(a.Pending))
	assert.Equal(t, 1, len(a.Scheduled))

	TestRunOne(ctx)

	assert.Equal(t, 1, runs)
	assert.Equal(t, 0, len(a.Scheduled))
}

func TestRunOneExecutesPendingTasks(
	t *testing.T,
) {
	t.Parallel()
	ctx := setupAsyncTest(t)

	a, err := NewAsync(ctx)
	assert.Nil(t, err)
	ctx = With(ctx, a)

	runs := 0
	for i := 0; i < 3; i++ {
		err = Queue(ctx, &countingTask{
			created: time.Now().UTC(),
			subject: "subject_n",
			runs:    &runs,
		})
		assert.Nil(t, err)
	}

	TestRunOne(ctx)
	TestRunOne(ctx)
	TestRunOne(ctx)

	assert.Equal(t, 3, runs)
	assert.Equal(t, 0, len(a.Pending))
	assert.Equal(t, 0, len(a.Scheduled))
}
