package changefeed_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/fabworks/caseboard/internal/adapter/postgres/changefeed"
	"github.com/fabworks/caseboard/internal/adapter/postgres/testhelper"
	"github.com/fabworks/caseboard/internal/realtime"
)

func TestListener_ReceivesTriggerNotifications(t *testing.T) {
	pool := testhelper.SetupTestDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := changefeed.NewListener(pool, slog.Default(), 16)

	done := make(chan error, 1)
	go func() { done <- listener.Run(ctx) }()

	// Give LISTEN a moment to be registered before writing.
	time.Sleep(500 * time.Millisecond)

	c := testhelper.SeedCase(t, pool)

	var got realtime.Notification
	select {
	case got = <-listener.Notifications():
	case <-time.After(10 * time.Second):
		t.Fatal("no notification for insert")
	}

	if got.Kind != realtime.KindInsert {
		t.Errorf("kind: %v", got.Kind)
	}
	if got.New == nil || got.New.ID != c.ID {
		t.Fatalf("new row: %+v", got.New)
	}

	// An update on the same row must arrive as well.
	_, err := pool.Exec(ctx, `UPDATE cases SET priority = true WHERE id = $1`, c.ID)
	if err != nil {
		t.Fatalf("update case: %v", err)
	}

	select {
	case got = <-listener.Notifications():
	case <-time.After(10 * time.Second):
		t.Fatal("no notification for update")
	}

	if got.Kind != realtime.KindUpdate {
		t.Errorf("kind: %v", got.Kind)
	}
	if got.New == nil || !got.New.Priority {
		t.Errorf("new row: %+v", got.New)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not stop on cancel")
	}
}
