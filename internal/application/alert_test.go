package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"zone-guard/internal/domain/entity"
	"zone-guard/internal/infrastructure/storage"
)

func intrusionAt(at time.Time, inside int) entity.FrameReport {
	return entity.FrameReport{At: at, State: entity.ZoneDefined, InsideCount: inside}
}

func TestAlertService_Cooldown(t *testing.T) {
	repo := storage.NewMemoryIncidentRepository(10)
	svc := NewAlertService(repo, 30*time.Second)
	ctx := context.Background()
	start := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	svc.Observe(ctx, intrusionAt(start, 1), nil)
	svc.Observe(ctx, intrusionAt(start.Add(10*time.Second), 2), nil)
	svc.Observe(ctx, intrusionAt(start.Add(30*time.Second), 3), nil)

	history, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, 3, history[0].InsideCount)
	require.Equal(t, 1, history[1].InsideCount)
	require.Equal(t, 3, svc.Latest().InsideCount)
}

func TestAlertService_IgnoresFramesWithoutIntrusion(t *testing.T) {
	repo := storage.NewMemoryIncidentRepository(10)
	svc := NewAlertService(repo, time.Second)
	ctx := context.Background()
	called := false
	snapshot := func() ([]byte, error) {
		called = true
		return nil, nil
	}

	svc.Observe(ctx, entity.FrameReport{At: time.Now(), State: entity.ZoneDefined}, snapshot)
	svc.Observe(ctx, entity.FrameReport{At: time.Now(), State: entity.ZoneUndefined, InsideCount: 4}, snapshot)

	history, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, history)
	require.False(t, called)
}

func TestAlertService_RunDeliversNotifications(t *testing.T) {
	repo := storage.NewMemoryIncidentRepository(10)
	notifier := &fakeNotifier{sent: make(chan *entity.Incident, 1)}
	svc := NewAlertService(repo, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx, notifier) }()

	svc.Observe(ctx, intrusionAt(time.Now(), 2), func() ([]byte, error) { return []byte("jpeg"), nil })

	select {
	case incident := <-notifier.sent:
		require.Equal(t, 2, incident.InsideCount)
		require.NotEmpty(t, incident.ID)
	case <-time.After(time.Second):
		t.Fatal("notification was not delivered")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestAlertService_DropsWhenQueueFull(t *testing.T) {
	repo := storage.NewMemoryIncidentRepository(50)
	svc := NewAlertService(repo, 0)
	ctx := context.Background()
	start := time.Now()

	for i := 0; i < alertQueueSize+3; i++ {
		svc.Observe(ctx, intrusionAt(start.Add(time.Duration(i)*time.Second), 1), nil)
	}

	require.Len(t, svc.queue, alertQueueSize)
	history, err := svc.History(ctx, 50)
	require.NoError(t, err)
	require.Len(t, history, alertQueueSize+3)
}

func TestAlertService_ClearResetsHistoryAndCooldown(t *testing.T) {
	repo := storage.NewMemoryIncidentRepository(10)
	svc := NewAlertService(repo, time.Hour)
	ctx := context.Background()
	now := time.Now()

	svc.Observe(ctx, intrusionAt(now, 1), nil)
	require.NoError(t, svc.Clear(ctx))

	history, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, history)

	svc.Observe(ctx, intrusionAt(now.Add(time.Second), 1), nil)
	history, err = svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestAlertService_HistoryRejectsBadLimit(t *testing.T) {
	svc := NewAlertService(storage.NewMemoryIncidentRepository(1), time.Second)
	_, err := svc.History(context.Background(), 0)
	require.Error(t, err)
}
