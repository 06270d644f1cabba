package container

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"zone-guard/config"
)

type closer struct {
	name  string
	order *[]string
	err   error
}

func (c closer) Close() error {
	*c.order = append(*c.order, c.name)
	return c.err
}

func TestWire_BuildsServices(t *testing.T) {
	c := &Container{}
	c.wire(&config.Config{HistoryLimit: 3, AlertCooldown: time.Second, QuitKey: 'q'}, nil, nil, nil, nil)

	require.NotNil(t, c.SubscriptionService)
	require.NotNil(t, c.AlertService)
	require.NotNil(t, c.Monitor)
}

func TestClose_ReverseOrderAndCombinedErrors(t *testing.T) {
	var order []string
	c := &Container{closers: []interface{ Close() error }{
		closer{name: "capture", order: &order},
		closer{name: "detector", order: &order, err: errors.New("net busy")},
		closer{name: "window", order: &order, err: errors.New("no display")},
	}}

	err := c.Close()
	require.ErrorContains(t, err, "net busy")
	require.ErrorContains(t, err, "no display")
	require.Equal(t, []string{"window", "detector", "capture"}, order)

	require.NoError(t, c.Close())
	require.Len(t, order, 3)
}
