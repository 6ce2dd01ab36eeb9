package maintenance

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	calls   int
	gotDays int
	n       int64
	err     error
}

func (f *fakePurger) PurgeDeleted(_ context.Context, retentionDays int) (int64, error) {
	f.calls++
	f.gotDays = retentionDays
	return f.n, f.err
}

func TestRunPurge_PassesRetention(t *testing.T) {
	p := &fakePurger{n: 3}
	s := New(p, 30)

	s.runPurge(context.Background())

	assert.Equal(t, 1, p.calls)
	assert.Equal(t, 30, p.gotDays)
}

func TestRunPurge_ErrorIsNonFatal(t *testing.T) {
	p := &fakePurger{err: errors.New("db down")}
	s := New(p, 30)

	s.runPurge(context.Background())

	assert.Equal(t, 1, p.calls)
}

func TestStartStop(t *testing.T) {
	s := New(&fakePurger{}, 30)

	require.NoError(t, s.Start(context.Background()))
	s.Stop()
}
