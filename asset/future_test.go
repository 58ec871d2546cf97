package asset_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/orrery/asset"
)

func TestFuturePollBeforeAndAfter(t *testing.T) {
	f, resolve := asset.NewFuture[int]()

	v, ok, err := f.Poll()
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.NoError(t, err)

	resolve(7, nil)
	resolve(8, errors.New("ignored"))

	v, ok, err = f.Poll()
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	assert.NoError(t, err)
}

func TestFutureCarriesError(t *testing.T) {
	boom := errors.New("boom")
	f := asset.Resolved(0, boom)

	_, ok, err := f.Poll()
	assert.True(t, ok)
	assert.ErrorIs(t, err, boom)
}

func TestFutureGoAndWait(t *testing.T) {
	release := make(chan struct{})
	f := asset.Go(func() (string, error) {
		<-release
		return "model", nil
	})

	_, ok, _ := f.Poll()
	require.False(t, ok)

	close(release)
	v, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "model", v)

	select {
	case <-f.Done():
	default:
		t.Fatal("Done not closed after Wait returned")
	}
}

func TestFutureWaitHonoursContext(t *testing.T) {
	f, _ := asset.NewFuture[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
