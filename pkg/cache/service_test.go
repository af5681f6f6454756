package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seatRow struct {
	RowNr int `json:"row_nr"`
	Seats []int
}

func newTestService(t *testing.T) (Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(client), mr
}

func TestService_GetMissAndRoundTrip(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	var got seatRow
	assert.ErrorIs(t, svc.Get(ctx, "movieapp:row", &got), ErrCacheMiss)

	require.NoError(t, svc.Set(ctx, "movieapp:row", seatRow{RowNr: 4, Seats: []int{5, 6}}, time.Minute))
	require.NoError(t, svc.Get(ctx, "movieapp:row", &got))
	assert.Equal(t, seatRow{RowNr: 4, Seats: []int{5, 6}}, got)
	assert.True(t, svc.Exists(ctx, "movieapp:row"))

	mr.FastForward(2 * time.Minute)
	assert.False(t, svc.Exists(ctx, "movieapp:row"))
}

func TestService_GetOrSet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return []seatRow{{RowNr: 1}}, nil
	}

	var first, second []seatRow
	require.NoError(t, svc.GetOrSet(ctx, "movieapp:rows", time.Minute, fetch, &first))
	require.NoError(t, svc.GetOrSet(ctx, "movieapp:rows", time.Minute, fetch, &second))

	assert.Equal(t, 1, calls, "second read is served from cache")
	assert.Equal(t, first, second)
}

func TestService_GetOrSetPropagatesFetchError(t *testing.T) {
	svc, _ := newTestService(t)
	boom := errors.New("boom")

	var dest []seatRow
	err := svc.GetOrSet(context.Background(), "movieapp:rows", time.Minute, func() (interface{}, error) {
		return nil, boom
	}, &dest)

	assert.ErrorIs(t, err, boom)
}

func TestService_DeletePattern(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "movieapp:movies:week:2026-10-19", 1, time.Hour))
	require.NoError(t, svc.Set(ctx, "movieapp:movies:week:2026-10-26", 2, time.Hour))
	require.NoError(t, svc.Set(ctx, "movieapp:genres:list:all", 3, time.Hour))

	require.NoError(t, svc.DeletePattern(ctx, "movieapp:movies:week:*"))

	assert.False(t, mr.Exists("movieapp:movies:week:2026-10-19"))
	assert.False(t, mr.Exists("movieapp:movies:week:2026-10-26"))
	assert.True(t, mr.Exists("movieapp:genres:list:all"))

	require.NoError(t, svc.Delete(ctx, "movieapp:genres:list:all"))
	assert.False(t, mr.Exists("movieapp:genres:list:all"))
	assert.NoError(t, svc.Delete(ctx))
}
