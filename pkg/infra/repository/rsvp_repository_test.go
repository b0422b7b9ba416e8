package repository

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRSVPRepository_ConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRSVPRepository(10)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Increment(ctx)
		}()
	}
	wg.Wait()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(110), n)
}

func TestRedisRSVPRepository(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	repo := NewRedisRSVPRepository(client, "challenge:rsvp:count")

	mock.ExpectGet("challenge:rsvp:count").RedisNil()
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	mock.ExpectIncr("challenge:rsvp:count").SetVal(1)
	n, err = repo.Increment(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	mock.ExpectGet("challenge:rsvp:count").SetVal("1")
	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	mock.ExpectIncr("challenge:rsvp:count").SetErr(errors.New("READONLY"))
	_, err = repo.Increment(ctx)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRSVPRepository(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewPostgresRSVPRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count FROM rsvp_counter WHERE id = 1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(41), n)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO rsvp_counter")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
	n, err = repo.Increment(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}
