package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestBackoffDelay(t *testing.T) {
	cases := []struct {
		retryCount int
		want       time.Duration
	}{
		{0, 10 * time.Second},
		{1, 10 * time.Second},
		{2, 20 * time.Second},
		{3, 40 * time.Second},
		{6, 320 * time.Second},
		{50, maxBackoff},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, backoffDelay(tc.retryCount), "retry %d", tc.retryCount)
	}
}

func TestOutboxCreateWritesThroughTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs(
			"evt-1", "req-1", "time_entry", "agg-1",
			"time_entry.closed", "zeiterfassung.timeentry.closed.v1",
			[]byte(`{}`), OutboxStatusPending,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)

	repo := NewOutboxRepository(db).WithTx(tx)
	err = repo.Create(context.Background(), OutboxEvent{
		ID:            "evt-1",
		RequestID:     "req-1",
		AggregateType: "time_entry",
		AggregateID:   "agg-1",
		EventType:     "time_entry.closed",
		Topic:         "zeiterfassung.timeentry.closed.v1",
		Payload:       []byte(`{}`),
		Status:        OutboxStatusPending,
	})
	assert.NoError(t, err)
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkFailedBumpsRetryAndReschedules(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("UPDATE outbox_events").
		WithArgs("evt-1", OutboxStatusFailed, "broker unreachable").
		WillReturnRows(sqlmock.NewRows([]string{"retry_count"}).AddRow(3))
	mock.ExpectExec("UPDATE outbox_events SET next_retry_at").
		WithArgs("evt-1", 40).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewOutboxRepository(db)
	err = repo.MarkFailed(context.Background(), "evt-1", "broker unreachable")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
