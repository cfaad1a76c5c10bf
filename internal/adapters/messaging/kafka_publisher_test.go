package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"eduhub-records/internal/core/services"
	"eduhub-records/internal/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := &KafkaPublisher{l: logger.Discard(), w: w, topic: "events"}

	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	p.Publish(context.Background(), services.Event{Type: services.EventEmployeeCreated, PersonID: 42, OccurredAt: at})

	require.Len(t, w.msgs, 1)
	require.Equal(t, "employee.created:42", string(w.msgs[0].Key))
	require.Equal(t, "events", w.msgs[0].Topic)

	var got services.Event
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	require.Equal(t, services.EventEmployeeCreated, got.Type)
	require.Equal(t, uint(42), got.PersonID)
	require.True(t, at.Equal(got.OccurredAt))
}

func TestKafkaPublisher_WriteFailureIsSwallowed(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker down")}
	p := &KafkaPublisher{l: logger.Discard(), w: w, topic: "events"}

	require.NotPanics(t, func() {
		p.Publish(context.Background(), services.Event{Type: services.EventStudentDeleted, PersonID: 7})
	})
	p.Close()
	require.True(t, w.closed)
}
