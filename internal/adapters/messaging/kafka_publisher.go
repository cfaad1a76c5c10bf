package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"eduhub-records/internal/core/services"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes person lifecycle events to a Kafka topic
type KafkaPublisher struct {
	l     *slog.Logger
	w     messageWriter
	topic string
}

func NewKafkaPublisher(l *slog.Logger, brokers []string, topic string) *KafkaPublisher {
	l = l.WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return &KafkaPublisher{l: l, w: w, topic: topic}
}

// Publish writes the event keyed by "<type>:<person id>". Failures are logged, never returned.
func (p *KafkaPublisher) Publish(ctx context.Context, event services.Event) {
	b, err := json.Marshal(event)
	if err != nil {
		p.l.ErrorContext(ctx, fmt.Sprintf("marshal event: %s", err))
		return
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fmt.Sprintf("%s:%d", event.Type, event.PersonID)),
		Value: b,
		Topic: p.topic,
	})
	if err != nil {
		p.l.ErrorContext(ctx, fmt.Sprintf("write kafka message: %s", err))
	}
}

func (p *KafkaPublisher) Close() {
	if err := p.w.Close(); err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}

type infoLogger struct {
	l *slog.Logger
}

func (l *infoLogger) Printf(format string, v ...any) {
	l.l.Debug(fmt.Sprintf(format, v...))
}

type errorLogger struct {
	l *slog.Logger
}

func (l *errorLogger) Printf(format string, v ...any) {
	l.l.Error(fmt.Sprintf(format, v...))
}
