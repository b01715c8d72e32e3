package publisher

import (
	"context"
	"log"
	"time"

	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/repository"
	"github.com/segmentio/kafka-go"
)

// EventWriter is the broker side of the poller; *kafka.Writer satisfies it.
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OutboxPoller ships order events appended by the services to the broker.
// Publishing stays off the request path; a broker outage only delays events.
type OutboxPoller struct {
	eventTick time.Duration
	batchSize int
	outbox    repository.OutboxRepository
	writer    EventWriter
}

// NewOutboxPoller builds a poller over the "order-events" topic.
func NewOutboxPoller(outbox repository.OutboxRepository, brokers ...string) *OutboxPoller {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-events",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &OutboxPoller{
		eventTick: time.Second,
		batchSize: 100,
		outbox:    outbox,
		writer:    w,
	}
}

// NewOutboxPollerWithWriter is the seam tests use to swap the broker.
func NewOutboxPollerWithWriter(outbox repository.OutboxRepository, writer EventWriter) *OutboxPoller {
	return &OutboxPoller{
		eventTick: time.Second,
		batchSize: 100,
		outbox:    outbox,
		writer:    writer,
	}
}

// Run polls until the context is cancelled.
func (p *OutboxPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.eventTick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.ProcessUnpublishedEvents(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// ProcessUnpublishedEvents publishes one batch and marks what went through.
func (p *OutboxPoller) ProcessUnpublishedEvents(ctx context.Context) {
	events, err := p.outbox.GetUnprocessedEvents(ctx, p.batchSize)
	if err != nil {
		log.Printf("failed to fetch events %v", err)
		return
	}

	for _, event := range events {
		errPublish := p.publish(ctx, event)
		if errPublish != nil {
			log.Printf("failed to publish event id = %v with error %v", event.ID, errPublish)
			continue
		}

		errMark := p.outbox.MarkEventAsProcessed(ctx, event.ID)
		if errMark != nil {
			log.Printf("failed to mark event as processed id = %v with error %v", event.ID, errMark)
			continue
		}
	}
}

func (p *OutboxPoller) publish(ctx context.Context, event *repository.OutboxEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.AggregateID), // order id for ordering
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}
