package queue_test

import (
	"testing"

	"github.com/yeisme/docvault/pkg/queue"
)

func TestWatermillMessageRoundTrip(t *testing.T) {
	payload := queue.EntityEventPayload{
		Entity: queue.EntityRef{
			EntityID: "01HX00000000000000000000",
			Kind:     "document",
			Name:     "report.pdf",
			OwnerID:  "alice@example.com",
		},
		Actor:     "alice@example.com",
		VersionNo: 1,
	}

	msg, err := queue.NewWatermillMessage(
		queue.TopicEntityCreated, payload,
		queue.WithTraceID("trace-xyz"),
		queue.WithProducer("docvault"),
	)
	if err != nil {
		t.Fatalf("new message: %v", err)
	}

	if got := msg.Metadata.Get("topic"); got != queue.TopicEntityCreated {
		t.Errorf("topic metadata: %q", got)
	}

	if got := msg.Metadata.Get("producer"); got != "docvault" {
		t.Errorf("producer metadata: %q", got)
	}

	env, err := queue.ParseEntityEvent(msg)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if env.Header.Topic != queue.TopicEntityCreated {
		t.Errorf("header topic: %q", env.Header.Topic)
	}

	if env.Header.Version != queue.PayloadVersionV1 {
		t.Errorf("header version: %q", env.Header.Version)
	}

	if env.Header.OccurredAt.IsZero() {
		t.Error("occurred_at not set")
	}

	if env.Payload != payload {
		t.Errorf("payload mismatch: %+v", env.Payload)
	}
}

func TestHeaderOptionsAreOptional(t *testing.T) {
	msg, err := queue.NewWatermillMessage(queue.TopicTrashEmptied, queue.TrashBatchPayload{Purged: 3})
	if err != nil {
		t.Fatalf("new message: %v", err)
	}

	env, err := queue.ParseWatermillMessage[queue.TrashBatchPayload](msg)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if env.Header.TraceID != "" || env.Header.Producer != "" {
		t.Errorf("unexpected header fields: %+v", env.Header)
	}

	if env.Payload.Purged != 3 {
		t.Errorf("payload: %+v", env.Payload)
	}
}
