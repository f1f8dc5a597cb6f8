package kafka

import (
	"context"

	"github.com/turtacn/DeNovo-Designer/internal/domain/analysis"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// AnalysisEventPublisher announces stored runs to the archive worker.
type AnalysisEventPublisher struct {
	publisher Publisher
	topic     string
	source    string
}

func NewAnalysisEventPublisher(p Publisher, topic, source string) *AnalysisEventPublisher {
	if topic == "" {
		topic = TopicAnalysisCompleted
	}
	return &AnalysisEventPublisher{publisher: p, topic: topic, source: source}
}

func (p *AnalysisEventPublisher) PublishCompleted(ctx context.Context, ev analysis.CompletedEvent) error {
	env, err := NewEventEnvelope(EventTypeAnalysisCompleted, p.source, ev)
	if err != nil {
		return err
	}
	msg, err := env.ToMessage(p.topic, ev.RunID)
	if err != nil {
		return err
	}
	return p.publisher.Publish(ctx, msg)
}

// DecodeCompletedEvent unwraps a consumed completion message.
func DecodeCompletedEvent(msg *Message) (analysis.CompletedEvent, error) {
	var ev analysis.CompletedEvent
	env, err := MessageToEventEnvelope(msg)
	if err != nil {
		return ev, err
	}
	if env.EventType != EventTypeAnalysisCompleted {
		return ev, errors.New(errors.ErrCodeValidation, "unexpected event type").WithDetail(env.EventType)
	}
	if err := env.DecodePayload(&ev); err != nil {
		return ev, err
	}
	if ev.RunID == "" {
		return ev, errors.New(errors.ErrCodeValidation, "event without run id").WithDetail("event_id=" + env.EventID)
	}
	return ev, nil
}

//Personal.AI order the ending
