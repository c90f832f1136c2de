package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"

	"peersphere-backend/application/ports"
	"peersphere-backend/domain/core/valueobjects"
	"peersphere-backend/domain/events"
)

// eventSource identifies this service on the event bus
const eventSource = "peersphere.backend"

// Publisher implements ports.EventPublisher using AWS EventBridge
type Publisher struct {
	client       *eventbridge.Client
	eventBusName string
	logger       *zap.Logger
}

// NewPublisher creates a new EventBridge publisher
func NewPublisher(client *eventbridge.Client, eventBusName string, logger *zap.Logger) ports.EventPublisher {
	return &Publisher{
		client:       client,
		eventBusName: eventBusName,
		logger:       logger,
	}
}

// Publish sends a single event to EventBridge
func (p *Publisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return p.PublishBatch(ctx, []events.DomainEvent{event})
}

// PublishBatch sends multiple events to EventBridge
func (p *Publisher) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	if len(domainEvents) == 0 {
		return nil
	}

	// EventBridge limits to 10 events per PutEvents call
	const batchSize = 10

	for i := 0; i < len(domainEvents); i += batchSize {
		end := i + batchSize
		if end > len(domainEvents) {
			end = len(domainEvents)
		}

		if err := p.putEvents(ctx, domainEvents[i:end]); err != nil {
			return err
		}
	}

	return nil
}

// putEvents publishes a batch of events (max 10)
func (p *Publisher) putEvents(ctx context.Context, domainEvents []events.DomainEvent) error {
	entries := make([]types.PutEventsRequestEntry, 0, len(domainEvents))

	for _, event := range domainEvents {
		eventData, err := json.Marshal(event)
		if err != nil {
			p.logger.Error("Failed to marshal event",
				zap.Error(err),
				zap.String("eventType", event.GetEventType()),
			)
			continue
		}

		entries = append(entries, types.PutEventsRequestEntry{
			EventBusName: aws.String(p.eventBusName),
			Source:       aws.String(eventSource),
			DetailType:   aws.String(event.GetEventType()),
			Detail:       aws.String(string(eventData)),
			Time:         aws.Time(event.GetTimestamp()),
			Resources: []string{
				fmt.Sprintf("arn:aws:peersphere::%s", event.GetAggregateID()),
			},
		})
	}

	if len(entries) == 0 {
		return nil
	}

	result, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{Entries: entries})
	if err != nil {
		return fmt.Errorf("failed to publish events to EventBridge: %w", err)
	}

	if result.FailedEntryCount > 0 {
		for i, entry := range result.Entries {
			if entry.ErrorCode != nil {
				p.logger.Error("Failed to publish event",
					zap.String("eventType", domainEvents[i].GetEventType()),
					zap.String("errorCode", *entry.ErrorCode),
					zap.String("errorMessage", aws.ToString(entry.ErrorMessage)),
				)
			}
		}
		return fmt.Errorf("%d events failed to publish", result.FailedEntryCount)
	}

	p.logger.Debug("Events published to EventBridge",
		zap.Int("count", len(entries)),
		zap.String("eventBus", p.eventBusName),
	)

	return nil
}

// Notifier implements ports.Notifier by putting notification events on the
// bus; a downstream consumer fans them out to email or push channels.
type Notifier struct {
	client       *eventbridge.Client
	eventBusName string
	logger       *zap.Logger
}

// NewNotifier creates a new EventBridge-backed notifier
func NewNotifier(client *eventbridge.Client, eventBusName string, logger *zap.Logger) ports.Notifier {
	return &Notifier{
		client:       client,
		eventBusName: eventBusName,
		logger:       logger,
	}
}

// notificationDetail is the payload a notification entry carries
type notificationDetail struct {
	RecipientID string    `json:"recipient_id"`
	QuestionID  string    `json:"question_id"`
	AnswerID    string    `json:"answer_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// NotifyNewAnswer tells the question author a new answer arrived
func (n *Notifier) NotifyNewAnswer(ctx context.Context, questionAuthorID valueobjects.UserID, questionID valueobjects.QuestionID, answerID valueobjects.AnswerID) error {
	return n.put(ctx, "notification.new_answer", notificationDetail{
		RecipientID: questionAuthorID.String(),
		QuestionID:  questionID.String(),
		AnswerID:    answerID.String(),
		Timestamp:   time.Now().UTC(),
	})
}

// NotifyAnswerAccepted tells the answer author their answer was accepted
func (n *Notifier) NotifyAnswerAccepted(ctx context.Context, answerAuthorID valueobjects.UserID, questionID valueobjects.QuestionID, answerID valueobjects.AnswerID) error {
	return n.put(ctx, "notification.answer_accepted", notificationDetail{
		RecipientID: answerAuthorID.String(),
		QuestionID:  questionID.String(),
		AnswerID:    answerID.String(),
		Timestamp:   time.Now().UTC(),
	})
}

// notifyTimeout bounds a notification put so a slow EventBridge call
// cannot hold the request that triggered it open.
const notifyTimeout = 2 * time.Second

func (n *Notifier) put(ctx context.Context, detailType string, detail notificationDetail) error {
	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	data, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	input := &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{{
			EventBusName: aws.String(n.eventBusName),
			Source:       aws.String(eventSource),
			DetailType:   aws.String(detailType),
			Detail:       aws.String(string(data)),
			Time:         aws.Time(detail.Timestamp),
		}},
	}

	result, err := n.client.PutEvents(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	if result.FailedEntryCount > 0 {
		return fmt.Errorf("notification entry rejected by EventBridge")
	}

	n.logger.Debug("Notification published",
		zap.String("detailType", detailType),
		zap.String("recipientID", detail.RecipientID),
	)

	return nil
}
