// Package notifications publishes domain lifecycle events as cloudevents.
package notifications

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/arca-digital/complaints-book-backend/pkg/instrumentation"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
)

const (
	EventSource     = "urn:arca:source:complaints-book:domains"
	eventTypePrefix = "digital.arca.complaints-book.domains."
)

var errUnknownEvent = errors.New("unknown notification event")

// DomainEvent is the payload of every domain notification.
type DomainEvent struct {
	TenantID int64  `json:"tenant_id"`
	Domain   string `json:"domain"`
	JobID    int64  `json:"job_id,omitempty"`
	Attempts int    `json:"attempts,omitempty"`
	Status   string `json:"status,omitempty"`
	Error    string `json:"error,omitempty"`
}

// SendResult reports what happened to a notification. Sending is best effort,
// callers log the result and carry on.
type SendResult struct {
	Sent    bool
	Skipped bool
	Err     error
}

//go:generate $GO_OUTPUT/mockery  --name Notifier --filename notifier_mock.go --inpackage
type Notifier interface {
	Notify(ctx context.Context, name EventName, event DomainEvent) SendResult
}

type cloudEventsNotifier struct {
	client  cloudevents.Client
	metrics *instrumentation.Metrics
}

// NewNotifier returns a notifier sending through client, or one that skips
// every event when client is nil.
func NewNotifier(client cloudevents.Client, metrics *instrumentation.Metrics) Notifier {
	if client == nil {
		return noopNotifier{}
	}
	return &cloudEventsNotifier{client: client, metrics: metrics}
}

func (n *cloudEventsNotifier) Notify(ctx context.Context, name EventName, data DomainEvent) SendResult {
	e, err := newEvent(name, data)
	if err != nil {
		n.metrics.RecordNotificationStatus(false)
		return SendResult{Err: err}
	}

	result := n.client.Send(cloudevents.WithEncodingStructured(ctx), e)
	if cloudevents.IsUndelivered(result) {
		n.metrics.RecordNotificationStatus(false)
		return SendResult{Err: result}
	}
	n.metrics.RecordNotificationStatus(true)
	return SendResult{Sent: true}
}

func newEvent(name EventName, data DomainEvent) (cloudevents.Event, error) {
	eventName := name.String()
	if eventName == "" {
		return cloudevents.Event{}, errUnknownEvent
	}
	e := cloudevents.NewEvent()
	e.SetSource(EventSource)
	e.SetID(uuid.NewString())
	e.SetType(eventTypePrefix + eventName)
	e.SetSubject(data.Domain)
	e.SetTime(time.Now())
	e.SetExtension("tenantid", strconv.FormatInt(data.TenantID, 10))
	if err := e.SetData(cloudevents.ApplicationJSON, data); err != nil {
		return cloudevents.Event{}, err
	}
	return e, nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(_ context.Context, _ EventName, _ DomainEvent) SendResult {
	return SendResult{Skipped: true}
}
