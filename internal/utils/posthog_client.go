package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// Analytics event names sent for ledger activity.
const (
	EventTransactionCreated = "transaction_created"
	EventTransactionDeleted = "transaction_deleted"
	EventAdmissionRejected  = "admission_rejected"
	EventGoalContribution   = "goal_contribution"
	EventAPIRequest         = "api_request"
)

// PosthogClientWrapper wraps posthog.Client so callers need not care whether analytics is configured.
// A zero wrapper drops every event.
type PosthogClientWrapper struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// InitializePosthogClient builds the wrapper. An empty apiKey yields a no-op wrapper.
func InitializePosthogClient(apiKey, endpoint string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, analytics events will be dropped")
		return &PosthogClientWrapper{logger: logger}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize posthog client", slog.String("error", err.Error()))
		return &PosthogClientWrapper{logger: logger}
	}
	logger.Info("Posthog client initialized", slog.String("endpoint", endpoint))
	return &PosthogClientWrapper{posthogClient: client, logger: logger}
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w != nil && w.posthogClient != nil
}

// Enqueue queues an event for the given user. Failures are logged, never returned.
func (w *PosthogClientWrapper) Enqueue(distinctID string, event string, properties map[string]any) {
	if !w.IsInitialized() {
		return
	}
	props := posthog.NewProperties()
	for k, v := range properties {
		props.Set(k, v)
	}
	err := w.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: props,
	})
	if err != nil && w.logger != nil {
		w.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes pending events.
func (w *PosthogClientWrapper) Close() {
	if !w.IsInitialized() {
		return
	}
	if err := w.posthogClient.Close(); err != nil && w.logger != nil {
		w.logger.Warn("Failed to flush analytics events", slog.String("error", err.Error()))
	}
}
