package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

var posthogClient posthog.Client

// InitPosthog initializes the product analytics client. A missing API key
// disables capture without failing startup.
func InitPosthog(apiKey string) {
	if apiKey == "" {
		slog.Info("posthog api key not set, analytics disabled")
		return
	}

	client, err := posthog.NewWithConfig(apiKey, posthog.Config{
		Endpoint: "https://us.i.posthog.com",
	})
	if err != nil {
		slog.Error("failed to initialize posthog client", "error", err.Error())
		return
	}
	posthogClient = client
}

// CaptureEvent sends a product analytics event. No-op when analytics is
// disabled.
func CaptureEvent(distinctID, event string, properties map[string]any) {
	if posthogClient == nil {
		return
	}

	props := posthog.NewProperties()
	for k, v := range properties {
		props.Set(k, v)
	}

	err := posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: props,
	})
	if err != nil {
		slog.Warn("failed to enqueue posthog event", "event", event, "error", err.Error())
	}
}

// ClosePosthog flushes buffered events on shutdown.
func ClosePosthog() {
	if posthogClient != nil {
		_ = posthogClient.Close()
	}
}
