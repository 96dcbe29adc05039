package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"cbr-rates-service/pkg/logger"
)

type event struct {
	ClientID string `json:"client_id"`
	Event    string `json:"event"`
	Payload  string `json:"payload,omitempty"`
}

// Profile posts usage events to the profile-service history endpoint.
// Delivery is fire-and-forget: the POST runs on its own goroutine with its
// own deadline, detached from the request context, and failures are only
// debug-logged. A notification must never affect the primary response.
type Profile struct {
	historyURL string
	clientID   string
	httpClient *http.Client
	log        *logger.Logger
}

func NewProfile(baseURL, clientID string, timeout time.Duration, log *logger.Logger) *Profile {
	return &Profile{
		historyURL: baseURL + "/history",
		clientID:   clientID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

func (p *Profile) RecordEvent(_ context.Context, eventName, payload string) {
	go p.post(event{ClientID: p.clientID, Event: eventName, Payload: payload})
}

func (p *Profile) post(ev event) {
	body, err := json.Marshal(ev)
	if err != nil {
		p.log.Debug("Failed to encode event", "error", err, "event", ev.Event)
		return
	}

	req, err := http.NewRequest(http.MethodPost, p.historyURL, bytes.NewReader(body))
	if err != nil {
		p.log.Debug("Failed to build event request", "error", err, "event", ev.Event)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.Debug("Failed to deliver event", "error", err, "event", ev.Event)
		return
	}
	resp.Body.Close()
}

// Noop is the recorder used when no profile URL is configured.
type Noop struct{}

func (Noop) RecordEvent(context.Context, string, string) {}
