package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cbr-rates-service/pkg/logger"
)

func TestProfilePost(t *testing.T) {
	var got event
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/history", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
	}))
	defer server.Close()

	p := NewProfile(server.URL, "client-1", 5*time.Second, logger.NewLogger("error"))
	p.post(event{ClientID: p.clientID, Event: "convert", Payload: "from=USD to=EUR"})

	assert.Equal(t, "client-1", got.ClientID)
	assert.Equal(t, "convert", got.Event)
	assert.Equal(t, "from=USD to=EUR", got.Payload)
}

func TestProfilePost_SinkDownIsSwallowed(t *testing.T) {
	p := NewProfile("http://127.0.0.1:0", "client-1", 100*time.Millisecond, logger.NewLogger("error"))

	// Must not panic or block beyond the client timeout.
	p.post(event{ClientID: "client-1", Event: "history"})
}

func TestNoop(t *testing.T) {
	Noop{}.RecordEvent(context.Background(), "convert", "payload")
}
