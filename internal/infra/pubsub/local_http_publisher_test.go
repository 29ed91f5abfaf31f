package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocalHTTPPublisher_PushesEnvelope(t *testing.T) {
	var got PushMessage
	var requestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, discardLogger())
	event := &service.OrderEvent{
		RequestID:   "req-1",
		Type:        service.EventOrderPlaced,
		OrderID:     "order-1",
		UserID:      "user-1",
		Status:      "pending",
		TotalAmount: "379000",
		Currency:    "UGX",
		OccurredAt:  time.Now().UTC(),
	}
	require.NoError(t, publisher.PublishOrderEvent(context.Background(), event))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "order-1", got.Message.OrderingKey)
	assert.Equal(t, service.EventOrderPlaced, got.Message.Attributes["type"])

	raw, err := base64.StdEncoding.DecodeString(got.Message.Data)
	require.NoError(t, err)
	var decoded service.OrderEvent
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "379000", decoded.TotalAmount)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewLocalHTTPPublisher(srv.URL, discardLogger()).
		PublishOrderEvent(context.Background(), &service.OrderEvent{Type: service.EventOrderStatusChanged})
	assert.Error(t, err)
}

func TestNewEventPublisher_SelectsProvider(t *testing.T) {
	lc := fxtest.NewLifecycle(t)

	noop, err := NewEventPublisher(PublisherParams{Lc: lc, Config: &config.Config{}, Logger: discardLogger()})
	require.NoError(t, err)
	assert.IsType(t, &noopPublisher{}, noop)
	assert.NoError(t, noop.PublishOrderEvent(context.Background(), &service.OrderEvent{}))

	local, err := NewEventPublisher(PublisherParams{
		Lc:     lc,
		Config: &config.Config{PubSub: &config.PubSubConfig{Provider: ProviderLocal, LocalEndpoint: "http://localhost:0"}},
		Logger: discardLogger(),
	})
	require.NoError(t, err)
	assert.IsType(t, &localHTTPPublisher{}, local)

	_, err = NewEventPublisher(PublisherParams{
		Lc:     lc,
		Config: &config.Config{PubSub: &config.PubSubConfig{Provider: ProviderLocal}},
		Logger: discardLogger(),
	})
	assert.Error(t, err)

	_, err = NewEventPublisher(PublisherParams{
		Lc:     lc,
		Config: &config.Config{PubSub: &config.PubSubConfig{Provider: "kafka"}},
		Logger: discardLogger(),
	})
	assert.Error(t, err)
}
