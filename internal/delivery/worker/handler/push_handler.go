// Package handler receives Pub/Sub push deliveries of order events.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/infra/pubsub"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// Environments in which push requests are trusted without a token.
var unverifiedEnvs = map[string]bool{"local": true, "develop": true, "test": true}

// PubSubMessage is the body of a Pub/Sub push request.
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// retryableError marks a failure that Pub/Sub should redeliver.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

func newRetryableError(err error) error {
	return &retryableError{err: err}
}

func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

type tokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// PushHandler records each pushed order event on the order's timeline.
type PushHandler struct {
	verifyPushAuth bool
	audience       string
	validate       tokenValidator
	activityUC     usecase.OrderActivityUsecase
	logger         *slog.Logger
}

type PushHandlerParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	ActivityUC usecase.OrderActivityUsecase
}

// NewPushHandler verifies Google-signed push tokens only when events come
// from Cloud Pub/Sub outside local environments.
func NewPushHandler(params PushHandlerParams) *PushHandler {
	cfg := params.Config.PubSub
	verify := cfg != nil &&
		cfg.Provider == pubsub.ProviderGoogle &&
		!unverifiedEnvs[params.Config.Env.Env]

	audience := ""
	if cfg != nil {
		audience = cfg.PushAudience
	}

	return &PushHandler{
		verifyPushAuth: verify,
		audience:       audience,
		validate:       idtoken.Validate,
		activityUC:     params.ActivityUC,
		logger:         params.Logger,
	}
}

// HandlePush answers 200 for handled or undeliverable messages and 503 when
// Pub/Sub should retry.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.OrderEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse order event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)
	event.RequestID = requestID

	reqLogger.Info("[Worker] Processing order event",
		slog.String("message_id", pushMsg.Message.MessageID),
		slog.String("type", event.Type),
		slog.String("order_id", event.OrderID),
	)

	if err := h.processEvent(ctx, pushMsg.Message.MessageID, &event); err != nil {
		reqLogger.Error("[Worker] Failed to process order event",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		// acknowledged so a malformed event is not redelivered forever
		return c.NoContent(http.StatusOK)
	}

	return c.NoContent(http.StatusOK)
}

// extractRequestID prefers the message attribute, then the event, then the
// X-Request-Id header, and finally mints a new one.
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.OrderEvent) string {
	if requestID := pushMsg.Message.Attributes["request_id"]; requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

func (h *PushHandler) processEvent(ctx context.Context, messageID string, event *service.OrderEvent) error {
	_, err := h.activityUC.Record(ctx, messageID, event)
	if err == nil {
		return nil
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() < http.StatusInternalServerError {
		return err
	}

	return newRetryableError(err)
}

// verifyPubSubToken checks the Google-signed OIDC token Pub/Sub attaches to
// authenticated push requests.
func (h *PushHandler) verifyPubSubToken(req *http.Request) error {
	token, found := strings.CutPrefix(req.Header.Get(echo.HeaderAuthorization), "Bearer ")
	if !found || token == "" {
		return errors.New("missing bearer token")
	}

	audience := h.audience
	if audience == "" {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http"
		}
		audience = fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
	}

	payload, err := h.validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
