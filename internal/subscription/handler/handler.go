package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"certhub/internal/subscription/models"
	dErrors "certhub/pkg/domain-errors"
	"certhub/pkg/platform/httputil"
	"certhub/pkg/platform/middleware/admin"
	"certhub/pkg/requestcontext"
)

// Service defines the subscription operations exposed over HTTP.
type Service interface {
	CreateSubscription(ctx context.Context, userID, certificationID int64, subType models.Type, autoRenew bool) (*models.Subscription, error)
	GetSubscription(ctx context.Context, id models.SubscriptionID) (*models.Subscription, error)
	PauseSubscription(ctx context.Context, id models.SubscriptionID) (*models.Subscription, error)
	CancelSubscription(ctx context.Context, id models.SubscriptionID) (*models.Subscription, error)
	ActivateSubscription(ctx context.Context, id models.SubscriptionID) (*models.Subscription, error)
	RenewSubscriptions(ctx context.Context, at time.Time) error
}

// Handler wires subscription endpoints to the service.
type Handler struct {
	service    Service
	logger     *slog.Logger
	adminToken string
}

// New constructs the handler. The renewal sweep endpoint requires adminToken
// in the X-Admin-Token header and is closed when adminToken is empty.
func New(service Service, logger *slog.Logger, adminToken string) *Handler {
	return &Handler{
		service:    service,
		logger:     logger,
		adminToken: adminToken,
	}
}

// Register mounts subscription endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/subscriptions", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.With(admin.RequireAdminToken(h.adminToken, h.logger)).Post("/renew", h.HandleRenew)
		r.Get("/{id}", h.HandleGet)
		r.Post("/{id}/pause", h.HandlePause)
		r.Post("/{id}/cancel", h.HandleCancel)
		r.Post("/{id}/activate", h.HandleActivate)
	})
}

// HandleCreate handles POST /subscriptions.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateSubscriptionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	sub, err := h.service.CreateSubscription(ctx, req.UserID, req.CertificationID, req.ParsedType(), req.ParsedAutoRenew())
	if err != nil {
		h.fail(ctx, w, "failed to create subscription", err,
			"user_id", req.UserID,
			"certification_id", req.CertificationID,
		)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromSubscription(sub))
}

// HandleGet handles GET /subscriptions/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.withSubscription(w, r, "failed to get subscription", h.service.GetSubscription)
}

// HandlePause handles POST /subscriptions/{id}/pause.
func (h *Handler) HandlePause(w http.ResponseWriter, r *http.Request) {
	h.withSubscription(w, r, "failed to pause subscription", h.service.PauseSubscription)
}

// HandleCancel handles POST /subscriptions/{id}/cancel.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.withSubscription(w, r, "failed to cancel subscription", h.service.CancelSubscription)
}

// HandleActivate handles POST /subscriptions/{id}/activate.
func (h *Handler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	h.withSubscription(w, r, "failed to activate subscription", h.service.ActivateSubscription)
}

// HandleRenew handles POST /subscriptions/renew. Without a reference_time the
// sweep runs at the request time.
func (h *Handler) HandleRenew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[RenewRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	at := req.ParsedTime(requestcontext.Now(ctx))

	if err := h.service.RenewSubscriptions(ctx, at); err != nil {
		h.fail(ctx, w, "subscription sweep failed", err, "reference_time", at)
		return
	}

	h.logger.InfoContext(ctx, "subscription sweep requested",
		"request_id", requestID,
		"reference_time", at,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, RenewResponse{
		Message:       "subscriptions renewed",
		ReferenceTime: at.UTC(),
	})
}

func (h *Handler) withSubscription(
	w http.ResponseWriter,
	r *http.Request,
	failure string,
	apply func(context.Context, models.SubscriptionID) (*models.Subscription, error),
) {
	ctx := r.Context()
	raw, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sub, err := apply(ctx, models.SubscriptionID(raw))
	if err != nil {
		h.fail(ctx, w, failure, err, "subscription_id", raw)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSubscription(sub))
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, attrs ...any) {
	attrs = append(attrs, "request_id", requestcontext.RequestID(ctx), "error", err)
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}
