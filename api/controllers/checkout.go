package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oskarlind/storefront-backend/api/middleware"
	"github.com/oskarlind/storefront-backend/api/responses"
	"github.com/oskarlind/storefront-backend/api/validators"
	"github.com/oskarlind/storefront-backend/internal/checkout"
	"github.com/oskarlind/storefront-backend/internal/orders"
	"github.com/oskarlind/storefront-backend/pkg/enums"
	pkgerrors "github.com/oskarlind/storefront-backend/pkg/errors"
	"github.com/oskarlind/storefront-backend/pkg/logger"
	"github.com/oskarlind/storefront-backend/pkg/types"
)

type placeOrderRequest struct {
	DeliveryMode string         `json:"delivery_mode" validate:"required"`
	Address      *types.Address `json:"address,omitempty"`
}

// PlaceOrder bounds each placement round-trip by timeout; an expired
// deadline surfaces as a retryable transaction failure.
func PlaceOrder(svc checkout.Service, logg *logger.Logger, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req placeOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mode, err := enums.ParseDeliveryMode(req.DeliveryMode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery mode"))
			return
		}

		customerID, err := uuid.Parse(middleware.CustomerIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required"))
			return
		}

		input := checkout.PlaceOrderInput{
			IdempotencyKey: strings.TrimSpace(r.Header.Get("Idempotency-Key")),
			DeliveryMode:   mode,
			Address:        req.Address,
		}

		sessionID := middleware.SessionIDFromContext(r.Context())

		ctx := r.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		order, err := svc.PlaceOrder(ctx, customerID, sessionID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, orders.ToView(order))
	}
}
