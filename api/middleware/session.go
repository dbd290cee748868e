package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/oskarlind/storefront-backend/api/responses"
	pkgerrors "github.com/oskarlind/storefront-backend/pkg/errors"
	"github.com/oskarlind/storefront-backend/pkg/logger"
)

const (
	sessionHeader    = "X-Session-Id"
	sessionCookie    = "sf_session"
	customerHeader   = "X-Customer-Id"
	sessionCookieAge = 30 * 24 * 60 * 60
)

// Session resolves the browsing-session identifier, minting one for
// first-time visitors. The cart is keyed on this value, so it must be
// stable across requests from the same browser.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(sessionHeader)
			if sessionID == "" {
				if cookie, err := r.Cookie(sessionCookie); err == nil {
					sessionID = cookie.Value
				}
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookie,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   sessionCookieAge,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			w.Header().Set(sessionHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireCustomer extracts the authenticated customer identifier set by
// the edge gateway. Placement and order reads refuse anonymous traffic.
func RequireCustomer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(customerHeader)
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "customer id header required"))
				return
			}
			if _, err := uuid.Parse(raw); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "customer id must be a uuid"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCustomerID(r.Context(), raw)))
		})
	}
}
