package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Traasa/SistemDekor-sub004/internal/activity"
	activityhandler "github.com/Traasa/SistemDekor-sub004/internal/activity/handler"
	"github.com/Traasa/SistemDekor-sub004/internal/auth"
	authhandler "github.com/Traasa/SistemDekor-sub004/internal/auth/handler"
	"github.com/Traasa/SistemDekor-sub004/internal/order"
	authmw "github.com/Traasa/SistemDekor-sub004/pkg/platform/middleware/auth"
	"github.com/Traasa/SistemDekor-sub004/pkg/platform/middleware/metadata"
	"github.com/Traasa/SistemDekor-sub004/pkg/platform/middleware/request"
)

// Deps bundles what the router needs. Keeping wiring in one place makes the
// middleware order visible: metadata and request ID first, then auth, then
// the activity interceptor inside the authenticated chain.
type Deps struct {
	AuthService   *auth.Service
	AuthHandler   *authhandler.Handler
	OrderHandler  *order.Handler
	ActivityStore activity.Store
	Interceptor   *activity.Interceptor
	Logger        *slog.Logger
}

// NewRouter assembles the full HTTP surface.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.RequestTime)
	r.Use(metadata.ClientMetadata)

	// Unaudited operational endpoints.
	r.Get("/healthz", handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	// Login authenticates mid-request: the actor slot lets the interceptor
	// record the login once the handler has established the identity.
	r.Group(func(r chi.Router) {
		r.Use(authmw.ActorSlot)
		r.Use(d.Interceptor.Middleware)
		d.AuthHandler.RegisterPublic(r)
	})

	// Everything else requires an authenticated actor.
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(validatorAdapter{d.AuthService}, revocationAdapter{d.AuthService}, d.Logger))
		r.Use(d.Interceptor.Middleware)

		d.AuthHandler.RegisterProtected(r)
		d.OrderHandler.Register(r)
		activityhandler.New(d.ActivityStore, d.Logger).Register(r)
	})

	return r
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// validatorAdapter bridges the auth service to the middleware's claim shape.
type validatorAdapter struct {
	service *auth.Service
}

func (a validatorAdapter) ValidateToken(tokenString string) (*authmw.JWTClaims, error) {
	claims, err := a.service.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &authmw.JWTClaims{
		ActorID: claims.UserID,
		Name:    claims.Name,
		JTI:     claims.ID,
	}, nil
}

// revocationAdapter exposes the auth service's revocation list to the
// middleware.
type revocationAdapter struct {
	service *auth.Service
}

func (a revocationAdapter) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	return a.service.IsTokenRevoked(ctx, jti)
}
