package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"bms/config"
	"bms/infras/jwt"
	"bms/infras/otel"
	"bms/permissions"
	"bms/shared/constant"
	"bms/shared/failure"
	"bms/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type SkipAuthKey string

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// routePattern resolves the registered chi pattern for the request, e.g. /v1/rooms/{id}.
func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	pattern := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
	if pattern == "" {
		return request.URL.Path
	}

	return pattern
}

func (m *authRoleImpl) skipped(request *http.Request) bool {
	if skip, _ := request.Context().Value(SkipAuthKey("skip")).(bool); skip {
		return true
	}

	if m.permission == nil {
		return false
	}

	return m.permission.Skip || m.permission.FindPermissions(routePattern(request), request.Method).Skip
}

// Auth validates the bearer access token and stores its claims in the request context.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		if m.skipped(request) {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       routePattern(request),
			"http.method":     request.Method,
		})

		reject := func(message string) {
			err := failure.Unauthorized(message)
			scope.TraceError(err)
			scope.End()

			response.WithError(writer, err)
		}

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			reject("Missing authorization header")

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			reject("Invalid authorization header format")

			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString, jwt.AccessToken)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrExpiredToken):
				reject("Token has expired")
			case errors.Is(err, jwt.ErrInvalidClaim):
				reject("Invalid token claims")
			default:
				reject("Invalid token")
			}

			return
		}

		if claims.AccountID == "" || claims.Email == "" {
			log.Error().Str("token_id", claims.TokenID).Msg("jwt claims missing account id or email")
			reject("Invalid token claims")

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.AccountID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRoles, claims.Roles)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC checks that the authenticated account holds one of the roles listed for the route.
// A route with no listed roles is open to any authenticated account.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")

		if m.skipped(request) {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		permission := m.permission.FindPermissions(routePattern(request), request.Method)
		roles, _ := request.Context().Value(constant.ContextKeyUserRoles).([]string)
		claims := jwt.Claims{Roles: roles}

		if len(permission.Permissions) > 0 && !claims.HasAnyRole(permission.Permissions...) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_roles":    strings.Join(roles, ","),
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// APIKey lets internal callers presenting the configured key bypass token checks.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)
		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == "" || apiKey != m.cfg.App.APIKey {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.End()

			response.WithError(writer, err)

			return
		}

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), true)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
