package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bms/config"
	"bms/infras/jwt"
	jwtMocks "bms/infras/jwt/mocks"
	otelMocks "bms/infras/otel/mocks"
	"bms/permissions"
	"bms/shared/constant"
	"bms/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var testPermissions = &permissions.PermissionData{
	Endpoints: []permissions.Permission{
		{Path: "/v1/auth/login", Method: http.MethodPost, Skip: true},
		{Path: "/v1/rooms", Method: http.MethodGet},
		{Path: "/v1/rooms/{id}", Method: http.MethodDelete, Permissions: []string{constant.RoleAdmin, constant.RoleSuperAdmin}},
	},
}

// newRouter mounts the auth chain the way the server does and echoes the account id it sees.
func newRouter(t *testing.T, cfg *config.Config) (*jwtMocks.MockJWT, chi.Router) {
	t.Helper()

	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)

	authRole := middleware.NewAuthRoleMiddleware(jwtService, otelMocks.NewOtel(), testPermissions, cfg)

	ok := func(w http.ResponseWriter, r *http.Request) {
		user, _ := r.Context().Value(constant.ContextKeyUserID).(string)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(user))
	}

	router := chi.NewRouter()
	router.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)
	router.Route("/v1", func(r chi.Router) {
		r.Post("/auth/login", ok)
		r.Get("/rooms", ok)
		r.Delete("/rooms/{id}", ok)
	})

	return jwtService, router
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		headers   map[string]string
		setupMock func(jwtService *jwtMocks.MockJWT)
		wantCode  int
		wantBody  string
	}{
		{
			name:     "skipped route needs no token",
			method:   http.MethodPost,
			path:     "/v1/auth/login",
			wantCode: http.StatusOK,
		},
		{
			name:     "missing header",
			method:   http.MethodGet,
			path:     "/v1/rooms",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "not a bearer header",
			method:   http.MethodGet,
			path:     "/v1/rooms",
			headers:  map[string]string{constant.RequestHeaderAuthorization: "Basic abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "expired token",
			method:  http.MethodGet,
			path:    "/v1/rooms",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer expired"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken("expired", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
			wantBody: `{"error":"Token has expired"}`,
		},
		{
			name:    "any authenticated account may read",
			method:  http.MethodGet,
			path:    "/v1/rooms",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer token"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken("token", jwt.AccessToken).
					Return(&jwt.Claims{AccountID: "account-1", Email: "jane@example.com", Roles: []string{constant.RoleUser}}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "account-1",
		},
		{
			name:    "user cannot delete a room",
			method:  http.MethodDelete,
			path:    "/v1/rooms/room-1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer token"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken("token", jwt.AccessToken).
					Return(&jwt.Claims{AccountID: "account-1", Email: "jane@example.com", Roles: []string{constant.RoleUser}}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:    "admin can delete a room",
			method:  http.MethodDelete,
			path:    "/v1/rooms/room-1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer token"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken("token", jwt.AccessToken).
					Return(&jwt.Claims{AccountID: "account-2", Email: "boss@example.com", Roles: []string{constant.RoleAdmin}}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "account-2",
		},
		{
			name:     "internal key bypasses token checks",
			method:   http.MethodDelete,
			path:     "/v1/rooms/room-1",
			headers:  map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong internal key",
			method:   http.MethodGet,
			path:     "/v1/rooms",
			headers:  map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.App.APIKey = "internal-key"

			jwtService, router := newRouter(t, cfg)
			if tt.setupMock != nil {
				tt.setupMock(jwtService)
			}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody == "" {
				return
			}

			if rec.Header().Get(constant.RequestHeaderContentType) == constant.ContentTypeJSON {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			} else {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
