package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"condoadmin/internal/domain/session"
	"condoadmin/internal/domain/user"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, in user.Registration) (user.User, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (user.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(user.User), args.Error(1)
}

type MockSession struct {
	mock.Mock
}

func (m *MockSession) Create(ctx context.Context, userID, email string) (session.Token, error) {
	args := m.Called(ctx, userID, email)
	return args.Get(0).(session.Token), args.Error(1)
}

func (m *MockSession) Validate(ctx context.Context, token string) (session.Claims, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(session.Claims), args.Error(1)
}

func TestHandler_login(t *testing.T) {
	expires := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	ana := user.User{ID: "1", Name: "Ana", Email: "ana@condo.com", ProfileID: "2"}

	tests := []struct {
		name       string
		setup      func(u *MockUserService, s *MockSession)
		wantStatus int
	}{
		{
			name: "success",
			setup: func(u *MockUserService, s *MockSession) {
				u.On("Authenticate", mock.Anything, "ana@condo.com", "P@ssw0rd123!").Return(ana, nil)
				s.On("Create", mock.Anything, "1", "ana@condo.com").Return(session.Token{Value: "jwt", ExpiresAt: expires}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "invalid credentials",
			setup: func(u *MockUserService, _ *MockSession) {
				u.On("Authenticate", mock.Anything, "ana@condo.com", "P@ssw0rd123!").Return(user.User{}, user.ErrInvalidAuth)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "storage failure",
			setup: func(u *MockUserService, _ *MockSession) {
				u.On("Authenticate", mock.Anything, "ana@condo.com", "P@ssw0rd123!").Return(user.User{}, errors.New("disk gone"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "session failure",
			setup: func(u *MockUserService, s *MockSession) {
				u.On("Authenticate", mock.Anything, "ana@condo.com", "P@ssw0rd123!").Return(ana, nil)
				s.On("Create", mock.Anything, "1", "ana@condo.com").Return(session.Token{}, errors.New("sign"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, sessions := new(MockUserService), new(MockSession)
			tt.setup(users, sessions)

			_, api := humatest.New(t)
			NewHandler(users, sessions, slog.Default(), huma.Middlewares{}).SetupRoutes(api)

			resp := api.Post("/api/v1/auth/login", map[string]any{
				"email":    "ana@condo.com",
				"password": "P@ssw0rd123!",
			})
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())

			if tt.wantStatus == http.StatusOK {
				var body LoginResponse
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
				assert.Equal(t, "jwt", body.Token)
				assert.True(t, expires.Equal(body.ExpiresAt))
				assert.Equal(t, Profile{ID: "1", Name: "Ana", Email: "ana@condo.com", ProfileID: "2"}, body.User)
			}
			users.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestHandler_login_RejectsMalformedBody(t *testing.T) {
	users, sessions := new(MockUserService), new(MockSession)
	_, api := humatest.New(t)
	NewHandler(users, sessions, slog.Default(), huma.Middlewares{}).SetupRoutes(api)

	resp := api.Post("/api/v1/auth/login", map[string]any{"email": "ana@condo.com"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	users.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything, mock.Anything)
}
