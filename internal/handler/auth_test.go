package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	internal_errors "github.com/borda-dev/borda/internal/errors"

	"github.com/borda-dev/borda/internal/domain"
	"github.com/borda-dev/borda/internal/events"
	"github.com/borda-dev/borda/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	MockLogin       func(username, password string) (domain.User, string, error)
	MockSignup      func(creds service.SignupCredentials) (domain.User, string, error)
	MockGoogleLogin func(idToken string) (domain.User, string, error)
}

func (m *MockAuthService) Login(username, password string) (domain.User, string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(username, password)
	}
	return domain.User{Id: "u1", Username: username}, "a-token", nil
}

func (m *MockAuthService) Signup(creds service.SignupCredentials) (domain.User, string, error) {
	if m.MockSignup != nil {
		return m.MockSignup(creds)
	}
	return domain.User{Id: "u1", Username: creds.Username}, "a-token", nil
}

func (m *MockAuthService) GoogleLogin(idToken string) (domain.User, string, error) {
	if m.MockGoogleLogin != nil {
		return m.MockGoogleLogin(idToken)
	}
	return domain.User{Id: "u1"}, "a-token", nil
}

func authRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/signup", h.Signup)
		r.Post("/google", h.GoogleLogin)
		r.Post("/logout", h.Logout)
	})
	return r
}

func loginCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == "loginToken" {
			return c
		}
	}
	return nil
}

func TestLoginHandler(t *testing.T) {
	h := New(&MockAuthService{}, nil, nil, events.NewHub(), testConfig())
	router := authRouter(h)

	t.Run("sets the login cookie on success", func(t *testing.T) {
		h.auth = &MockAuthService{}
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"username":"u1","password":"p1"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		cookie := loginCookie(t, rr)
		require.NotNil(t, cookie)
		assert.Equal(t, "a-token", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.Positive(t, cookie.MaxAge)
	})

	t.Run("bad credentials map to 401, no cookie", func(t *testing.T) {
		h.auth = &MockAuthService{
			MockLogin: func(username, password string) (domain.User, string, error) {
				return domain.User{}, "", internal_errors.Unauthorized("Invalid username or password")
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"username":"u1","password":"wrong"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Nil(t, loginCookie(t, rr))
	})

	t.Run("missing password fails validation", func(t *testing.T) {
		h.auth = &MockAuthService{}
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"username":"u1"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("response never leaks the password hash", func(t *testing.T) {
		h.auth = &MockAuthService{
			MockLogin: func(username, password string) (domain.User, string, error) {
				return domain.User{Id: "u1", Username: username, PassHash: "secret-hash"}, "a-token", nil
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"username":"u1","password":"p1"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "secret-hash")
	})
}

func TestSignupHandler(t *testing.T) {
	h := New(&MockAuthService{}, nil, nil, events.NewHub(), testConfig())
	router := authRouter(h)

	t.Run("passes the full credential set through", func(t *testing.T) {
		var got service.SignupCredentials
		h.auth = &MockAuthService{
			MockSignup: func(creds service.SignupCredentials) (domain.User, string, error) {
				got = creds
				return domain.User{Id: "u1"}, "a-token", nil
			},
		}
		body := `{"username":"u1","password":"p1","fullname":"User One","imgUrl":"http://img"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "u1", got.Username)
		assert.Equal(t, "User One", got.FullName)
		assert.Equal(t, "http://img", got.ImgUrl)
		assert.NotNil(t, loginCookie(t, rr))
	})

	t.Run("taken username maps to 409", func(t *testing.T) {
		h.auth = &MockAuthService{
			MockSignup: func(creds service.SignupCredentials) (domain.User, string, error) {
				return domain.User{}, "", internal_errors.Conflict("Username already taken")
			},
		}
		body := `{"username":"u1","password":"p1","fullname":"User One"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("missing fullname fails validation before the service", func(t *testing.T) {
		h.auth = &MockAuthService{
			MockSignup: func(creds service.SignupCredentials) (domain.User, string, error) {
				t.Fatal("signup must not reach the service")
				return domain.User{}, "", nil
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString(`{"username":"u1","password":"p1"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestGoogleLoginHandler(t *testing.T) {
	h := New(&MockAuthService{}, nil, nil, events.NewHub(), testConfig())
	router := authRouter(h)

	t.Run("valid token logs in", func(t *testing.T) {
		var gotToken string
		h.auth = &MockAuthService{
			MockGoogleLogin: func(idToken string) (domain.User, string, error) {
				gotToken = idToken
				return domain.User{Id: "u1"}, "a-token", nil
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/api/auth/google", bytes.NewBufferString(`{"token":"id-token"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "id-token", gotToken)
		assert.NotNil(t, loginCookie(t, rr))
	})

	t.Run("unconfigured google login maps to 400", func(t *testing.T) {
		h.auth = &MockAuthService{
			MockGoogleLogin: func(idToken string) (domain.User, string, error) {
				return domain.User{}, "", internal_errors.BadRequest("Google login is not configured")
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/api/auth/google", bytes.NewBufferString(`{"token":"id-token"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLogoutHandler(t *testing.T) {
	h := New(&MockAuthService{}, nil, nil, events.NewHub(), testConfig())
	router := authRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	cookie := loginCookie(t, rr)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
