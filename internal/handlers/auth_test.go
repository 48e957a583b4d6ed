package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard-api/internal/constants"
	"github.com/taskboard/taskboard-api/internal/database"
	"github.com/taskboard/taskboard-api/internal/dto"
	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	database.SetDB(db)

	authService := services.NewAuthService(repository.NewUserRepository(db))
	handler := NewAuthHandler(authService)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/signup", handler.Signup)
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/logout", handler.Logout)
	r.GET("/api/auth/me", handler.GetCurrentUser)
	r.POST("/api/users", middleware.RequireAuth(), handler.SaveUser)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		router:      r,
		authService: authService,
	}
}

func jsonRequest(t *testing.T, method, url string, payload any, cookies []*http.Cookie) *http.Request {
	t.Helper()

	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)

	req := jsonRequest(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username":     "newuser",
		"password":     "supersecret",
		"display_name": "New User",
	}, nil)
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "newuser", response.Username)
	require.Equal(t, "New User", response.DisplayName)
}

func TestAuthHandler_LoginAndMe(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Signup(services.SignupInput{
		Username: "existing",
		Password: "supersecret",
	})
	require.NoError(t, err)

	// Anonymous: me resolves to a null user, not an error
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, jsonRequest(t, http.MethodGet, "/api/auth/me", nil, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var anon map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &anon))
	require.Nil(t, anon["user"])

	// Login establishes the session
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "existing",
		"password": "supersecret",
	}, nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// Authenticated: me resolves the principal
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, jsonRequest(t, http.MethodGet, "/api/auth/me", nil, cookies))
	require.Equal(t, http.StatusOK, w.Code)

	var me struct {
		User *dto.UserDTO `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.NotNil(t, me.User)
	require.Equal(t, "existing", me.User.Username)
}

func TestAuthHandler_LoginRejectsBadCredentials(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Signup(services.SignupInput{
		Username: "existing",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "existing",
		"password": "wrong-password",
	}, nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_SaveUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Signup(services.SignupInput{
		Username: "existing",
		Password: "supersecret",
	})
	require.NoError(t, err)

	// Without a session the profile save is rejected
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/users", map[string]string{
		"display_name": "Someone",
	}, nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "existing",
		"password": "supersecret",
	}, nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	// Repeated saves return the same record with claims applied
	for i := 0; i < 2; i++ {
		w = httptest.NewRecorder()
		env.router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/users", map[string]string{
			"display_name": "Existing E.",
		}, cookies))
		require.Equal(t, http.StatusOK, w.Code)

		var response dto.UserDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Equal(t, "Existing E.", response.DisplayName)
	}

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	require.Equal(t, int64(1), count)
}
