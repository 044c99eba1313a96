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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/medicheck/medicheck-api/internal/constants"
	"github.com/medicheck/medicheck-api/internal/dto"
	"github.com/medicheck/medicheck-api/internal/middleware"
	"github.com/medicheck/medicheck-api/internal/models"
	"github.com/medicheck/medicheck-api/internal/repository"
	"github.com/medicheck/medicheck-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

// setupAuthTestEnv builds a full router with session middleware so the
// auth flow (cookie issued on login, checked by RequireAuth) runs
// end to end.
func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Disease{},
		&models.Tag{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	diseaseRepo := repository.NewDiseaseRepository(db)
	tagRepo := repository.NewTagRepository(db)

	authHandler := NewAuthHandler(services.NewAuthService(userRepo))
	diseaseHandler := NewDiseaseHandler(services.NewDiseaseService(diseaseRepo), nil)
	tagHandler := NewTagHandler(services.NewTagService(tagRepo))

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	api := r.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)

	diseases := api.Group("/diseases")
	diseases.Use(middleware.RequireAuth())
	diseases.GET("", diseaseHandler.ListDiseases)
	diseases.POST("", diseaseHandler.CreateDisease)
	diseases.GET("/:id", diseaseHandler.GetDisease)
	diseases.PATCH("/:id", diseaseHandler.UpdateDisease)
	diseases.DELETE("/:id", diseaseHandler.DeleteDisease)

	tags := api.Group("/tags")
	tags.Use(middleware.RequireAuth())
	tags.GET("", tagHandler.ListTags)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:     db,
		router: r,
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, payload any, cookies []*http.Cookie) *httptest.ResponseRecorder {
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

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "A@Example.com",
		"name":     "Test User",
		"password": "supersecret",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "a@example.com", resp.Email)
	assert.Equal(t, "Test User", resp.Name)

	var user models.User
	require.NoError(t, env.db.First(&user).Error)
	assert.Equal(t, "a@example.com", user.Email)
	assert.NotEqual(t, "supersecret", user.PasswordHash)
	assert.True(t, user.IsActive)
}

func TestAuthHandler_Signup_ShortPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "a@example.com",
		"password": "short",
	}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	details := resp["details"].(map[string]interface{})
	assert.Contains(t, details, "password")
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	payload := map[string]string{
		"email":    "a@example.com",
		"password": "supersecret",
	}

	w := doJSON(t, env.router, http.MethodPost, "/api/auth/signup", payload, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, env.router, http.MethodPost, "/api/auth/signup", payload, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_LoginAndMe(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "a@example.com",
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, env.router, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "a@example.com",
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = doJSON(t, env.router, http.MethodGet, "/api/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "a@example.com", resp.Email)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "a@example.com",
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, env.router, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "a@example.com",
		"password": "wrongpassword",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestRequireAuth_Unauthenticated verifies every protected endpoint
// rejects sessionless requests before any resource lookup.
func TestRequireAuth_Unauthenticated(t *testing.T) {
	env := setupAuthTestEnv(t)

	requests := []struct {
		method string
		url    string
	}{
		{http.MethodGet, "/api/diseases"},
		{http.MethodPost, "/api/diseases"},
		{http.MethodGet, "/api/diseases/1"},
		{http.MethodPatch, "/api/diseases/1"},
		{http.MethodDelete, "/api/diseases/1"},
		{http.MethodGet, "/api/tags"},
		{http.MethodGet, "/api/auth/me"},
	}

	for _, r := range requests {
		w := doJSON(t, env.router, r.method, r.url, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", r.method, r.url)
	}
}

// TestAuthenticatedCreateFlow verifies the session identity becomes the
// owner of created rows.
func TestAuthenticatedCreateFlow(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "a@example.com",
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, env.router, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "a@example.com",
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	w = doJSON(t, env.router, http.MethodPost, "/api/diseases", map[string]interface{}{
		"name": "Malaria",
		"tags": []map[string]string{{"name": "Viral"}},
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	tags := resp["tags"].([]interface{})
	require.Len(t, tags, 1)
	assert.Equal(t, "Viral", tags[0].(map[string]interface{})["name"])

	var user models.User
	require.NoError(t, env.db.First(&user).Error)

	var disease models.Disease
	require.NoError(t, env.db.First(&disease).Error)
	require.NotNil(t, disease.UserID)
	assert.Equal(t, user.ID, *disease.UserID)
}
