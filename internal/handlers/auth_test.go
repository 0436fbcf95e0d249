package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/parkspot/parkspot-backend/internal/handlers"
	"github.com/parkspot/parkspot-backend/internal/middleware"
)

func newAuthRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.POST("/api/auth/register", handlers.Register(db))
	router.POST("/api/auth/login", handlers.Login(db))
	router.GET("/api/auth/me", middleware.AuthMiddleware(), handlers.GetCurrentUser(db))
	return router
}

func TestRegisterLoginAndMe(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	router := newAuthRouter(db)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	require.Equal(t, 201, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "Registration successful", body["message"])
	require.NotEmpty(t, body["token"])

	user := body["user"].(map[string]interface{})
	require.Equal(t, "alice@example.com", user["email"])
	require.Equal(t, "alice", user["username"])
	require.Equal(t, false, user["isAdmin"])

	// Duplicate email is rejected
	w = doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	require.Equal(t, 400, w.Code)
	require.Equal(t, "Email already registered", decodeBody(t, w)["message"])

	// So is a taken username
	w = doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice",
		"email":    "alice2@example.com",
		"password": "hunter22",
	})
	require.Equal(t, 400, w.Code)
	require.Equal(t, "Username already taken", decodeBody(t, w)["message"])

	// Wrong password and unknown email share one message
	w = doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, 401, w.Code)
	require.Equal(t, "Invalid email or password", decodeBody(t, w)["message"])

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "hunter22",
	})
	require.Equal(t, 401, w.Code)
	require.Equal(t, "Invalid email or password", decodeBody(t, w)["message"])

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	require.Equal(t, 200, w.Code)
	token := decodeBody(t, w)["token"].(string)
	require.NotEmpty(t, token)

	// The issued token authenticates /auth/me
	req := newGetRequest("/api/auth/me")
	req.Header.Set("Authorization", "Bearer "+token)
	w = serve(router, req)
	require.Equal(t, 200, w.Code)
	me := decodeBody(t, w)["user"].(map[string]interface{})
	require.Equal(t, "alice@example.com", me["email"])

	// No token, no access
	w = serve(router, newGetRequest("/api/auth/me"))
	require.Equal(t, 401, w.Code)
}

func TestRegisterAdminAllowlist(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_EMAILS", "ops@example.com, boss@example.com")
	db := newTestDB(t)
	router := newAuthRouter(db)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
		"username": "ops",
		"email":    "Ops@Example.com",
		"password": "hunter22",
	})
	require.Equal(t, 201, w.Code)
	user := decodeBody(t, w)["user"].(map[string]interface{})
	require.Equal(t, true, user["isAdmin"])

	w = doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "hunter22",
	})
	require.Equal(t, 201, w.Code)
	user = decodeBody(t, w)["user"].(map[string]interface{})
	require.Equal(t, false, user["isAdmin"])
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	router := newAuthRouter(db)

	for _, body := range []gin.H{
		{"email": "alice@example.com", "password": "hunter22"},
		{"username": "alice", "password": "hunter22"},
		{"username": "alice", "email": "alice@example.com"},
		{"username": "alice", "email": "not-an-email", "password": "hunter22"},
		{"username": "alice", "email": "alice@example.com", "password": "short"},
	} {
		w := doJSON(t, router, http.MethodPost, "/api/auth/register", body)
		require.Equal(t, 400, w.Code)
		require.Equal(t, "Missing required fields", decodeBody(t, w)["message"])
	}
}
