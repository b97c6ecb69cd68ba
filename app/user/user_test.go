package user

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskhub/collab-api/config"
	"taskhub/collab-api/internal"
	"taskhub/collab-api/internal/model"
	"taskhub/collab-api/internal/service"
	"taskhub/collab-api/pkg/middleware"
	"taskhub/collab-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestEnv(t *testing.T) (*gin.Engine, *internal.Deps) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbc, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())))
	require.NoError(t, err)
	require.NoError(t, dbc.AutoMigrate(
		model.User{},
		model.UserProfile{},
		model.VerificationCode{},
		model.BlacklistedToken{},
	))

	cfg := &config.Config{
		JWTSecret:  "test-secret",
		AccessTTL:  time.Minute * 30,
		RefreshTTL: time.Hour,
	}

	d := &internal.Deps{
		Cfg:    cfg,
		DB:     dbc,
		Argon:  security.NewArgon(),
		Tokens: security.NewTokenIssuer(cfg, dbc),
		Mail:   service.NewDispatcher(cfg),
	}

	r := gin.New()
	r.Use(middleware.NewRequestIDMiddleware())

	jwt := middleware.NewJWTMiddleware(dbc, d.Tokens)

	u := r.Group("/api/users")
	u.POST("", func(c *gin.Context) { UserRegister(c, d) })
	u.POST("/login", func(c *gin.Context) { UserLogin(c, d) })
	u.POST("/verify", func(c *gin.Context) { UserVerify(c, d) })
	u.POST("/token/refresh", func(c *gin.Context) { UserTokenRefresh(c, d) })
	u.POST("/logout", jwt, func(c *gin.Context) { UserLogout(c, d) })
	u.POST("/change-password", jwt, func(c *gin.Context) { UserChangePassword(c, d) })
	u.GET("/me", jwt, func(c *gin.Context) { UserFetch(c, d) })
	u.GET("/profile", jwt, func(c *gin.Context) { ProfileFetch(c, d) })
	u.PUT("/profile", jwt, func(c *gin.Context) { ProfileUpdate(c, d) })
	u.GET("", jwt, func(c *gin.Context) { UserList(c, d) })
	u.GET("/:id", jwt, func(c *gin.Context) { UserDetails(c, d) })

	return r, d
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}

	return w, resp
}

func registerBodyFor(email, username string) gin.H {
	return gin.H{
		"email":            email,
		"username":         username,
		"password":         "Abc12345",
		"password_confirm": "Abc12345",
		"first_name":       "Ada",
		"last_name":        "Lovelace",
	}
}

// registerAndVerify walks a user through the whole funnel and returns
// the verified user's token pair from a fresh login
func registerAndVerify(t *testing.T, r *gin.Engine, d *internal.Deps, email, username string) *security.TokenPair {
	t.Helper()

	w, _ := doJSON(t, r, http.MethodPost, "/api/users", registerBodyFor(email, username), "")
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{
		"email":    email,
		"password": "Abc12345",
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var user model.User
	require.NoError(t, d.DB.Where("email = ?", email).First(&user).Error)

	var code model.VerificationCode
	require.NoError(t, d.DB.Where("user_id = ?", user.ID).First(&code).Error)

	w, _ = doJSON(t, r, http.MethodPost, "/api/users/verify", gin.H{
		"email": email,
		"code":  code.Code,
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{
		"email":    email,
		"password": "Abc12345",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	tokens := resp["tokens"].(map[string]any)

	return &security.TokenPair{
		Access:  tokens["access"].(string),
		Refresh: tokens["refresh"].(string),
	}
}
