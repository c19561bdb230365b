// Package integration exercises the full HTTP stack against an in-memory
// database: real router, middleware, handlers, and services.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"countcoins/internal/handlers"
	"countcoins/internal/middleware"
	"countcoins/internal/services"
	"countcoins/internal/testutil"
	"countcoins/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// recordingMailer captures the last reset token issued during a test.
type recordingMailer struct {
	lastToken string
}

func (m *recordingMailer) SendPasswordReset(to, resetToken string) error {
	m.lastToken = resetToken
	return nil
}

type testServer struct {
	router *gin.Engine
	mailer *recordingMailer
}

// newTestServer wires the full API router against a fresh test database.
// Rate limiting and request logging are left out so tests stay deterministic.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	m := &recordingMailer{}
	authService := services.NewAuthService(db, m)
	transactionService := services.NewTransactionService(db)
	budgetService := services.NewBudgetService(db)
	goalService := services.NewGoalService(db)

	authHandler := handlers.NewAuthHandler(authService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	goalHandler := handlers.NewGoalHandler(goalService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())

	me := protected.Group("/auth/me")
	me.GET("", authHandler.GetProfile)
	me.PUT("", authHandler.UpdateProfile)
	me.DELETE("", authHandler.DeleteAccount)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.Create)
	transactions.GET("", transactionHandler.List)
	transactions.GET("/stats", transactionHandler.Stats)
	transactions.GET("/:id", transactionHandler.Get)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	budget := protected.Group("/budget")
	budget.POST("", budgetHandler.Create)
	budget.GET("", budgetHandler.Get)
	budget.PUT("", budgetHandler.Update)
	budget.DELETE("", budgetHandler.Delete)
	budget.GET("/summary", budgetHandler.Summary)

	goals := protected.Group("/goals")
	goals.POST("", goalHandler.Create)
	goals.GET("", goalHandler.List)
	goals.GET("/progress", goalHandler.Progress)
	goals.GET("/:id", goalHandler.Get)
	goals.PUT("/:id", goalHandler.Update)
	goals.DELETE("/:id", goalHandler.Delete)

	return &testServer{router: router, mailer: m}
}

// request performs an HTTP request against the test server. An empty token
// sends no Authorization header.
func (s *testServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// envelope mirrors the JSON response envelope.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Error      string          `json:"error"`
	Pagination json.RawMessage `json:"pagination"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode envelope: %v (body: %s)", err, w.Body.String())
	}
	return env
}

// signup registers a user through the API and returns their bearer token.
func (s *testServer) signup(t *testing.T, email, password string) string {
	t.Helper()

	w := s.request(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup failed with status %d: %s", w.Code, w.Body.String())
	}

	env := decodeEnvelope(t, w)
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode signup data: %v", err)
	}
	if data.Token == "" {
		t.Fatal("signup returned no token")
	}
	return data.Token
}
