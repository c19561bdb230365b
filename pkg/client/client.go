// Package client is a typed Go client for the Count Coins API. It is the data
// layer a frontend builds on: every endpoint is exposed as a method returning
// decoded envelope data, and derive.go adds pure view-model helpers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client talks to a Count Coins API server. The zero value is not usable; use New.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token used for authenticated requests.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the API at baseURL (e.g. "http://localhost:8080/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token, e.g. after login.
func (c *Client) SetToken(token string) { c.token = token }

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// envelope mirrors the server's response envelope.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Error      string          `json:"error"`
	Pagination *PageMeta       `json:"pagination"`
}

// PageMeta carries pagination metadata for list responses.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// User is an account as returned by the API.
type User struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
}

// AuthResult pairs a user with a bearer token.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Transaction is a single income or expense entry.
type Transaction struct {
	ID          uint      `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UserID      uint      `json:"userId"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// TransactionStats aggregates transactions by type and category.
type TransactionStats struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	Balance       float64 `json:"balance"`
	NeedsSpent    float64 `json:"needsSpent"`
	WantsSpent    float64 `json:"wantsSpent"`
	SavingsSpent  float64 `json:"savingsSpent"`
}

// Budget is a user's income allocation rule.
type Budget struct {
	ID      uint    `json:"id"`
	UserID  uint    `json:"userId"`
	Rule    string  `json:"rule"`
	Needs   float64 `json:"needs"`
	Wants   float64 `json:"wants"`
	Savings float64 `json:"savings"`
}

// BudgetSummary compares spending against income-derived targets.
type BudgetSummary struct {
	TotalIncome      float64 `json:"totalIncome"`
	TotalExpenses    float64 `json:"totalExpenses"`
	Balance          float64 `json:"balance"`
	NeedsSpent       float64 `json:"needsSpent"`
	WantsSpent       float64 `json:"wantsSpent"`
	SavingsSpent     float64 `json:"savingsSpent"`
	NeedsBudget      float64 `json:"needsBudget"`
	WantsBudget      float64 `json:"wantsBudget"`
	SavingsBudget    float64 `json:"savingsBudget"`
	NeedsRemaining   float64 `json:"needsRemaining"`
	WantsRemaining   float64 `json:"wantsRemaining"`
	SavingsRemaining float64 `json:"savingsRemaining"`
}

// Goal is a savings goal.
type Goal struct {
	ID            uint       `json:"id"`
	UserID        uint       `json:"userId"`
	Title         string     `json:"title"`
	TargetAmount  float64    `json:"targetAmount"`
	CurrentAmount float64    `json:"currentAmount"`
	Deadline      *time.Time `json:"deadline,omitempty"`
}

// GoalProgress aggregates completion across goals.
type GoalProgress struct {
	TotalGoals         int     `json:"totalGoals"`
	CompletedGoals     int     `json:"completedGoals"`
	TotalTargetAmount  float64 `json:"totalTargetAmount"`
	TotalCurrentAmount float64 `json:"totalCurrentAmount"`
	AverageProgress    float64 `json:"averageProgress"`
}

// TransactionListOptions filters and paginates transaction listings.
type TransactionListOptions struct {
	Page      int
	Limit     int
	Type      string
	Category  string
	StartDate string
	EndDate   string
}

func (o TransactionListOptions) query() string {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Type != "" {
		q.Set("type", o.Type)
	}
	if o.Category != "" {
		q.Set("category", o.Category)
	}
	if o.StartDate != "" {
		q.Set("startDate", o.StartDate)
	}
	if o.EndDate != "" {
		q.Set("endDate", o.EndDate)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// do performs a request and decodes the envelope. out may be nil when the
// caller only cares about success.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) (*PageMeta, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return env.Pagination, nil
}

// Signup registers an account and stores the returned token on the client.
func (c *Client) Signup(ctx context.Context, email, password, name string) (*AuthResult, error) {
	var result AuthResult
	_, err := c.do(ctx, http.MethodPost, "/auth/signup", map[string]string{
		"email": email, "password": password, "name": name,
	}, &result)
	if err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	_, err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email": email, "password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// ForgotPassword requests a password reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/forgot-password", map[string]string{"email": email}, nil)
	return err
}

// ResetPassword completes a password reset with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/reset-password", map[string]string{
		"token": token, "password": password,
	}, nil)
	return err
}

// Profile returns the authenticated user.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if _, err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes the email and/or password. Nil fields are unchanged.
func (c *Client) UpdateProfile(ctx context.Context, email, password *string) (*User, error) {
	body := map[string]interface{}{}
	if email != nil {
		body["email"] = *email
	}
	if password != nil {
		body["password"] = *password
	}
	var user User
	if _, err := c.do(ctx, http.MethodPut, "/auth/me", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteAccount removes the account and all owned data.
func (c *Client) DeleteAccount(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/auth/me", nil, nil)
	return err
}

// CreateTransactionInput is the payload for CreateTransaction.
type CreateTransactionInput struct {
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date,omitempty"`
}

// CreateTransaction records a transaction.
func (c *Client) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*Transaction, error) {
	var tx Transaction
	if _, err := c.do(ctx, http.MethodPost, "/transactions", input, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListTransactions returns a page of transactions with pagination metadata.
func (c *Client) ListTransactions(ctx context.Context, opts TransactionListOptions) ([]Transaction, *PageMeta, error) {
	var txs []Transaction
	meta, err := c.do(ctx, http.MethodGet, "/transactions"+opts.query(), nil, &txs)
	if err != nil {
		return nil, nil, err
	}
	return txs, meta, nil
}

// GetTransaction returns a transaction by ID.
func (c *Client) GetTransaction(ctx context.Context, id uint) (*Transaction, error) {
	var tx Transaction
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/transactions/%d", id), nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// UpdateTransaction applies a partial update; include only the fields to change.
func (c *Client) UpdateTransaction(ctx context.Context, id uint, fields map[string]interface{}) (*Transaction, error) {
	var tx Transaction
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/transactions/%d", id), fields, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id uint) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/transactions/%d", id), nil, nil)
	return err
}

// GetTransactionStats returns aggregate statistics.
func (c *Client) GetTransactionStats(ctx context.Context) (*TransactionStats, error) {
	var stats TransactionStats
	if _, err := c.do(ctx, http.MethodGet, "/transactions/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// BudgetInput is the payload for CreateBudget and UpdateBudget. The percentage
// fields are only needed for the custom rule.
type BudgetInput struct {
	Rule    string   `json:"rule"`
	Needs   *float64 `json:"needs,omitempty"`
	Wants   *float64 `json:"wants,omitempty"`
	Savings *float64 `json:"savings,omitempty"`
}

// CreateBudget stores the user's budget.
func (c *Client) CreateBudget(ctx context.Context, input BudgetInput) (*Budget, error) {
	var budget Budget
	if _, err := c.do(ctx, http.MethodPost, "/budget", input, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

// GetBudget returns the user's budget, or nil when none exists.
func (c *Client) GetBudget(ctx context.Context) (*Budget, error) {
	var budget Budget
	if _, err := c.do(ctx, http.MethodGet, "/budget", nil, &budget); err != nil {
		return nil, err
	}
	if budget.ID == 0 {
		return nil, nil
	}
	return &budget, nil
}

// UpdateBudget replaces the user's budget rule.
func (c *Client) UpdateBudget(ctx context.Context, input BudgetInput) (*Budget, error) {
	var budget Budget
	if _, err := c.do(ctx, http.MethodPut, "/budget", input, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

// DeleteBudget removes the user's budget.
func (c *Client) DeleteBudget(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/budget", nil, nil)
	return err
}

// GetBudgetSummary returns spending versus budget targets.
func (c *Client) GetBudgetSummary(ctx context.Context) (*BudgetSummary, error) {
	var summary BudgetSummary
	if _, err := c.do(ctx, http.MethodGet, "/budget/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// CreateGoalInput is the payload for CreateGoal.
type CreateGoalInput struct {
	Title         string   `json:"title"`
	TargetAmount  float64  `json:"targetAmount"`
	CurrentAmount *float64 `json:"currentAmount,omitempty"`
	Deadline      string   `json:"deadline,omitempty"`
}

// CreateGoal stores a savings goal.
func (c *Client) CreateGoal(ctx context.Context, input CreateGoalInput) (*Goal, error) {
	var goal Goal
	if _, err := c.do(ctx, http.MethodPost, "/goals", input, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// ListGoals returns all the user's goals.
func (c *Client) ListGoals(ctx context.Context) ([]Goal, error) {
	var goals []Goal
	if _, err := c.do(ctx, http.MethodGet, "/goals", nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// GetGoal returns a goal by ID.
func (c *Client) GetGoal(ctx context.Context, id uint) (*Goal, error) {
	var goal Goal
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/goals/%d", id), nil, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpdateGoal applies a partial update; include only the fields to change.
func (c *Client) UpdateGoal(ctx context.Context, id uint, fields map[string]interface{}) (*Goal, error) {
	var goal Goal
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/goals/%d", id), fields, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// DeleteGoal removes a goal.
func (c *Client) DeleteGoal(ctx context.Context, id uint) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/goals/%d", id), nil, nil)
	return err
}

// GetGoalProgress returns aggregate goal progress.
func (c *Client) GetGoalProgress(ctx context.Context) (*GoalProgress, error) {
	var progress GoalProgress
	if _, err := c.do(ctx, http.MethodGet, "/goals/progress", nil, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}
