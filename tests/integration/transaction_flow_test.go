package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

func TestTransactionFlow_CRUDAndStats(t *testing.T) {
	server := newTestServer(t)
	token := server.signup(t, "alice@example.com", "supersecret")

	// Create income and expenses.
	w := server.request(t, http.MethodPost, "/api/transactions", token, map[string]interface{}{
		"type": "income", "category": "needs", "amount": 1000, "description": "salary",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create income failed with %d: %s", w.Code, w.Body.String())
	}

	w = server.request(t, http.MethodPost, "/api/transactions", token, map[string]interface{}{
		"type": "expense", "category": "needs", "amount": 300, "description": "rent", "date": "2026-03-01",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create expense failed with %d: %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	var created struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("failed to decode created transaction: %v", err)
	}

	// Update it.
	w = server.request(t, http.MethodPut, fmt.Sprintf("/api/transactions/%d", created.ID), token, map[string]interface{}{
		"amount": 350,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update failed with %d: %s", w.Code, w.Body.String())
	}

	// Stats reflect the update.
	w = server.request(t, http.MethodGet, "/api/transactions/stats", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats failed with %d", w.Code)
	}
	env = decodeEnvelope(t, w)
	var stats struct {
		TotalIncome   float64 `json:"totalIncome"`
		TotalExpenses float64 `json:"totalExpenses"`
		Balance       float64 `json:"balance"`
		NeedsSpent    float64 `json:"needsSpent"`
	}
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	if stats.TotalIncome != 1000 || stats.TotalExpenses != 350 || stats.Balance != 650 || stats.NeedsSpent != 350 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	// Delete and verify 404 afterwards.
	w = server.request(t, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", created.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete failed with %d", w.Code)
	}
	w = server.request(t, http.MethodGet, fmt.Sprintf("/api/transactions/%d", created.ID), token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestTransactionFlow_PaginationAndFilters(t *testing.T) {
	server := newTestServer(t)
	token := server.signup(t, "bob@example.com", "supersecret")

	for i := 0; i < 15; i++ {
		w := server.request(t, http.MethodPost, "/api/transactions", token, map[string]interface{}{
			"type": "expense", "category": "wants", "amount": float64(i + 1),
			"date": fmt.Sprintf("2026-01-%02d", i+1),
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("seed %d failed with %d", i, w.Code)
		}
	}

	w := server.request(t, http.MethodGet, "/api/transactions?page=1&limit=10", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list failed with %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	var page []json.RawMessage
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("failed to decode page: %v", err)
	}
	if len(page) != 10 {
		t.Errorf("expected 10 items on first page, got %d", len(page))
	}
	var meta struct {
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
	}
	if err := json.Unmarshal(env.Pagination, &meta); err != nil {
		t.Fatalf("failed to decode pagination: %v", err)
	}
	if meta.Total != 15 || meta.TotalPages != 2 {
		t.Errorf("expected 15 over 2 pages, got %+v", meta)
	}

	// Date-range filter.
	w = server.request(t, http.MethodGet, "/api/transactions?startDate=2026-01-10&endDate=2026-01-12", token, nil)
	env = decodeEnvelope(t, w)
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("failed to decode filtered page: %v", err)
	}
	if len(page) != 3 {
		t.Errorf("expected 3 transactions in range, got %d", len(page))
	}
}

func TestTransactionFlow_TenantIsolation(t *testing.T) {
	server := newTestServer(t)
	ownerToken := server.signup(t, "owner@example.com", "supersecret")
	otherToken := server.signup(t, "other@example.com", "supersecret")

	w := server.request(t, http.MethodPost, "/api/transactions", ownerToken, map[string]interface{}{
		"type": "expense", "category": "needs", "amount": 50,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed with %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	var created struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("failed to decode transaction: %v", err)
	}

	// Another user's access is indistinguishable from a missing resource.
	w = server.request(t, http.MethodGet, fmt.Sprintf("/api/transactions/%d", created.ID), otherToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for foreign transaction, got %d", w.Code)
	}
	w = server.request(t, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", created.ID), otherToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for foreign delete, got %d", w.Code)
	}
}
