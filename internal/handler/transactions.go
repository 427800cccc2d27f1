package handler

import (
	"fmt"
	"net/http"

	"github.com/usahaku/scoring-service/internal/middleware"
	"github.com/usahaku/scoring-service/internal/models"
	"github.com/usahaku/scoring-service/internal/service"
)

// AddTransactions stores a batch of manually entered transactions
func (h *Handler) AddTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, models.Validationf("user not authenticated"))
		return
	}

	var req service.AddTransactionsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	saved, err := h.svc.AddTransactions(userID, req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]any{
		"message": fmt.Sprintf("%d transactions saved", saved),
		"saved":   saved,
	})
}

// ListTransactions returns the user's transactions with optional filters
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, models.Validationf("user not authenticated"))
		return
	}

	start, err := parseDateParam(r, "start_date")
	if err != nil {
		h.respondError(w, err)
		return
	}
	end, err := parseDateParam(r, "end_date")
	if err != nil {
		h.respondError(w, err)
		return
	}

	txs, err := h.svc.ListTransactions(userID, r.URL.Query().Get("type"), start, end)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	h.respondJSON(w, http.StatusOK, txs)
}

// Chart returns income/expense totals bucketed by resolution
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, models.Validationf("user not authenticated"))
		return
	}

	resolution := r.URL.Query().Get("resolution")
	if resolution == "" {
		resolution = "daily"
	}
	start, err := parseDateParam(r, "start_date")
	if err != nil {
		h.respondError(w, err)
		return
	}
	end, err := parseDateParam(r, "end_date")
	if err != nil {
		h.respondError(w, err)
		return
	}

	points, err := h.svc.Chart(userID, resolution, start, end)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if points == nil {
		points = []models.ChartPoint{}
	}
	h.respondJSON(w, http.StatusOK, points)
}

// TransactionReport streams the ranged ledger as a downloadable XML document
func (h *Handler) TransactionReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, models.Validationf("user not authenticated"))
		return
	}

	start, err := parseDateParam(r, "start_date")
	if err != nil {
		h.respondError(w, err)
		return
	}
	end, err := parseDateParam(r, "end_date")
	if err != nil {
		h.respondError(w, err)
		return
	}

	report, err := h.svc.TransactionReport(userID, start, end)
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", `attachment; filename="transaction_report.xml"`)
	w.WriteHeader(http.StatusOK)
	w.Write(report)
}
