package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/usahaku/scoring-service/internal/middleware"
	"github.com/usahaku/scoring-service/internal/models"
)

const maxReceiptSize = 10 << 20 // 10 MiB

// HealthScore computes the composite business health score. The aux payload
// is optional; an empty body means all documented defaults. Unknown or
// mistyped fields fail the request instead of being coerced.
func (h *Handler) HealthScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, models.Validationf("user not authenticated"))
		return
	}

	var aux *models.AuxData
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var payload models.AuxData
	switch err := dec.Decode(&payload); {
	case err == nil:
		aux = &payload
	case errors.Is(err, io.EOF):
		// no body: all defaults
	default:
		h.respondError(w, models.Validationf("invalid aux payload: %v", err))
		return
	}

	result, err := h.svc.HealthScore(userID, aux)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// TaxEstimate computes the progressive tax estimate over an optional range
func (h *Handler) TaxEstimate(w http.ResponseWriter, r *http.Request) {
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

	estimate, err := h.svc.TaxEstimate(userID, start, end)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, estimate)
}

// FinancialHealth returns all-time income, expense and margin
func (h *Handler) FinancialHealth(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, models.Validationf("user not authenticated"))
		return
	}

	stats, err := h.svc.FinancialHealth(userID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, stats)
}

// ProcessReceipt extracts transactions from an uploaded receipt image
func (h *Handler) ProcessReceipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		h.respondError(w, models.Validationf("user not authenticated"))
		return
	}

	if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
		h.respondError(w, models.Validationf("invalid multipart form: %v", err))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		h.respondError(w, models.Validationf("image file is required"))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxReceiptSize))
	if err != nil {
		h.respondError(w, models.Validationf("failed to read image: %v", err))
		return
	}
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	saved, err := h.svc.ProcessReceipt(r.Context(), userID, image, mimeType)
	if err != nil {
		h.respondError(w, err)
		return
	}

	status := http.StatusOK
	message := "No valid transactions could be extracted from the image"
	if saved > 0 {
		status = http.StatusCreated
		message = "Transactions extracted and saved"
	}
	h.respondJSON(w, status, map[string]any{"message": message, "saved": saved})
}

// Classify maps a transaction description onto a bookkeeping category
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	category, err := h.svc.ClassifyDescription(r.Context(), req.Description)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"category": category})
}
