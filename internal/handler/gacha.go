package handler

import (
	"net/http"
	"strconv"

	"github.com/pondside/AnglerBot_Go/internal/gacha"
	"github.com/pondside/AnglerBot_Go/internal/logger"
)

type GachaHandler struct {
	service gacha.Service
}

func NewGachaHandler(service gacha.Service) *GachaHandler {
	return &GachaHandler{service: service}
}

type DrawRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	PoolID int    `json:"pool_id" validate:"required,min=1"`
	Count  int    `json:"count" validate:"required,min=1"`
}

// HandleDraw settles a draw request, routing counts above the threshold
// through the admission-controlled oversized path.
func (h *GachaHandler) HandleDraw(w http.ResponseWriter, r *http.Request) {
	var req DrawRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Draw"); err != nil {
		return
	}

	if req.Count > gacha.OversizedDrawThreshold {
		result, err := h.service.DrawOversized(r.Context(), req.UserID, req.PoolID, req.Count)
		if err != nil {
			logger.FromContext(r.Context()).Error("Oversized draw failed", "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
		return
	}

	result, err := h.service.Draw(r.Context(), req.UserID, req.PoolID, req.Count)
	if err != nil {
		logger.FromContext(r.Context()).Error("Draw failed", "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleListPools returns every configured pool.
func (h *GachaHandler) HandleListPools(w http.ResponseWriter, r *http.Request) {
	pools, err := h.service.ListPools(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list pools", "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pools)
}

// HandleGetPoolProbabilities returns a pool's entries with display names
// and draw probabilities.
func (h *GachaHandler) HandleGetPoolProbabilities(w http.ResponseWriter, r *http.Request) {
	poolIDStr, ok := GetQueryParam(r, w, "pool_id")
	if !ok {
		return
	}
	poolID, err := strconv.Atoi(poolIDStr)
	if err != nil || poolID < 1 {
		http.Error(w, ErrMsgInvalidPoolID, http.StatusBadRequest)
		return
	}

	probabilities, err := h.service.GetPoolProbabilities(r.Context(), poolID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get pool probabilities", "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, probabilities)
}

// HandleGetHistory returns the user's most recent draw audit records.
func (h *GachaHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	limit := 0
	if limitStr := GetOptionalQueryParam(r, "limit", ""); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			http.Error(w, ErrMsgInvalidLimit, http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	records, err := h.service.GetHistory(r.Context(), userID, limit)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get gacha history", "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}
