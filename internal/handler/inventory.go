package handler

import (
	"net/http"
	"strconv"

	"github.com/pondside/AnglerBot_Go/internal/domain"
	"github.com/pondside/AnglerBot_Go/internal/inventory"
	"github.com/pondside/AnglerBot_Go/internal/logger"
)

type InventoryHandler struct {
	service inventory.Service
}

func NewInventoryHandler(service inventory.Service) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// HandleGetInventory returns a user's full inventory view.
func (h *InventoryHandler) HandleGetInventory(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	summary, err := h.service.GetInventory(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get inventory", "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

type EquipRequest struct {
	UserID     string `json:"user_id" validate:"required,uuid"`
	Category   string `json:"category" validate:"required,equipcategory"`
	InstanceID int    `json:"instance_id" validate:"required,min=1"`
}

// HandleEquip equips an equipment instance.
func (h *InventoryHandler) HandleEquip(w http.ResponseWriter, r *http.Request) {
	var req EquipRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Equip"); err != nil {
		return
	}

	err := h.service.Equip(r.Context(), req.UserID, domain.EquipmentCategory(req.Category), req.InstanceID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to equip instance", "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "equipped"})
}

type SellFishRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// SellFishResponse reports the credited sale value.
type SellFishResponse struct {
	Value int `json:"value"`
}

// HandleSellAllFishKeepOne sells every surplus fish and credits the
// proceeds.
func (h *InventoryHandler) HandleSellAllFishKeepOne(w http.ResponseWriter, r *http.Request) {
	var req SellFishRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Sell fish"); err != nil {
		return
	}

	value, err := h.service.SellAllFishKeepOne(r.Context(), req.UserID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to sell fish", "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SellFishResponse{Value: value})
}

// InventoryValueResponse reports an aggregate inventory value.
type InventoryValueResponse struct {
	Value int `json:"value"`
}

// HandleGetInventoryValue reports the total sale value of a stackable
// inventory, optionally filtered by rarity.
func (h *InventoryHandler) HandleGetInventoryValue(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	kind := domain.StackableKind(GetOptionalQueryParam(r, "kind", string(domain.StackableFish)))
	if kind != domain.StackableFish && kind != domain.StackableBait {
		http.Error(w, ErrMsgInvalidRequestSummary, http.StatusBadRequest)
		return
	}

	var rarity *int
	if rarityStr := GetOptionalQueryParam(r, "rarity", ""); rarityStr != "" {
		parsed, err := strconv.Atoi(rarityStr)
		if err != nil {
			http.Error(w, ErrMsgInvalidRequestSummary, http.StatusBadRequest)
			return
		}
		rarity = &parsed
	}

	value, err := h.service.StackableValue(r.Context(), userID, kind, rarity)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get inventory value", "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, InventoryValueResponse{Value: value})
}

type SellInstanceRequest struct {
	UserID     string `json:"user_id" validate:"required,uuid"`
	Category   string `json:"category" validate:"required,equipcategory"`
	InstanceID int    `json:"instance_id" validate:"required,min=1"`
}

// SellInstanceResponse reports the credited sale value.
type SellInstanceResponse struct {
	Value int `json:"value"`
}

// HandleSellInstance sells one unequipped equipment instance.
func (h *InventoryHandler) HandleSellInstance(w http.ResponseWriter, r *http.Request) {
	var req SellInstanceRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Sell instance"); err != nil {
		return
	}

	value, err := h.service.SellInstance(r.Context(), req.UserID, domain.EquipmentCategory(req.Category), req.InstanceID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to sell instance", "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SellInstanceResponse{Value: value})
}

// HandleGetInstanceValue reports one instance's refine-scaled sale value.
func (h *InventoryHandler) HandleGetInstanceValue(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	category := GetOptionalQueryParam(r, "category", string(domain.EquipmentRod))
	if category != string(domain.EquipmentRod) && category != string(domain.EquipmentAccessory) {
		http.Error(w, ErrMsgInvalidCategory, http.StatusBadRequest)
		return
	}
	instanceIDStr, ok := GetQueryParam(r, w, "instance_id")
	if !ok {
		return
	}
	instanceID, err := strconv.Atoi(instanceIDStr)
	if err != nil || instanceID < 1 {
		http.Error(w, ErrMsgInvalidInstanceID, http.StatusBadRequest)
		return
	}

	value, err := h.service.InstanceValue(r.Context(), userID, domain.EquipmentCategory(category), instanceID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get instance value", "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, InventoryValueResponse{Value: value})
}

type RefineRequest struct {
	UserID     string `json:"user_id" validate:"required,uuid"`
	Category   string `json:"category" validate:"required,equipcategory"`
	InstanceID int    `json:"instance_id" validate:"required,min=1"`
}

// HandleRefine increments an instance's refine level.
func (h *InventoryHandler) HandleRefine(w http.ResponseWriter, r *http.Request) {
	var req RefineRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Refine"); err != nil {
		return
	}

	instance, err := h.service.RefineInstance(r.Context(), req.UserID, domain.EquipmentCategory(req.Category), req.InstanceID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to refine instance", "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, instance)
}

type ClearEquipmentRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid"`
	Category    string `json:"category" validate:"required,equipcategory"`
	RarityBelow int    `json:"rarity_below" validate:"required,min=1"`
}

// ClearEquipmentResponse reports how many instances were removed.
type ClearEquipmentResponse struct {
	Removed int `json:"removed"`
}

// HandleClearEquipment deletes unequipped low-rarity instances.
func (h *InventoryHandler) HandleClearEquipment(w http.ResponseWriter, r *http.Request) {
	var req ClearEquipmentRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Clear equipment"); err != nil {
		return
	}

	removed, err := h.service.ClearLowRarityEquipment(r.Context(), req.UserID, domain.EquipmentCategory(req.Category), req.RarityBelow)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to clear equipment", "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ClearEquipmentResponse{Removed: removed})
}

// HandleGetTitles lists a user's titles.
func (h *InventoryHandler) HandleGetTitles(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	titles, err := h.service.GetUserTitles(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get titles", "error", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, titles)
}
