package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/inventory"
	"github.com/siteworks-hq/siteworks-backend-go/internal/handler/http/response"
)

type InventoryHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type inventoryHandlerImpl struct {
	inventoryService inventory.InventoryService
}

func NewInventoryHandler(inventoryService inventory.InventoryService) InventoryHandler {
	return &inventoryHandlerImpl{
		inventoryService: inventoryService,
	}
}

// Create implements InventoryHandler.
func (h *inventoryHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req inventory.CreateItemRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.inventoryService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Inventory item created successfully", result)
}

// List implements InventoryHandler.
func (h *inventoryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var siteID *string
	if s := r.URL.Query().Get("site_id"); s != "" {
		siteID = &s
	}

	items, err := h.inventoryService.List(r.Context(), siteID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, items)
}

// Get implements InventoryHandler.
func (h *inventoryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.inventoryService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements InventoryHandler.
func (h *inventoryHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req inventory.UpdateItemRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.inventoryService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements InventoryHandler.
func (h *inventoryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.inventoryService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Inventory item deleted", nil)
}
