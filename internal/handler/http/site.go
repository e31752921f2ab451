package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/site"
	"github.com/siteworks-hq/siteworks-backend-go/internal/handler/http/response"
)

type SiteHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type siteHandlerImpl struct {
	siteService site.SiteService
}

func NewSiteHandler(siteService site.SiteService) SiteHandler {
	return &siteHandlerImpl{
		siteService: siteService,
	}
}

// Create implements SiteHandler.
func (h *siteHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req site.CreateSiteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.siteService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Site created successfully", result)
}

// List implements SiteHandler.
func (h *siteHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	sites, err := h.siteService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sites)
}

// Get implements SiteHandler.
func (h *siteHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.siteService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements SiteHandler.
func (h *siteHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req site.UpdateSiteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.siteService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements SiteHandler.
func (h *siteHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.siteService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Site deleted", nil)
}
