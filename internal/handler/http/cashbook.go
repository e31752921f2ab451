package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/cashbook"
	"github.com/siteworks-hq/siteworks-backend-go/internal/handler/http/response"
)

type CashbookHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type cashbookHandlerImpl struct {
	cashbookService cashbook.CashbookService
}

func NewCashbookHandler(cashbookService cashbook.CashbookService) CashbookHandler {
	return &cashbookHandlerImpl{
		cashbookService: cashbookService,
	}
}

// Create implements CashbookHandler.
func (h *cashbookHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req cashbook.CreateTransactionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.cashbookService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Transaction recorded successfully", result)
}

// List implements CashbookHandler.
func (h *cashbookHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := cashbook.TransactionFilter{}

	if siteID := r.URL.Query().Get("site_id"); siteID != "" {
		filter.SiteID = &siteID
	}
	if txType := r.URL.Query().Get("type"); txType != "" {
		filter.Type = &txType
	}
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	transactions, err := h.cashbookService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, transactions)
}

// Get implements CashbookHandler.
func (h *cashbookHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.cashbookService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements CashbookHandler.
func (h *cashbookHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.cashbookService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Transaction deleted", nil)
}
