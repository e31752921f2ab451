package cashbook

import (
	"context"
	"fmt"
	"time"

	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/auth"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/cashbook"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/sse"
)

type CashbookServiceImpl struct {
	cashbook.TransactionRepository
	hub *sse.Hub
}

func NewCashbookService(txRepo cashbook.TransactionRepository, hub *sse.Hub) cashbook.CashbookService {
	return &CashbookServiceImpl{TransactionRepository: txRepo, hub: hub}
}

// Create implements cashbook.CashbookService.
func (s *CashbookServiceImpl) Create(ctx context.Context, req cashbook.CreateTransactionRequest) (cashbook.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return cashbook.TransactionResponse{}, err
	}

	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return cashbook.TransactionResponse{}, auth.ErrUnauthenticated
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	tx, err := s.TransactionRepository.Create(ctx, cashbook.Transaction{
		SiteID:      req.SiteID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
		RecordedBy:  actor.ID,
	})
	if err != nil {
		return cashbook.TransactionResponse{}, fmt.Errorf("failed to create cash transaction: %w", err)
	}

	s.hub.Publish(sse.Event{Topic: "cashbook", Data: map[string]interface{}{"site_id": tx.SiteID}})
	return mapTransactionToResponse(tx), nil
}

// Get implements cashbook.CashbookService.
func (s *CashbookServiceImpl) Get(ctx context.Context, id string) (cashbook.TransactionResponse, error) {
	tx, err := s.TransactionRepository.GetByID(ctx, id)
	if err != nil {
		return cashbook.TransactionResponse{}, err
	}
	return mapTransactionToResponse(tx), nil
}

// List implements cashbook.CashbookService.
func (s *CashbookServiceImpl) List(ctx context.Context, filter cashbook.TransactionFilter) ([]cashbook.TransactionResponse, error) {
	txs, err := s.TransactionRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash transactions: %w", err)
	}

	responses := make([]cashbook.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, mapTransactionToResponse(tx))
	}
	return responses, nil
}

// Delete implements cashbook.CashbookService.
func (s *CashbookServiceImpl) Delete(ctx context.Context, id string) error {
	tx, err := s.TransactionRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.TransactionRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete cash transaction: %w", err)
	}

	s.hub.Publish(sse.Event{Topic: "cashbook", Data: map[string]interface{}{"site_id": tx.SiteID}})
	return nil
}

func mapTransactionToResponse(tx cashbook.Transaction) cashbook.TransactionResponse {
	return cashbook.TransactionResponse{
		ID:          tx.ID,
		SiteID:      tx.SiteID,
		Type:        tx.Type,
		Amount:      tx.Amount,
		Description: tx.Description,
		Date:        tx.Date.Format("2006-01-02"),
		RecordedBy:  tx.RecordedBy,
	}
}
