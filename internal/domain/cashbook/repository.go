package cashbook

import "context"

type TransactionRepository interface {
	Create(ctx context.Context, t Transaction) (Transaction, error)
	GetByID(ctx context.Context, id string) (Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]Transaction, error)
	Delete(ctx context.Context, id string) error
}

type CashbookService interface {
	Create(ctx context.Context, req CreateTransactionRequest) (TransactionResponse, error)
	Get(ctx context.Context, id string) (TransactionResponse, error)
	List(ctx context.Context, filter TransactionFilter) ([]TransactionResponse, error)
	Delete(ctx context.Context, id string) error
}
