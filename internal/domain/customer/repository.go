package customer

import "context"

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByCustomerID(ctx context.Context, customerID string) (*Customer, error)
	// GetByCustomerIDForUpdate locks the row; only valid inside a transaction.
	GetByCustomerIDForUpdate(ctx context.Context, customerID string) (*Customer, error)
	GetByPhone(ctx context.Context, phone string) (*Customer, error)
	Save(ctx context.Context, c *Customer) error
}
