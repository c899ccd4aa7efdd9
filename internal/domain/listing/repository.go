package listing

import (
	"context"

	"github.com/AnkitS-21/campus-connect-hub/internal/common"
)

type Repository interface {
	Create(ctx context.Context, l Listing) (*Listing, error)
	Update(ctx context.Context, l Listing) (*Listing, error)
	Delete(ctx context.Context, id common.UUID) error
	GetByID(ctx context.Context, id common.UUID) (*Listing, error)
	List(ctx context.Context) ([]Listing, error)
}
