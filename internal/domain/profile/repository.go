package profile

import (
	"context"

	"github.com/AnkitS-21/campus-connect-hub/internal/common"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID common.UUID) (*Profile, error)
	Upsert(ctx context.Context, p Profile) (*Profile, error)
}
