package postgres

import (
	"context"

	"gorm.io/gorm"

	customErrors "github.com/taskhive/task-service/internal/domain/errors"
	"github.com/taskhive/task-service/internal/domain/model"
)

type RefreshTokenRepo struct {
	db *gorm.DB
}

func NewRefreshTokenRepo(db *gorm.DB) *RefreshTokenRepo {
	return &RefreshTokenRepo{db: db}
}

// StoreRefreshToken appends one row. Nothing here reads, rotates or revokes
// earlier tokens for the same user.
func (p *RefreshTokenRepo) StoreRefreshToken(ctx context.Context, t model.RefreshToken) (model.RefreshToken, error) {
	res := p.db.WithContext(ctx).Create(&t)
	if err := res.Error; err != nil {
		return model.RefreshToken{}, customErrors.WrapInternal(err, "StoreRefreshToken")
	}
	return t, nil
}
