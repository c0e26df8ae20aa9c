package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gastrak/gastrak/internal/auth/domain"
	"github.com/gastrak/gastrak/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]domain.User, error) {
	var users []domain.User
	err := page.Apply(db.WithContext(ctx).Model(&domain.User{})).
		Order("id asc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Save(user).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{}).Error
}

type tokenRepo struct{}

func ProvideTokens() domain.TokenRepository {
	return &tokenRepo{}
}

func (r *tokenRepo) Insert(ctx context.Context, db *gorm.DB, token *domain.AccessToken) error {
	return db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepo) FindByHash(ctx context.Context, db *gorm.DB, hash string) (*domain.AccessToken, error) {
	var token domain.AccessToken
	err := db.WithContext(ctx).Where("token_hash = ?", hash).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepo) DeleteExpired(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).
		Where("expires_at < CURRENT_TIMESTAMP").
		Delete(&domain.AccessToken{}).Error
}
