package auth

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shop-admin/internal/db"
)

// DBStore keeps issued tokens in the tokens table; the newest row wins.
type DBStore struct {
	DB *gorm.DB
}

func NewDBStore(gdb *gorm.DB) *DBStore { return &DBStore{DB: gdb} }

func (s *DBStore) Save(ctx context.Context, token string) error {
	return s.DB.WithContext(ctx).Create(&db.Token{Value: token}).Error
}

func (s *DBStore) Load(ctx context.Context) (string, error) {
	var t db.Token
	err := s.DB.WithContext(ctx).Order("id desc").First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	if t.Value == "" {
		return "", ErrNoToken
	}
	return t.Value, nil
}

func (s *DBStore) Clear(ctx context.Context) error {
	return s.DB.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&db.Token{}).Error
}
