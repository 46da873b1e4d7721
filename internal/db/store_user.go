package db

import (
	"context"
	"fmt"
)

// CreateUser inserts a new user
func (s *store) CreateUser(ctx context.Context, user *User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user %s: %w", user.Username, translateError(err))
	}
	return nil
}

// GetUserByID retrieves a user by primary key
func (s *store) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by unique username
func (s *store) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// CreateToken records an issued API token
func (s *store) CreateToken(ctx context.Context, token *Token) error {
	if token.UserID == 0 {
		return ErrMissingUserID
	}
	if err := s.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("failed to create token %s: %w", token.Name, translateError(err))
	}
	return nil
}

// ListTokens lists a user's issued tokens, newest first
func (s *store) ListTokens(ctx context.Context, userID uint) ([]*Token, error) {
	var tokens []*Token
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tokens).Error
	if err != nil {
		return nil, translateError(err)
	}
	return tokens, nil
}
