package service

import (
	"context"
	"fmt"

	"chatapi/internal/domain"
	"chatapi/internal/security"
	"chatapi/internal/upload"
)

// AuthService handles signup, login, and profile updates.
type AuthService struct {
	users   domain.UserRepository
	tokens  *security.TokenService
	hash    *security.PasswordHasher
	uploads upload.Store
}

func NewAuthService(
	users domain.UserRepository,
	tokens *security.TokenService,
	hash *security.PasswordHasher,
	uploads upload.Store,
) *AuthService {
	return &AuthService{
		users:   users,
		tokens:  tokens,
		hash:    hash,
		uploads: uploads,
	}
}

type SignupInput struct {
	FullName string
	Email    string
	Password string
	Bio      string
}

type LoginInput struct {
	Email    string
	Password string
}

type TokenResponse struct {
	AccessToken string
	TokenType   string
	User        *domain.User
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*TokenResponse, error) {
	if in.FullName == "" || in.Email == "" || in.Password == "" || in.Bio == "" {
		return nil, fmt.Errorf("%w: missing details", domain.ErrInvalidInput)
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account already exists", domain.ErrConflict)
	}

	hashed, err := s.hash.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:          in.Email,
		FullName:       in.FullName,
		Bio:            in.Bio,
		HashedPassword: hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.CreateForUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	if err := s.hash.Verify(in.Password, user.HashedPassword); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	token, err := s.tokens.CreateForUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}, nil
}

type UpdateProfileInput struct {
	FullName string
	Bio      string
	// ProfilePic is an optional base64 payload or data URL.
	ProfilePic string
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: unknown user", domain.ErrNotFound)
	}

	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.Bio != "" {
		user.Bio = in.Bio
	}
	if in.ProfilePic != "" {
		data, contentType, err := upload.DecodeImage(in.ProfilePic)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		url, err := s.uploads.Save(ctx, data, contentType)
		if err != nil {
			return nil, fmt.Errorf("store profile picture: %w", err)
		}
		user.ProfilePicURL = url
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
