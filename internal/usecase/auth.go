package usecase

import (
	"context"
	"errors"

	"court-booking/internal/infra"
	"court-booking/internal/pkg/jwt"
	"court-booking/internal/pkg/password"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthUseCase interface {
	Login(ctx context.Context, email, plainPassword string) (string, error)
	ValidateToken(token string) (userID uuid.UUID, isAdmin bool, err error)
}

type authUseCaseImpl struct {
	userRepo shared.UserRepository
	jwt      *jwt.Service
}

func NewAuthUseCase(userRepo shared.UserRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		userRepo: userRepo,
		jwt:      jwtService,
	}
}

func (u *authUseCaseImpl) Login(ctx context.Context, email, plainPassword string) (string, error) {
	usr, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := password.Verify(usr.PasswordHash, plainPassword); err != nil {
		return "", ErrInvalidCredentials
	}

	return u.jwt.GenerateToken(usr.ID, usr.IsAdmin)
}

func (u *authUseCaseImpl) ValidateToken(token string) (uuid.UUID, bool, error) {
	claims, err := u.jwt.ValidateToken(token)
	if err != nil {
		return uuid.Nil, false, err
	}
	return claims.UserID, claims.IsAdmin, nil
}
