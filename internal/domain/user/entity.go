package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidType  = errors.New("invalid user type")
)

type Type string

const (
	TypeMember    Type = "MEMBER"
	TypeNonMember Type = "NON_MEMBER"
)

func (t Type) Valid() bool {
	return t == TypeMember || t == TypeNonMember
}

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Type         Type
	IsAdmin      bool
	CreatedAt    time.Time
}

func New(name, email, passwordHash string, userType Type) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if !userType.Valid() {
		return nil, ErrInvalidType
	}

	return &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Type:         userType,
	}, nil
}
