package user

import (
	"context"
	"errors"
	"fmt"

	"condoadmin/internal/domain/collection"
	"condoadmin/internal/storage"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, in Registration) (User, error)
	Authenticate(ctx context.Context, email, password string) (User, error)
}

type Service struct {
	repo      Repository
	validator Validator
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		log:       log.With("component", "user_service"),
	}
}

func (s *Service) Register(ctx context.Context, in Registration) (User, error) {
	if err := s.validator.ValidateRegister(in.Email, in.Password); err != nil {
		s.log.Debug("validation failed", "email", in.Email, "error", err)
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return User{}, fmt.Errorf("%w: email %s is already registered", ErrInvalidInput, in.Email)
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	// повторная проверка email выполняется атомарно в коллекции; гонку выигрывает один
	u, err := s.repo.Create(ctx, in)
	if errors.Is(err, collection.ErrValidation) {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err != nil {
		return User{}, fmt.Errorf("register user: %w", err)
	}
	s.log.Info("user registered", "user_id", u.ID)
	return u, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	if err := s.validator.ValidateLogin(email); err != nil {
		return User{}, ErrInvalidAuth
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrInvalidAuth
	}
	if err != nil {
		return User{}, err
	}

	if u.PasswordHash == "" {
		return User{}, ErrInvalidAuth
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidAuth
	}
	return u, nil
}

// PreparePassword is the "usuarios" prepare hook: a supplied plain password
// is checked for strength and replaced by its bcrypt hash.
func (s *Service) PreparePassword(fields storage.Record) error {
	raw, ok := fields["password"]
	if !ok {
		return nil
	}
	password, ok := raw.(string)
	if !ok {
		return collection.NewValidationError("password", "type", "must be a string")
	}
	if err := s.validator.ValidatePassword(password); err != nil {
		return collection.NewValidationError("password", "strength", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("Хэш пароля: %w", err)
	}
	fields["password"] = string(hash)
	return nil
}
