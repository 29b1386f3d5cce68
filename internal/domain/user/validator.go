package user

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	MaxEmailLen    = 254
	MinPasswordLen = 8
)

// max идет до email, чтобы слишком длинный адрес не проверялся регуляркой
var emailRule = fmt.Sprintf("required,max=%d,email", MaxEmailLen)

// Validator - интерфейс для валидации пользовательских данных
type Validator interface {
	ValidateRegister(email, password string) error
	ValidateLogin(email string) error
	ValidatePassword(password string) error
}

type PasswordValidator struct {
	validate *validator.Validate

	requireSpecialChar bool
	requireDigit       bool
	requireUpper       bool
	requireLower       bool
}

// NewPasswordValidator создает новый валидатор
func NewPasswordValidator() *PasswordValidator {
	return &PasswordValidator{
		validate:           validator.New(),
		requireSpecialChar: true,
		requireDigit:       true,
		requireUpper:       true,
		requireLower:       true,
	}
}

// ValidateRegister валидирует данные для регистрации
func (v *PasswordValidator) ValidateRegister(email, password string) error {
	if err := v.ValidateLogin(email); err != nil {
		return fmt.Errorf("email validation failed: %w", err)
	}
	if err := v.ValidatePassword(password); err != nil {
		return fmt.Errorf("password validation failed: %w", err)
	}
	return nil
}

// ValidateLogin проверяет email, которым пользователь входит в систему.
// Правила совпадают с полем email коллекции usuarios.
func (v *PasswordValidator) ValidateLogin(email string) error {
	err := v.validate.Var(email, emailRule)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("email validation: %w", err)
	}
	switch verrs[0].Tag() {
	case "required":
		return errors.New("email is required")
	case "max":
		return fmt.Errorf("email must be at most %d characters", MaxEmailLen)
	default:
		return errors.New("email must be a valid address")
	}
}

// ValidatePassword валидирует пароль
func (v *PasswordValidator) ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	switch {
	case v.requireLower && !hasLower:
		return fmt.Errorf("password must contain at least one lowercase letter")
	case v.requireUpper && !hasUpper:
		return fmt.Errorf("password must contain at least one uppercase letter")
	case v.requireDigit && !hasDigit:
		return fmt.Errorf("password must contain at least one digit")
	case v.requireSpecialChar && !hasSpecial:
		return fmt.Errorf("password must contain at least one special character")
	}
	return nil
}
