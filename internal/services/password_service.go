package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrPasswordInputInvalid   = errors.New("password invalid input")
	ErrPasswordMismatch       = errors.New("password confirmation mismatch")
	ErrCurrentPasswordInvalid = errors.New("current password invalid")
	ErrPasswordMustDiffer     = errors.New("new password must differ")
	ErrWeakPassword           = errors.New("weak password")
)

type CredentialStore interface {
	SetPassword(password string) error
	VerifyPassword(password string) (bool, error)
	HasPassword() (bool, error)
	ClearPassword() error
}

// PasswordService guards the single report password: replacing or clearing an
// existing one requires it.
type PasswordService struct {
	credentials CredentialStore
}

func NewPasswordService(credentials CredentialStore) *PasswordService {
	return &PasswordService{credentials: credentials}
}

// ValidatePasswordStrength asks for 8+ runes mixing upper case, lower case and digits.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < 8 {
		return ErrWeakPassword
	}

	var hasUpper, hasLower, hasDigit bool
	for _, char := range password {
		hasUpper = hasUpper || unicode.IsUpper(char)
		hasLower = hasLower || unicode.IsLower(char)
		hasDigit = hasDigit || unicode.IsDigit(char)
	}
	if hasUpper && hasLower && hasDigit {
		return nil
	}
	return ErrWeakPassword
}

func (service *PasswordService) Status() (bool, error) {
	return service.credentials.HasPassword()
}

func (service *PasswordService) Verify(password string) (bool, error) {
	return service.credentials.VerifyPassword(password)
}

func (service *PasswordService) Change(currentPassword string, newPassword string, confirmPassword string) error {
	newPassword = strings.TrimSpace(newPassword)
	confirmPassword = strings.TrimSpace(confirmPassword)
	if newPassword == "" || confirmPassword == "" {
		return ErrPasswordInputInvalid
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	hasPassword, err := service.credentials.HasPassword()
	if err != nil {
		return err
	}
	if hasPassword {
		if err := service.checkCurrent(currentPassword); err != nil {
			return err
		}
		if strings.TrimSpace(currentPassword) == newPassword {
			return ErrPasswordMustDiffer
		}
	}

	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}
	if err := service.credentials.SetPassword(newPassword); err != nil {
		return fmt.Errorf("store password: %w", err)
	}
	return nil
}

// Replace stores a password without asking for the old one. It is reserved
// for local operator tooling.
func (service *PasswordService) Replace(newPassword string) error {
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}
	return service.credentials.SetPassword(newPassword)
}

func (service *PasswordService) Clear(currentPassword string) error {
	hasPassword, err := service.credentials.HasPassword()
	if err != nil {
		return err
	}
	if !hasPassword {
		return nil
	}
	if err := service.checkCurrent(currentPassword); err != nil {
		return err
	}
	return service.credentials.ClearPassword()
}

func (service *PasswordService) checkCurrent(currentPassword string) error {
	currentPassword = strings.TrimSpace(currentPassword)
	if currentPassword == "" {
		return ErrCurrentPasswordInvalid
	}
	ok, err := service.credentials.VerifyPassword(currentPassword)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCurrentPasswordInvalid
	}
	return nil
}
