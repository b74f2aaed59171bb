package validator

import (
	"context"
	"strings"

	"github.com/shlankd/developEcommerce/internal/usecase"
)

type AuthValidator struct{}

func NewAuthValidator() *AuthValidator {
	return &AuthValidator{}
}

func (v *AuthValidator) ValidateRegister(ctx context.Context, email string, password string) error {
	if !looksLikeEmail(email) {
		return usecase.ErrValidation
	}
	//パスワードは8文字以上
	if len(password) < 8 {
		return usecase.ErrValidation
	}
	return nil
}

func (v *AuthValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	if email == "" || password == "" {
		return usecase.ErrValidation
	}
	return nil
}

func looksLikeEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" || len(email) > 255 {
		return false
	}
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}
