package service

import (
	"fmt"
	"unicode"

	"github.com/storepanel/internal/config"
)

// validatePassword 按策略校验明文密码
func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	minLength := policy.MinLength
	if minLength <= 0 {
		minLength = 8
	}
	if len(password) < minLength {
		return NewValidationError(map[string]string{
			"password": fmt.Sprintf("password must be at least %d characters", minLength),
		})
	}

	var hasUpper, hasLower, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsNumber(r):
			hasNumber = true
		}
	}

	fields := map[string]string{}
	if policy.RequireUpper && !hasUpper {
		fields["password"] = "password must contain an uppercase letter"
	}
	if policy.RequireLower && !hasLower {
		fields["password"] = "password must contain a lowercase letter"
	}
	if policy.RequireNumber && !hasNumber {
		fields["password"] = "password must contain a number"
	}
	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}
