package service

import "errors"

// 服务层统一哨兵错误，处理器据此映射响应码
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrUserDisabled       = errors.New("user disabled")
	ErrSlugExists         = errors.New("slug already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrPhoneExists        = errors.New("phone already exists")
	ErrSKUExists          = errors.New("sku already exists")
	ErrInvalidStatus      = errors.New("invalid status transition")
	ErrStoreHasAdmins     = errors.New("store still has assigned admins")
)

// ValidationError 字段级校验错误
type ValidationError struct {
	Fields map[string]string
}

// Error 实现 error 接口
func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError 创建字段校验错误
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// AsValidationError 判断并提取校验错误
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
