package shared

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/http/response"
	"github.com/storepanel/internal/i18n"
	"github.com/storepanel/internal/logger"
	"github.com/storepanel/internal/service"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondServiceError 将服务层错误映射为统一响应。
// 校验错误附带字段明细，未识别的错误按内部错误处理并记录。
func RespondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	if verr, ok := service.AsValidationError(err); ok {
		locale := i18n.ResolveLocale(c)
		response.ErrorWithData(c, response.CodeValidation, i18n.T(locale, "error.validation_failed"), gin.H{
			"errors": verr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		RespondError(c, response.CodeNotFound, "error.not_found", nil)
	case errors.Is(err, service.ErrForbidden):
		RespondError(c, response.CodeForbidden, "error.forbidden", nil)
	case errors.Is(err, authz.ErrNoStoreAssigned):
		RespondError(c, response.CodeForbidden, "error.no_store_assigned", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		RespondError(c, response.CodeUnauthorized, "error.login_failed", nil)
	case errors.Is(err, service.ErrUserDisabled):
		RespondError(c, response.CodeForbidden, "error.user_disabled", nil)
	case errors.Is(err, service.ErrInvalidPassword):
		RespondError(c, response.CodeValidation, "error.validation_failed", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondFieldConflict(c, "slug", "error.slug_exists")
	case errors.Is(err, service.ErrEmailExists):
		respondFieldConflict(c, "email", "error.email_exists")
	case errors.Is(err, service.ErrPhoneExists):
		respondFieldConflict(c, "phone", "error.phone_exists")
	case errors.Is(err, service.ErrSKUExists):
		respondFieldConflict(c, "sku", "error.sku_exists")
	case errors.Is(err, service.ErrStoreHasAdmins):
		RespondError(c, response.CodeConflict, "error.store_has_admins", nil)
	case errors.Is(err, service.ErrInvalidStatus):
		RespondError(c, response.CodeBadRequest, "error.invalid_status", nil)
	default:
		RespondError(c, response.CodeInternal, "error.internal", err)
	}
}

// respondFieldConflict 唯一性冲突按字段明细返回，格式与校验错误一致。
func respondFieldConflict(c *gin.Context, field, key string) {
	locale := i18n.ResolveLocale(c)
	response.ErrorWithData(c, response.CodeConflict, i18n.T(locale, key), gin.H{
		"errors": map[string]string{field: i18n.T(locale, key)},
	})
}
