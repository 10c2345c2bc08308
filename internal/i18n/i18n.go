package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 支持的语言
const (
	LocaleEN   = "en"
	LocaleZHCN = "zh-CN"
)

const defaultLocale = LocaleEN

// ResolveLocale 解析请求语言，优先级：query lang > X-Locale 头 > Accept-Language 头
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return defaultLocale
	}
	if lang := normalizeLocale(c.Query("lang")); lang != "" {
		return lang
	}
	if lang := normalizeLocale(c.GetHeader("X-Locale")); lang != "" {
		return lang
	}
	accept := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(accept, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if lang := normalizeLocale(tag); lang != "" {
			return lang
		}
	}
	return defaultLocale
}

// T 按语言翻译文案 key，找不到时回退英文，再回退 key 本身
func T(locale string, key string) string {
	if catalog, ok := catalogs[locale]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[defaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译带占位符的文案
func Sprintf(locale string, key string, args ...interface{}) string {
	format := T(locale, key)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func normalizeLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "zh"):
		return LocaleZHCN
	case strings.HasPrefix(lower, "en"):
		return LocaleEN
	}
	return ""
}

var catalogs = map[string]map[string]string{
	LocaleEN: {
		"error.invalid_request":     "invalid request",
		"error.validation_failed":   "validation failed",
		"error.unauthorized":        "unauthorized",
		"error.forbidden":           "access denied",
		"error.not_found":           "resource not found",
		"error.internal":            "internal server error",
		"error.login_failed":        "invalid email or password",
		"error.user_disabled":       "account disabled",
		"error.auth_header_missing": "authorization header missing",
		"error.auth_header_invalid": "authorization header invalid",
		"error.token_invalid":       "token invalid or expired",
		"error.token_revoked":       "token revoked",
		"error.jwt_secret_missing":  "jwt secret not configured",
		"error.no_store_assigned":   "no store assigned to this account",
		"error.slug_exists":         "slug already exists",
		"error.email_exists":        "email already exists",
		"error.phone_exists":        "phone already exists",
		"error.sku_exists":          "sku already exists",
		"error.store_has_admins":    "store still has assigned admins",
		"error.invalid_status":      "invalid status transition",
		"error.rate_limited":        "too many attempts, try again later",
		"error.param_invalid":       "invalid parameter: %s",
	},
	LocaleZHCN: {
		"error.invalid_request":     "请求参数错误",
		"error.validation_failed":   "数据校验失败",
		"error.unauthorized":        "未登录或登录已过期",
		"error.forbidden":           "无权访问",
		"error.not_found":           "资源不存在",
		"error.internal":            "服务器内部错误",
		"error.login_failed":        "邮箱或密码错误",
		"error.user_disabled":       "账号已被禁用",
		"error.auth_header_missing": "缺少认证头",
		"error.auth_header_invalid": "认证头格式错误",
		"error.token_invalid":       "令牌无效或已过期",
		"error.token_revoked":       "令牌已失效",
		"error.jwt_secret_missing":  "JWT 密钥未配置",
		"error.no_store_assigned":   "当前账号未绑定店铺",
		"error.slug_exists":         "标识已存在",
		"error.email_exists":        "邮箱已存在",
		"error.phone_exists":        "电话已存在",
		"error.sku_exists":          "SKU 已存在",
		"error.store_has_admins":    "店铺下仍有管理员",
		"error.invalid_status":      "状态流转不合法",
		"error.rate_limited":        "尝试次数过多，请稍后再试",
		"error.param_invalid":       "参数不合法: %s",
	},
}
