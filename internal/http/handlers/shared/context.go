package shared

import (
	"github.com/gin-gonic/gin"

	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/http/response"
	"github.com/storepanel/internal/models"
)

// ScopeContextKey 认证中间件写入 Scope 的上下文键。
const ScopeContextKey = "auth_scope"

// GetContextUintWithKeys 从上下文读取 uint 值并统一处理错误响应。
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
}

// GetScope 从上下文读取认证主体的 Scope，缺失时返回未认证响应。
func GetScope(c *gin.Context) (authz.Scope, bool) {
	value, exists := c.Get(ScopeContextKey)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return authz.Scope{}, false
	}
	scope, ok := value.(authz.Scope)
	if !ok {
		RespondError(c, response.CodeInternal, "error.internal", nil)
		return authz.Scope{}, false
	}
	return scope, true
}

// SetScope 将 Scope 写入上下文（认证中间件调用）。
func SetScope(c *gin.Context, user *models.User) {
	c.Set(ScopeContextKey, authz.ScopeForUser(user))
	c.Set("user_id", user.ID)
	c.Set("user_role", user.Role.String())
}
