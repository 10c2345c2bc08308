package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/storepanel/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// UserAuthState 后台用户鉴权快照
// token_invalid_before 为 Unix 秒时间戳，0 表示未设置
// 仅用于服务端 Redis 缓存，减少鉴权中间件的数据库查询
type UserAuthState struct {
	UserID             uint   `json:"user_id"`
	Role               string `json:"role"`
	StoreID            *uint  `json:"store_id"`
	IsActive           bool   `json:"is_active"`
	TokenVersion       uint64   `json:"token_version"`
	TokenInvalidBefore int64    `json:"token_invalid_before"`
	Revoked            []string `json:"revoked,omitempty"`
	UpdatedAt          int64    `json:"updated_at"`
}

func userAuthStateKey(userID uint) string {
	return fmt.Sprintf("auth:user:%d", userID)
}

// BuildUserAuthState 从用户模型构建鉴权快照
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	state := &UserAuthState{
		UserID:       user.ID,
		Role:         user.Role.String(),
		StoreID:      user.StoreID,
		IsActive:     user.IsActive,
		TokenVersion: user.TokenVersion,
		Revoked:      user.Permissions,
		UpdatedAt:    time.Now().Unix(),
	}
	if user.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = user.TokenInvalidBefore.Unix()
	}
	return state
}

// GetUserAuthState 获取用户鉴权快照
func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var state UserAuthState
	hit, err := GetJSON(ctx, userAuthStateKey(userID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetUserAuthState 写入用户鉴权快照
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, userAuthStateKey(state.UserID), state, authStateCacheTTL)
}

// DelUserAuthState 删除用户鉴权快照
func DelUserAuthState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, userAuthStateKey(userID))
}
