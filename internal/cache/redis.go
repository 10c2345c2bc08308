package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storepanel/internal/config"
)

// 全局缓存句柄；未启用时保持 nil，所有操作降级为空操作。
var store struct {
	client *redis.Client
	prefix string
}

// InitRedis 初始化 Redis 客户端；配置缺失或未启用时静默降级
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		store.client = nil
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	store.prefix = strings.TrimSpace(cfg.Prefix)
	if store.prefix == "" {
		store.prefix = "sp"
	}
	store.client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return nil
}

// Enabled 判断缓存是否可用
func Enabled() bool { return store.client != nil }

// Client 获取底层 Redis 客户端，未启用时返回 nil
func Client() *redis.Client { return store.client }

// GetJSON 读取 JSON 缓存，命中时反序列化到 dest
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if !Enabled() {
		return false, nil
	}
	raw, err := store.client.Get(ctx, namespaced(key)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 序列化并写入缓存
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !Enabled() {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return store.client.Set(ctx, namespaced(key), payload, ttl).Err()
}

// Del 删除缓存键
func Del(ctx context.Context, key string) error {
	if !Enabled() {
		return nil
	}
	return store.client.Del(ctx, namespaced(key)).Err()
}

func namespaced(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return store.prefix
	}
	return store.prefix + ":" + key
}
