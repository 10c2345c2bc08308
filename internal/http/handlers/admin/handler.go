package admin

import "github.com/storepanel/internal/provider"

// Handler 店铺管理后台接口处理器入口，内嵌依赖容器
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
