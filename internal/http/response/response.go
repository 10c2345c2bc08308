package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	StatusCode int         `json:"status_code"` // 业务状态码，0 表示成功
	Msg        string      `json:"msg"`         // 提示消息
	Data       interface{} `json:"data"`        // 数据内容
}

// PageResponse 分页响应结构
type PageResponse struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination 分页信息
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	Total       int64 `json:"total"`
	LastPage    int64 `json:"last_page"`
}

// NewPagination 构建分页信息，末页向上取整且至少为 1
func NewPagination(page, pageSize int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	lastPage := (total + int64(pageSize) - 1) / int64(pageSize)
	if lastPage < 1 {
		lastPage = 1
	}
	return Pagination{CurrentPage: page, PageSize: pageSize, Total: total, LastPage: lastPage}
}

func write(c *gin.Context, code int, msg string, data interface{}) {
	c.JSON(httpStatusFor(code), Response{StatusCode: code, Msg: msg, Data: data})
}

// httpStatusFor 业务码与 HTTP 状态保持一致，未知码回退 200
func httpStatusFor(code int) int {
	if code >= 400 && code < 600 {
		return code
	}
	return http.StatusOK
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	write(c, 0, "success", data)
}

// SuccessWithMsg 成功响应（自定义消息）
func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	write(c, 0, msg, data)
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		StatusCode: 0,
		Msg:        "success",
		Data:       data,
		Pagination: pagination,
	})
}

// Error 错误响应，业务码同时映射为 HTTP 状态
func Error(c *gin.Context, statusCode int, msg string) {
	write(c, statusCode, msg, attachRequestID(c, nil))
}

// ErrorWithData 错误响应（带数据）
func ErrorWithData(c *gin.Context, statusCode int, msg string, data interface{}) {
	write(c, statusCode, msg, attachRequestID(c, data))
}

func NotFound(c *gin.Context, msg string)     { Error(c, CodeNotFound, msg) }
func Unauthorized(c *gin.Context, msg string) { Error(c, CodeUnauthorized, msg) }
func Forbidden(c *gin.Context, msg string)    { Error(c, CodeForbidden, msg) }
func BadRequest(c *gin.Context, msg string)   { Error(c, CodeBadRequest, msg) }

// attachRequestID 错误响应里附带请求 ID，方便排查日志
func attachRequestID(c *gin.Context, data interface{}) interface{} {
	requestID := ""
	if c != nil {
		if value, ok := c.Get("request_id"); ok {
			if id, ok := value.(string); ok {
				requestID = id
			}
		}
	}
	if requestID == "" {
		return data
	}
	if data == nil {
		return gin.H{"request_id": requestID}
	}
	switch v := data.(type) {
	case gin.H:
		if _, ok := v["request_id"]; !ok {
			v["request_id"] = requestID
		}
		return v
	case map[string]interface{}:
		if _, ok := v["request_id"]; !ok {
			v["request_id"] = requestID
		}
		return v
	default:
		return gin.H{"request_id": requestID, "data": data}
	}
}
