package models

import (
	"database/sql/driver"
	"encoding/json"
)

// JSON 通用 JSON 对象列类型
type JSON map[string]interface{}

// Value 实现 driver.Valuer 接口
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan 实现 sql.Scanner 接口
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := normalizeJSONBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// StringArray 字符串数组类型，用于存储图片等列表字段
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	bytes, ok := normalizeJSONBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// ProductAttributes 商品属性键值对（颜色、尺寸等）
type ProductAttributes map[string]string

// Value 实现 driver.Valuer 接口
func (p ProductAttributes) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// Scan 实现 sql.Scanner 接口
func (p *ProductAttributes) Scan(value interface{}) error {
	if value == nil {
		*p = make(ProductAttributes)
		return nil
	}
	bytes, ok := normalizeJSONBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, p)
}

// DayHours 单日营业时段
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// BusinessHours 营业时间配置，key 为星期（monday..sunday）
type BusinessHours map[string]DayHours

// Value 实现 driver.Valuer 接口
func (b BusinessHours) Value() (driver.Value, error) {
	if b == nil {
		return nil, nil
	}
	return json.Marshal(b)
}

// Scan 实现 sql.Scanner 接口
func (b *BusinessHours) Scan(value interface{}) error {
	if value == nil {
		*b = make(BusinessHours)
		return nil
	}
	bytes, ok := normalizeJSONBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, b)
}

// DeliveryArea 配送区域
type DeliveryArea struct {
	Name string `json:"name"`
	Fee  Money  `json:"fee"`
}

// DeliveryAreas 配送区域列表
type DeliveryAreas []DeliveryArea

// Value 实现 driver.Valuer 接口
func (d DeliveryAreas) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan 实现 sql.Scanner 接口
func (d *DeliveryAreas) Scan(value interface{}) error {
	if value == nil {
		*d = DeliveryAreas{}
		return nil
	}
	bytes, ok := normalizeJSONBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, d)
}

// PaymentMethod 支付方式配置项
type PaymentMethod struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// PaymentMethods 支付方式配置，key 为方式标识（cash/card/online）
type PaymentMethods map[string]PaymentMethod

// Value 实现 driver.Valuer 接口
func (p PaymentMethods) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// Scan 实现 sql.Scanner 接口
func (p *PaymentMethods) Scan(value interface{}) error {
	if value == nil {
		*p = make(PaymentMethods)
		return nil
	}
	bytes, ok := normalizeJSONBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, p)
}

// normalizeJSONBytes 兼容驱动返回 []byte 或 string 两种形态
func normalizeJSONBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}
