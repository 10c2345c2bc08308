package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyMarshalFixedDecimals(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.NewFromFloat(15.9))
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"15.90"` {
		t.Fatalf(`marshal want "15.90", got %s`, data)
	}

	m = NewMoneyFromDecimal(decimal.NewFromFloat(10.005))
	if m.String() != "10.01" {
		t.Fatalf("round want 10.01, got %s", m.String())
	}
}

func TestMoneyUnmarshalStringAndNumber(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`"6.99"`), &m); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if m.String() != "6.99" {
		t.Fatalf("string value want 6.99, got %s", m.String())
	}

	if err := json.Unmarshal([]byte(`4.5`), &m); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if m.String() != "4.50" {
		t.Fatalf("number value want 4.50, got %s", m.String())
	}

	if err := json.Unmarshal([]byte(`"not-a-number"`), &m); err == nil {
		t.Fatalf("expected error for invalid money string")
	}
}

func TestProductEffectivePrice(t *testing.T) {
	price := NewMoneyFromDecimal(decimal.NewFromInt(20))
	sale := NewMoneyFromDecimal(decimal.NewFromFloat(15.9))

	p := Product{Price: price}
	if p.EffectivePrice().String() != "20.00" {
		t.Fatalf("no sale price: want 20.00, got %s", p.EffectivePrice().String())
	}

	p.SalePrice = &sale
	if p.EffectivePrice().String() != "15.90" {
		t.Fatalf("sale price: want 15.90, got %s", p.EffectivePrice().String())
	}

	zero := NewMoneyFromDecimal(decimal.Zero)
	p.SalePrice = &zero
	if p.EffectivePrice().String() != "20.00" {
		t.Fatalf("zero sale price ignored: want 20.00, got %s", p.EffectivePrice().String())
	}
}
