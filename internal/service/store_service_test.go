package service

import (
	"errors"
	"testing"
)

func validStoreInput(slug string) StoreInput {
	return StoreInput{
		Name:     "Store " + slug,
		Slug:     slug,
		Currency: "usd",
		Theme:    "light",
	}
}

func TestStoreCreateRequiresSuperAdmin(t *testing.T) {
	env := setupServiceTest(t)
	svc := NewStoreService(env.storeRepo, env.activity)

	_, err := svc.Create(storeScope(1), validStoreInput("central-market"), testActor())
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestStoreCreateNormalizesCurrency(t *testing.T) {
	env := setupServiceTest(t)
	svc := NewStoreService(env.storeRepo, env.activity)

	store, err := svc.Create(superScope(), validStoreInput("central-market"), testActor())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if store.Currency != "USD" {
		t.Fatalf("currency want USD, got %s", store.Currency)
	}
	if !store.IsActive {
		t.Fatalf("expected new store active by default")
	}
}

func TestStoreCreateValidation(t *testing.T) {
	env := setupServiceTest(t)
	svc := NewStoreService(env.storeRepo, env.activity)

	input := StoreInput{Slug: "Bad Slug!", Currency: "dollars"}
	_, err := svc.Create(superScope(), input, testActor())
	verr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("want validation error, got %v", err)
	}
	for _, field := range []string{"name", "slug", "currency"} {
		if _, exists := verr.Fields[field]; !exists {
			t.Fatalf("expected field error for %s, got %v", field, verr.Fields)
		}
	}

	bigVAT := 120.0
	input = validStoreInput("vat-store")
	input.VATPercentage = &bigVAT
	_, err = svc.Create(superScope(), input, testActor())
	verr, ok = AsValidationError(err)
	if !ok {
		t.Fatalf("want validation error, got %v", err)
	}
	if _, exists := verr.Fields["vat_percentage"]; !exists {
		t.Fatalf("expected vat_percentage error, got %v", verr.Fields)
	}
}

func TestStoreCreateSlugConflict(t *testing.T) {
	env := setupServiceTest(t)
	svc := NewStoreService(env.storeRepo, env.activity)

	if _, err := svc.Create(superScope(), validStoreInput("central-market"), testActor()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := svc.Create(superScope(), validStoreInput("central-market"), testActor())
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("want ErrSlugExists, got %v", err)
	}
}

func TestStoreUpdateKeepsSlugOnSelf(t *testing.T) {
	env := setupServiceTest(t)
	svc := NewStoreService(env.storeRepo, env.activity)

	store, err := svc.Create(superScope(), validStoreInput("central-market"), testActor())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	input := validStoreInput("central-market")
	input.Name = "Renamed Market"
	updated, err := svc.Update(superScope(), store.ID, input, testActor())
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Renamed Market" {
		t.Fatalf("name want Renamed Market, got %s", updated.Name)
	}
}

func TestStoreAdminCannotToggleActive(t *testing.T) {
	env := setupServiceTest(t)
	svc := NewStoreService(env.storeRepo, env.activity)

	store, err := svc.Create(superScope(), validStoreInput("central-market"), testActor())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	inactive := false
	input := validStoreInput("central-market")
	input.IsActive = &inactive
	updated, err := svc.Update(storeScope(store.ID), store.ID, input, testActor())
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.IsActive {
		t.Fatalf("store admin must not disable own store")
	}

	updated, err = svc.Update(superScope(), store.ID, input, testActor())
	if err != nil {
		t.Fatalf("super update failed: %v", err)
	}
	if updated.IsActive {
		t.Fatalf("super admin should disable store")
	}
}

func TestStoreGetCrossTenantForbidden(t *testing.T) {
	env := setupServiceTest(t)
	svc := NewStoreService(env.storeRepo, env.activity)

	store, err := svc.Create(superScope(), validStoreInput("central-market"), testActor())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	other, err := svc.Create(superScope(), validStoreInput("bayside-coffee"), testActor())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Get(storeScope(store.ID), store.ID); err != nil {
		t.Fatalf("own store get failed: %v", err)
	}
	if _, err := svc.Get(storeScope(store.ID), other.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("want ErrForbidden for cross-tenant get, got %v", err)
	}
}

func TestStoreDeleteRequiresSuperAdmin(t *testing.T) {
	env := setupServiceTest(t)
	svc := NewStoreService(env.storeRepo, env.activity)

	store, err := svc.Create(superScope(), validStoreInput("central-market"), testActor())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(storeScope(store.ID), store.ID, testActor()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
	if err := svc.Delete(superScope(), store.ID, testActor()); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(superScope(), store.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
}

func TestStoreListForbiddenForStoreAdmin(t *testing.T) {
	env := setupServiceTest(t)
	svc := NewStoreService(env.storeRepo, env.activity)

	_, _, err := svc.List(storeScope(1), 1, "", nil)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestStoreDetailAggregatesTenantData(t *testing.T) {
	env := setupServiceTest(t)
	svc := NewStoreService(env.storeRepo, env.activity)
	store := env.createStore(t, "central-market", 0)
	env.createProduct(t, store.ID, "CM-001", 12.50, 5)
	env.createProduct(t, store.ID, "CM-002", 8.00, 3)
	env.createCustomer(t, store.ID, "dana@example.com")

	detail, err := svc.Detail(storeScope(store.ID), store.ID)
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if detail.Store == nil || detail.Store.ID != store.ID {
		t.Fatalf("detail store mismatch: %+v", detail.Store)
	}
	if detail.Counts.Products != 2 {
		t.Fatalf("product count want 2, got %d", detail.Counts.Products)
	}
	if detail.Counts.Customers != 1 {
		t.Fatalf("customer count want 1, got %d", detail.Counts.Customers)
	}
	if len(detail.RecentProducts) != 2 {
		t.Fatalf("recent products want 2, got %d", len(detail.RecentProducts))
	}
	if len(detail.RecentOrders) != 0 {
		t.Fatalf("recent orders want 0, got %d", len(detail.RecentOrders))
	}

	other := env.createStore(t, "bayside-coffee", 0)
	if _, err := svc.Detail(storeScope(store.ID), other.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("cross-tenant detail want ErrForbidden, got %v", err)
	}
}

func TestStoreCreateContactAndTimezone(t *testing.T) {
	env := setupServiceTest(t)
	svc := NewStoreService(env.storeRepo, env.activity)

	input := validStoreInput("central-market")
	input.Whatsapp = "+1-202-555-0143"
	input.Website = "https://central-market.example"
	input.Timezone = "Europe/Amsterdam"
	input.Settings = map[string]interface{}{"receipt_footer": "thank you"}
	store, err := svc.Create(superScope(), input, testActor())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if store.Whatsapp != "+1-202-555-0143" || store.Website != "https://central-market.example" {
		t.Fatalf("contact fields not persisted: %q %q", store.Whatsapp, store.Website)
	}
	if store.Timezone != "Europe/Amsterdam" {
		t.Fatalf("timezone want Europe/Amsterdam, got %s", store.Timezone)
	}
	if store.Settings["receipt_footer"] != "thank you" {
		t.Fatalf("settings not persisted: %v", store.Settings)
	}

	// 未指定时区时回落到 UTC
	plain, err := svc.Create(superScope(), validStoreInput("bayside-coffee"), testActor())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if plain.Timezone != "UTC" {
		t.Fatalf("timezone want UTC, got %s", plain.Timezone)
	}

	input = validStoreInput("harbor-deli")
	input.Website = "not-a-url"
	input.Timezone = "Mars/Olympus"
	_, err = svc.Create(superScope(), input, testActor())
	verr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("want validation error, got %v", err)
	}
	for _, field := range []string{"website", "timezone"} {
		if _, exists := verr.Fields[field]; !exists {
			t.Fatalf("expected field error for %s, got %v", field, verr.Fields)
		}
	}
}
