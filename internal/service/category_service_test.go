package service

import (
	"testing"
)

func setupCategoryServiceTest(t *testing.T) (*serviceTestEnv, *CategoryService) {
	t.Helper()
	env := setupServiceTest(t)
	svc := NewCategoryService(env.categoryRepo, env.activity)
	return env, svc
}

func TestCategoryParentSingleLevelNesting(t *testing.T) {
	env, svc := setupCategoryServiceTest(t)
	store := env.createStore(t, "central-market", 0)
	other := env.createStore(t, "bayside-coffee", 0)
	scope := storeScope(store.ID)

	parent, err := svc.Create(scope, CategoryInput{Name: "Produce", Slug: "produce"}, testActor())
	if err != nil {
		t.Fatalf("create parent failed: %v", err)
	}
	child, err := svc.Create(scope, CategoryInput{
		Name: "Fruit", Slug: "fruit", ParentID: &parent.ID,
	}, testActor())
	if err != nil {
		t.Fatalf("create child failed: %v", err)
	}
	if child.ParentID == nil || *child.ParentID != parent.ID {
		t.Fatalf("parent id want %d, got %v", parent.ID, child.ParentID)
	}

	// 二层嵌套拒绝
	if _, err := svc.Create(scope, CategoryInput{
		Name: "Citrus", Slug: "citrus", ParentID: &child.ID,
	}, testActor()); err == nil {
		t.Fatalf("expected validation error for two-level nesting")
	}

	// 跨店上级拒绝
	foreign, err := svc.Create(storeScope(other.ID), CategoryInput{Name: "Beans", Slug: "beans"}, testActor())
	if err != nil {
		t.Fatalf("create foreign category failed: %v", err)
	}
	if _, err := svc.Create(scope, CategoryInput{
		Name: "Roast", Slug: "roast", ParentID: &foreign.ID,
	}, testActor()); err == nil {
		t.Fatalf("expected validation error for cross-store parent")
	}

	// 不能把自己设为上级
	if _, err := svc.Update(scope, parent.ID, CategoryInput{
		Name: "Produce", Slug: "produce", ParentID: &parent.ID,
	}, testActor()); err == nil {
		t.Fatalf("expected validation error for self parent")
	}
}

func TestCategoryDeleteBlockedByChildren(t *testing.T) {
	env, svc := setupCategoryServiceTest(t)
	store := env.createStore(t, "central-market", 0)
	scope := storeScope(store.ID)

	parent, err := svc.Create(scope, CategoryInput{Name: "Produce", Slug: "produce"}, testActor())
	if err != nil {
		t.Fatalf("create parent failed: %v", err)
	}
	child, err := svc.Create(scope, CategoryInput{
		Name: "Fruit", Slug: "fruit", ParentID: &parent.ID,
	}, testActor())
	if err != nil {
		t.Fatalf("create child failed: %v", err)
	}

	err = svc.Delete(scope, parent.ID, testActor())
	if _, ok := AsValidationError(err); !ok {
		t.Fatalf("want validation error for parent with children, got %v", err)
	}

	if err := svc.Delete(scope, child.ID, testActor()); err != nil {
		t.Fatalf("delete child failed: %v", err)
	}
	if err := svc.Delete(scope, parent.ID, testActor()); err != nil {
		t.Fatalf("delete parent after child failed: %v", err)
	}
}
