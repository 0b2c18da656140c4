package service

import "testing"

func TestCatalogListKeywordFilter(t *testing.T) {
	catalog := NewCatalogService()

	all := catalog.List("")
	if len(all) == 0 {
		t.Fatalf("expected demo products")
	}

	// 关键字同时匹配标题、卖家与分类，大小写不敏感
	byTitle := catalog.List("coffee")
	if len(byTitle) != 1 || byTitle[0].ID != "cm-350" {
		t.Fatalf("expected coffee maker, got %+v", byTitle)
	}
	bySeller := catalog.List("AUDIOHUB")
	if len(bySeller) != 1 || bySeller[0].ID != "wh-1000" {
		t.Fatalf("expected headphones by seller, got %+v", bySeller)
	}
	byCategory := catalog.List("home & kitchen")
	if len(byCategory) != 2 {
		t.Fatalf("expected 2 kitchen products, got %d", len(byCategory))
	}
	if len(catalog.List("nonexistent")) != 0 {
		t.Fatalf("expected no matches")
	}
}

func TestCatalogGetByID(t *testing.T) {
	catalog := NewCatalogService()

	product, err := catalog.GetByID("sw-200")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if product.Title == "" || len(product.Options) != 2 {
		t.Fatalf("unexpected product: %+v", product)
	}
	if _, err := catalog.GetByID("missing"); err != ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
