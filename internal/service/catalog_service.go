package service

import (
	"strings"

	"github.com/shopora-next/internal/models"
)

// CatalogService 商品目录服务（演示数据常驻内存，不落库）
type CatalogService struct {
	products []models.Product
}

// NewCatalogService 创建目录服务
func NewCatalogService() *CatalogService {
	return &CatalogService{products: demoProducts()}
}

// List 商品列表，可按关键字过滤（标题、卖家、分类）
func (s *CatalogService) List(keyword string) []models.Product {
	normalized := strings.ToLower(strings.TrimSpace(keyword))
	if normalized == "" {
		result := make([]models.Product, len(s.products))
		copy(result, s.products)
		return result
	}
	result := make([]models.Product, 0)
	for _, product := range s.products {
		haystack := strings.ToLower(product.Title + " " + product.Seller + " " + product.Category)
		if strings.Contains(haystack, normalized) {
			result = append(result, product)
		}
	}
	return result
}

// GetByID 按 ID 获取商品
func (s *CatalogService) GetByID(id string) (*models.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			product := s.products[i]
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

func moneyPtr(amount float64) *models.Money {
	m := models.NewMoneyFromFloat(amount)
	return &m
}

func demoProducts() []models.Product {
	return []models.Product{
		{
			ID:            "wh-1000",
			Title:         "Wireless Noise-Cancelling Headphones",
			Description:   "Over-ear headphones with 30h battery life and active noise cancellation.",
			Image:         "/images/products/headphones.jpg",
			Seller:        "AudioHub",
			Category:      "Electronics",
			Price:         models.NewMoneyFromFloat(89.99),
			OriginalPrice: moneyPtr(129.99),
			Rating:        4.6,
			SoldCount:     2140,
			Badges:        []string{"Best Seller"},
			Options: []models.ProductOption{
				{Name: "Color", Values: []string{"Black", "Silver", "Midnight Blue"}},
			},
		},
		{
			ID:          "sw-200",
			Title:       "Smart Watch Series 5",
			Description: "Fitness tracking, heart-rate monitor, 7-day battery.",
			Image:       "/images/products/smartwatch.jpg",
			Seller:      "TechLine",
			Category:    "Electronics",
			Price:       models.NewMoneyFromFloat(149.00),
			Rating:      4.3,
			SoldCount:   980,
			Options: []models.ProductOption{
				{Name: "Band", Values: []string{"Sport", "Leather"}},
				{Name: "Size", Values: []string{"40mm", "44mm"}},
			},
		},
		{
			ID:            "cm-350",
			Title:         "Ceramic Pour-Over Coffee Maker",
			Description:   "Hand-glazed ceramic dripper with reusable filter.",
			Image:         "/images/products/coffeemaker.jpg",
			Seller:        "BrewCraft",
			Category:      "Home & Kitchen",
			Price:         models.NewMoneyFromFloat(34.50),
			OriginalPrice: moneyPtr(42.00),
			Rating:        4.8,
			SoldCount:     560,
			Badges:        []string{"Handmade"},
		},
		{
			ID:          "bp-77",
			Title:       "Water-Resistant Laptop Backpack",
			Description: "Fits 15.6\" laptops, USB charging port, anti-theft pocket.",
			Image:       "/images/products/backpack.jpg",
			Seller:      "UrbanGear",
			Category:    "Bags",
			Price:       models.NewMoneyFromFloat(45.90),
			Rating:      4.5,
			SoldCount:   1320,
			Options: []models.ProductOption{
				{Name: "Color", Values: []string{"Charcoal", "Navy", "Olive"}},
			},
		},
		{
			ID:          "yg-12",
			Title:       "Non-Slip Yoga Mat 6mm",
			Description: "Eco TPE material with alignment lines.",
			Image:       "/images/products/yogamat.jpg",
			Seller:      "FlexFit",
			Category:    "Sports",
			Price:       models.NewMoneyFromFloat(24.99),
			Rating:      4.4,
			SoldCount:   740,
		},
		{
			ID:            "dl-501",
			Title:         "LED Desk Lamp with Wireless Charger",
			Description:   "Three color temperatures, touch dimming, Qi pad in the base.",
			Image:         "/images/products/desklamp.jpg",
			Seller:        "BrightWorks",
			Category:      "Home & Kitchen",
			Price:         models.NewMoneyFromFloat(39.99),
			OriginalPrice: moneyPtr(54.99),
			Rating:        4.2,
			SoldCount:     410,
		},
	}
}
