package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopora-next/internal/config"
	"github.com/shopora-next/internal/constants"
	"github.com/shopora-next/internal/logger"
	"github.com/shopora-next/internal/models"
	"github.com/shopora-next/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加演示用户
	demoUsers := []struct {
		Email       string
		Password    string
		DisplayName string
		Locale      string
	}{
		{Email: "shopper@example.com", Password: "shopper123", DisplayName: "Demo Shopper", Locale: "en"},
		{Email: "buyer@example.com", Password: "buyer123", DisplayName: "演示买家", Locale: "zh-CN"},
	}

	userIDs := map[string]uint{}
	for _, du := range demoUsers {
		var existing models.User
		if err := models.DB.Where("email = ?", du.Email).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", du.Email)
			userIDs[du.Email] = existing.ID
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(du.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Printf("Failed to hash password for %s: %v", du.Email, err)
			continue
		}
		user := models.User{
			Email:        du.Email,
			PasswordHash: string(hash),
			DisplayName:  du.DisplayName,
			Locale:       du.Locale,
			Status:       constants.UserStatusActive,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", du.Email, err)
			continue
		}
		stdLog.Printf("Created user: %s", du.Email)
		userIDs[du.Email] = user.ID
	}

	shopperID, ok := userIDs["shopper@example.com"]
	if !ok {
		stdLog.Fatalf("Demo shopper missing, cannot seed snapshots")
	}

	snapshotRepo := repository.NewSnapshotRepository(models.DB)
	seedSnapshot := func(prefix string, userID uint, value interface{}) {
		key := fmt.Sprintf("%s:%d", prefix, userID)
		payload, err := json.Marshal(value)
		if err != nil {
			stdLog.Printf("Failed to marshal snapshot %s: %v", key, err)
			return
		}
		if _, err := snapshotRepo.Upsert(key, models.JSON(payload)); err != nil {
			stdLog.Printf("Failed to seed snapshot %s: %v", key, err)
			return
		}
		stdLog.Printf("Seeded snapshot: %s", key)
	}

	// 预置资料（邮箱已验证，手机号待验证，便于演示结算资格差异）
	seedSnapshot(constants.SnapshotKeyProfile, shopperID, models.Profile{
		FirstName:     "Demo",
		LastName:      "Shopper",
		Email:         "shopper@example.com",
		EmailVerified: true,
		Phone:         "+1 555 0100",
		PhoneVerified: false,
		Gender:        "other",
		DateOfBirth:   "1995-04-12",
	})

	// 预置收货地址
	homeID := uuid.NewString()
	seedSnapshot(constants.SnapshotKeyLocations, shopperID, models.LocationState{
		Locations: []models.DeliveryLocation{
			{
				ID:          homeID,
				Label:       "Home",
				AddressLine: "12 Riverside Ave, Apt 4B",
				City:        "Portland",
				Region:      "OR",
				Country:     "US",
				Notes:       "Leave at front desk",
				IsPrimary:   true,
			},
			{
				ID:          uuid.NewString(),
				Label:       "Office",
				AddressLine: "300 Market St, Floor 8",
				City:        "Portland",
				Region:      "OR",
				Country:     "US",
			},
		},
	})

	// 预置购物车（单价在加入时固化）
	seedSnapshot(constants.SnapshotKeyCart, shopperID, models.CartState{
		Lines: []models.CartLine{
			{
				ID:                "wh-1000",
				Title:             "Wireless Noise-Cancelling Headphones",
				Image:             "/images/products/headphones.jpg",
				Seller:            "AudioHub",
				UnitPrice:         models.NewMoneyFromFloat(89.99),
				OriginalUnitPrice: moneyPtr(129.99),
				Quantity:          1,
				Options: []models.OptionSelection{
					{Name: "Color", Value: "Black"},
				},
			},
			{
				ID:        "cm-350",
				Title:     "Ceramic Pour-Over Coffee Maker",
				Image:     "/images/products/coffeemaker.jpg",
				Seller:    "BrewCraft",
				UnitPrice: models.NewMoneyFromFloat(34.50),
				Quantity:  2,
			},
		},
	})

	// 预置心愿单
	seedSnapshot(constants.SnapshotKeyWishlist, shopperID, models.WishlistState{
		Items: []models.WishlistItem{
			{
				ID:        "sw-200",
				Title:     "Smart Watch Series 5",
				Image:     "/images/products/smartwatch.jpg",
				Seller:    "TechLine",
				Price:     models.NewMoneyFromFloat(149.00),
				Rating:    4.3,
				SoldCount: 980,
				AddedAt:   time.Now().Add(-48 * time.Hour),
			},
		},
	})

	fmt.Println("\n✅ Demo data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 2 Demo users (shopper@example.com / buyer@example.com)")
	fmt.Println("- Profile snapshot (email verified, phone pending)")
	fmt.Println("- 2 Delivery locations (Home primary)")
	fmt.Println("- Cart with 2 lines")
	fmt.Println("- Wishlist with 1 item")
}

func moneyPtr(amount float64) *models.Money {
	m := models.NewMoneyFromFloat(amount)
	return &m
}
