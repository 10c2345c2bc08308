package main

import (
	"github.com/storepanel/internal/config"
	"github.com/storepanel/internal/logger"
	"github.com/storepanel/internal/models"

	"github.com/shopspring/decimal"
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

	// 添加示例店铺
	stores := []models.Store{
		{
			Name:          "中央市集",
			Slug:          "central-market",
			Description:   "覆盖市中心的综合生鲜超市",
			Email:         "central@storepanel.local",
			Phone:         "+1-202-555-0101",
			Address:       "1 Market Street",
			City:          "San Francisco",
			Country:       "US",
			Currency:      "USD",
			VATPercentage: 8.5,
			Theme:         "light",
			DeliveryFee:   models.NewMoneyFromDecimal(decimal.NewFromFloat(4.99)),
			IsActive:      true,
		},
		{
			Name:          "海湾咖啡",
			Slug:          "bayside-coffee",
			Description:   "精品咖啡与烘焙食品",
			Email:         "bayside@storepanel.local",
			Phone:         "+1-202-555-0102",
			Address:       "88 Harbor Ave",
			City:          "Seattle",
			Country:       "US",
			Currency:      "USD",
			VATPercentage: 10,
			Theme:         "dark",
			DeliveryFee:   models.NewMoneyFromDecimal(decimal.NewFromFloat(2.5)),
			IsActive:      true,
		},
	}

	for _, store := range stores {
		var existing models.Store
		if err := models.DB.Where("slug = ?", store.Slug).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&store).Error; err != nil {
				stdLog.Printf("Failed to create store %s: %v", store.Slug, err)
			} else {
				stdLog.Printf("Created store: %s", store.Slug)
			}
		} else {
			stdLog.Printf("Store already exists: %s", store.Slug)
		}
	}

	// 获取店铺ID
	storeIDs := map[string]uint{}
	var storeList []models.Store
	if err := models.DB.Where("slug IN ?", []string{"central-market", "bayside-coffee"}).Find(&storeList).Error; err != nil {
		stdLog.Printf("Failed to load stores: %v", err)
	}
	for _, store := range storeList {
		storeIDs[store.Slug] = store.ID
	}
	centralID := storeIDs["central-market"]
	baysideID := storeIDs["bayside-coffee"]

	// 添加店铺管理员（默认密码仅用于演示环境）
	hash, err := bcrypt.GenerateFromPassword([]byte("storepanel-demo"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("Failed to hash demo password: %v", err)
	}
	admins := []models.User{
		{
			Name:         "Alice Chen",
			Email:        "alice@storepanel.local",
			PasswordHash: string(hash),
			Role:         models.RoleStoreAdmin,
			StoreID:      &centralID,
			IsActive:     true,
		},
		{
			Name:         "Bruno Costa",
			Email:        "bruno@storepanel.local",
			PasswordHash: string(hash),
			Role:         models.RoleStoreAdmin,
			StoreID:      &baysideID,
			IsActive:     true,
		},
	}
	for _, admin := range admins {
		var existing models.User
		if err := models.DB.Where("email = ?", admin.Email).First(&existing).Error; err != nil {
			if err := models.DB.Create(&admin).Error; err != nil {
				stdLog.Printf("Failed to create admin %s: %v", admin.Email, err)
			} else {
				stdLog.Printf("Created store admin: %s", admin.Email)
			}
		} else {
			stdLog.Printf("Store admin already exists: %s", admin.Email)
		}
	}

	// 添加分类
	categories := []models.Category{
		{StoreID: centralID, Name: "生鲜果蔬", Slug: "fresh-produce", IsActive: true, SortOrder: 1},
		{StoreID: centralID, Name: "日用百货", Slug: "household", IsActive: true, SortOrder: 2},
		{StoreID: baysideID, Name: "咖啡豆", Slug: "coffee-beans", IsActive: true, SortOrder: 1},
		{StoreID: baysideID, Name: "烘焙点心", Slug: "pastries", IsActive: true, SortOrder: 2},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("store_id = ? AND slug = ?", cat.StoreID, cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 添加品牌
	brands := []models.Brand{
		{StoreID: centralID, Name: "绿谷农场", Slug: "green-valley", IsActive: true, SortOrder: 1},
		{StoreID: baysideID, Name: "火山烘焙", Slug: "volcano-roast", IsActive: true, SortOrder: 1},
	}
	for _, brand := range brands {
		var existing models.Brand
		if err := models.DB.Where("store_id = ? AND slug = ?", brand.StoreID, brand.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&brand).Error; err != nil {
				stdLog.Printf("Failed to create brand %s: %v", brand.Slug, err)
			} else {
				stdLog.Printf("Created brand: %s", brand.Slug)
			}
		} else {
			stdLog.Printf("Brand already exists: %s", brand.Slug)
		}
	}

	// 获取分类/品牌ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	models.DB.Where("slug IN ?", []string{"fresh-produce", "household", "coffee-beans", "pastries"}).Find(&categoryList)
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}
	brandIDs := map[string]uint{}
	var brandList []models.Brand
	models.DB.Where("slug IN ?", []string{"green-valley", "volcano-roast"}).Find(&brandList)
	for _, brand := range brandList {
		brandIDs[brand.Slug] = brand.ID
	}

	// 添加商品
	freshID := categoryIDs["fresh-produce"]
	beansID := categoryIDs["coffee-beans"]
	greenValleyID := brandIDs["green-valley"]
	volcanoID := brandIDs["volcano-roast"]
	salePrice := models.NewMoneyFromDecimal(decimal.NewFromFloat(15.9))
	products := []models.Product{
		{
			StoreID:     centralID,
			CategoryID:  &freshID,
			BrandID:     &greenValleyID,
			Name:        "有机苹果 1kg",
			Slug:        "organic-apples",
			SKU:         "CM-FRUIT-001",
			Description: "当季有机红富士，产地直供",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(6.99)),
			Stock:       120,
			IsAvailable: true,
			IsFeatured:  true,
			Images:      models.StringArray([]string{"https://images.unsplash.com/photo-1568702846914-96b305d2aaeb?w=800"}),
			SortOrder:   1,
		},
		{
			StoreID:     centralID,
			CategoryID:  &freshID,
			Name:        "散养鸡蛋 12枚",
			Slug:        "free-range-eggs",
			SKU:         "CM-FRUIT-002",
			Description: "散养土鸡蛋，冷链配送",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(5.49)),
			Stock:       80,
			IsAvailable: true,
			SortOrder:   2,
		},
		{
			StoreID:     baysideID,
			CategoryID:  &beansID,
			BrandID:     &volcanoID,
			Name:        "埃塞俄比亚耶加雪菲 250g",
			Slug:        "yirgacheffe-250",
			SKU:         "BC-BEAN-001",
			Description: "浅烘，花香与柑橘调性",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(18.5)),
			SalePrice:   &salePrice,
			Stock:       45,
			IsAvailable: true,
			IsFeatured:  true,
			SortOrder:   1,
		},
	}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("store_id = ? AND sku = ?", product.StoreID, product.SKU).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.SKU, err)
			} else {
				stdLog.Printf("Created product: %s", product.SKU)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.SKU)
		}
	}

	// 添加顾客
	customers := []models.Customer{
		{StoreID: centralID, Name: "Dana Wu", Email: "dana@example.com", Phone: "+1-202-555-0111", City: "San Francisco", IsActive: true},
		{StoreID: centralID, Name: "Evan Park", Email: "evan@example.com", Phone: "+1-202-555-0112", City: "Oakland", IsActive: true},
		{StoreID: baysideID, Name: "Farah Ali", Email: "farah@example.com", Phone: "+1-202-555-0113", City: "Seattle", IsActive: true},
	}
	for _, customer := range customers {
		var existing models.Customer
		if err := models.DB.Where("store_id = ? AND phone = ?", customer.StoreID, customer.Phone).First(&existing).Error; err != nil {
			if err := models.DB.Create(&customer).Error; err != nil {
				stdLog.Printf("Failed to create customer %s: %v", customer.Email, err)
			} else {
				stdLog.Printf("Created customer: %s", customer.Email)
			}
		} else {
			stdLog.Printf("Customer already exists: %s", customer.Email)
		}
	}

	// 添加一条草稿通知
	var centralAdmin models.User
	if err := models.DB.Where("email = ?", "alice@storepanel.local").First(&centralAdmin).Error; err != nil {
		stdLog.Printf("Failed to load central admin: %v", err)
	}
	notification := models.Notification{
		StoreID:        centralID,
		Title:          "周末生鲜特惠",
		Body:           "本周六全场生鲜九折，满 50 美元免配送费。",
		Channels:       models.StringArray{"app"},
		TargetAudience: "all",
		Status:         "draft",
		CreatedBy:      centralAdmin.ID,
	}
	var existingNotification models.Notification
	if err := models.DB.Where("store_id = ? AND title = ?", notification.StoreID, notification.Title).First(&existingNotification).Error; err != nil {
		if err := models.DB.Create(&notification).Error; err != nil {
			stdLog.Printf("Failed to create notification: %v", err)
		} else {
			stdLog.Printf("Created notification: %s", notification.Title)
		}
	} else {
		stdLog.Printf("Notification already exists: %s", notification.Title)
	}

	stdLog.Printf("Seed data ready: %d stores, %d categories, %d brands, %d products, %d customers",
		len(stores), len(categories), len(brands), len(products), len(customers))
}
