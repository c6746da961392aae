package main

import (
	"github.com/tijara-next/internal/config"
	"github.com/tijara-next/internal/logger"
	"github.com/tijara-next/internal/models"

	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	db, err := models.Open(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	})
	if err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	defer func() {
		_ = models.Close(db)
	}()

	if err := models.AutoMigrate(db); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	categories := []models.Category{
		{Slug: "electronics", Name: "Electronics", SortOrder: 1},
		{Slug: "home-kitchen", Name: "Home & Kitchen", SortOrder: 2},
		{Slug: "accessories", Name: "Accessories", SortOrder: 3},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := db.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := db.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := db.Where("slug IN ?", []string{"electronics", "home-kitchen", "accessories"}).Find(&categoryList).Error; err != nil {
		stdLog.Fatalf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	products := []seedProduct{
		{
			CategorySlug:  "electronics",
			Slug:          "wireless-earbuds",
			Name:          "Wireless Earbuds",
			Description:   "Bluetooth 5.3 earbuds with charging case and 24h battery life.",
			Brand:         "Soundr",
			Price:         "22.00",
			ShippingPrice: "5.00",
			CostPrice:     "14.50",
			Stock:         120,
			Images:        []string{"/uploads/products/wireless-earbuds-1.jpg", "/uploads/products/wireless-earbuds-2.jpg"},
			Colors:        []string{"black", "white"},
			IsFeatured:    true,
			Banner:        "/uploads/banners/wireless-earbuds.jpg",
		},
		{
			CategorySlug:  "electronics",
			Slug:          "smart-watch-fit",
			Name:          "Smart Watch Fit",
			Description:   "Fitness tracker with heart-rate monitor and 10-day battery.",
			Brand:         "Pulse",
			Price:         "35.00",
			ShippingPrice: "5.00",
			CostPrice:     "21.00",
			Stock:         80,
			Images:        []string{"/uploads/products/smart-watch-fit-1.jpg"},
			Colors:        []string{"black", "rose-gold"},
			IsFeatured:    true,
			Banner:        "/uploads/banners/smart-watch-fit.jpg",
		},
		{
			CategorySlug:  "home-kitchen",
			Slug:          "electric-kettle-1-7l",
			Name:          "Electric Kettle 1.7L",
			Description:   "Stainless steel kettle with auto shut-off.",
			Brand:         "Hearth",
			Price:         "18.50",
			ShippingPrice: "7.00",
			CostPrice:     "11.00",
			Stock:         60,
			Images:        []string{"/uploads/products/electric-kettle-1.jpg"},
		},
		{
			CategorySlug:  "home-kitchen",
			Slug:          "ceramic-dinner-set",
			Name:          "Ceramic Dinner Set",
			Description:   "12-piece glazed ceramic dinner set.",
			Brand:         "Hearth",
			Price:         "42.00",
			ShippingPrice: "10.00",
			CostPrice:     "26.00",
			Stock:         25,
			Images:        []string{"/uploads/products/ceramic-dinner-set-1.jpg"},
			Colors:        []string{"white", "sand"},
		},
		{
			CategorySlug:  "accessories",
			Slug:          "leather-wallet",
			Name:          "Leather Wallet",
			Description:   "Slim bifold wallet in full-grain leather.",
			Brand:         "Atlas",
			Price:         "14.00",
			ShippingPrice: "3.00",
			CostPrice:     "7.50",
			Stock:         200,
			Images:        []string{"/uploads/products/leather-wallet-1.jpg"},
			Colors:        []string{"brown", "black"},
		},
		{
			CategorySlug:  "accessories",
			Slug:          "canvas-backpack",
			Name:          "Canvas Backpack",
			Description:   "Water-resistant canvas backpack with laptop sleeve.",
			Brand:         "Atlas",
			Price:         "28.00",
			ShippingPrice: "6.00",
			CostPrice:     "16.00",
			Stock:         45,
			Images:        []string{"/uploads/products/canvas-backpack-1.jpg"},
			Colors:        []string{"olive", "navy"},
			IsFeatured:    true,
			Banner:        "/uploads/banners/canvas-backpack.jpg",
		},
	}

	for _, p := range products {
		if err := seedOneProduct(db, categoryIDs, p); err != nil {
			stdLog.Printf("Failed to seed product %s: %v", p.Slug, err)
		} else {
			stdLog.Printf("Seeded product: %s", p.Slug)
		}
	}

	stdLog.Println("Seed complete")
}

type seedProduct struct {
	CategorySlug  string
	Slug          string
	Name          string
	Description   string
	Brand         string
	Price         string
	ShippingPrice string
	CostPrice     string
	Stock         int
	Images        []string
	Colors        []string
	IsFeatured    bool
	Banner        string
}

func seedOneProduct(db *gorm.DB, categoryIDs map[string]uint, p seedProduct) error {
	var existing models.Product
	if err := db.Where("slug = ?", p.Slug).First(&existing).Error; err == nil {
		return nil
	}

	price, err := models.NewMoneyFromString(p.Price)
	if err != nil {
		return err
	}
	shipping, err := models.NewMoneyFromString(p.ShippingPrice)
	if err != nil {
		return err
	}
	cost, err := models.NewMoneyFromString(p.CostPrice)
	if err != nil {
		return err
	}

	product := models.Product{
		CategoryID:    categoryIDs[p.CategorySlug],
		Slug:          p.Slug,
		Name:          p.Name,
		Description:   p.Description,
		Brand:         p.Brand,
		Price:         price,
		ShippingPrice: shipping,
		CostPrice:     cost,
		Stock:         p.Stock,
		Images:        models.StringArray(p.Images),
		Colors:        models.StringArray(p.Colors),
		IsFeatured:    p.IsFeatured,
		Banner:        p.Banner,
	}
	return db.Create(&product).Error
}
