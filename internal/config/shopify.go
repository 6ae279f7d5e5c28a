package config

import "time"

// Shopify holds the Admin API settings. ShopDomain and AccessToken describe
// the offline session handed to the app by the platform's auth middleware.
type Shopify struct {
	ShopDomain  string `env:"SHOPIFY_SHOP_DOMAIN,required"`
	AccessToken string `env:"SHOPIFY_ACCESS_TOKEN,required"`
	APIVersion  string `env:"SHOPIFY_API_VERSION" envDefault:"2024-01"`

	// AdminURL overrides the GraphQL endpoint derived from the shop domain.
	AdminURL string `env:"SHOPIFY_ADMIN_URL"`

	Timeout   time.Duration `env:"SHOPIFY_TIMEOUT" envDefault:"10s"`
	RateLimit float64       `env:"SHOPIFY_RATE_LIMIT" envDefault:"2"`
	RateBurst int           `env:"SHOPIFY_RATE_BURST" envDefault:"4"`
}
