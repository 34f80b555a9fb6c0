package common

const (
	AppName         = "modgoviya"
	AppApiService   = "modgoviya-api"
	AppShopClient   = "modgoviya-shop"
	AppCheckoutFlow = "modgoviya-checkout"
	TokenIssuer     = "modgoviya-api"
	TokenAudience   = "modgoviya-shopper"
	ApiBasePath     = "/api"
)
