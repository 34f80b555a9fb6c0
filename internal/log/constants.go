package log

const (
	KeyAppName       = "app"
	KeyRequestID     = "requestId"
	KeyProcess       = "process"
	KeyTag           = "tag"
	KeyConfig        = "config"
	KeyEmail         = "email"
	KeyUserID        = "userId"
	KeyProductID     = "productId"
	KeyCartItemID    = "cartItemId"
	KeyCropID        = "cropId"
	KeyOrderID       = "orderId"
	KeyQuantity      = "quantity"
	KeyCartVersion   = "cartVersion"
	KeyCheckoutStep  = "checkoutStep"
	KeyProvider      = "provider"
	KeyRequestBody   = "requestBody"
	KeyRequestHost   = "host"
	KeyRequestIp     = "requesterIP"
	KeyRequestMethod = "requestMethod"
	KeyRequestURI    = "requestURI"
	KeyRequestURL    = "requestURL"
	KeyResponseCode  = "responseCode"
	KeyToken         = "token"
	KeyTraceID       = "traceId"
	KeySpanID        = "spanId"
)
