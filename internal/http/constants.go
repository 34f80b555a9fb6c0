package http

const (
	KeyHeaderContentType = "Content-Type"
	KeyHeaderRequestId   = "X-Request-Id"
	ValueApplicationJson = "application/json"
)
