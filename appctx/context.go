package appctx

type ContextKey string

const (
	ContextKeyToken         ContextKey = "Token"
	ContextKeyUserId        ContextKey = "UserId"
	ContextKeyUsername      ContextKey = "Username"
	ContextKeyUserRole      ContextKey = "UserRole"
	ContextKeyCorrelationId ContextKey = "CorrelationId"
)
