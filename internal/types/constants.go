package types

const (
	ContextUserKey  = "user"
	TokenCookieName = "token"
)
