package constants

const (
	ContextKeyUserID = "user_id"

	MinPasswordLength = 8
	MinEmailLength    = 8

	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
