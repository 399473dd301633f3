package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "Inkwell"
	JWTExpirationTime        = time.Hour * 24
	RefreshExpiration        = time.Hour * 24 * 7
	TokenTypeAccess          = "access"
	TokenTypeRefresh         = "refresh"
)

// UserClaims 定义了我们 Token 中需要包含的业务信息
type UserClaims struct {
	UserID    uint64   `json:"user_id"`
	Roles     []string `json:"roles"`
	TokenType string   `json:"token_type"`
	jwt.RegisteredClaims
}
