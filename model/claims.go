package model

import "github.com/golang-jwt/jwt/v5"

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// AppClaims is the signed claim set carried by both access and refresh tokens.
// iat/exp come from the embedded RegisteredClaims.
type AppClaims struct {
	TokenType string   `json:"tokenType"`
	LoginID   string   `json:"loginId"`
	Roles     []string `json:"role"`
	jwt.RegisteredClaims
}
