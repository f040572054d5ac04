package auth

import "time"

// Claims representa la información extraída del token.
type Claims struct {
	UserID   string
	Username string
}

// Token es lo que se entrega al cliente tras un login exitoso.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}
