package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, JWT access token'ının payload'ı.
//
// jwt.RegisteredClaims embed edilir — exp, iat, sub gibi standart
// alanları sağlar. UserID ve Email bizim custom claim'lerimiz.
type TokenClaims struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	jwt.RegisteredClaims
}

// TokenPair, login/refresh sonucu dönen token çifti.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse, login/register sonucu dönen kullanıcı + token bilgisi.
type AuthResponse struct {
	User   *User     `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// RefreshRequest, access token yenileme isteği.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
