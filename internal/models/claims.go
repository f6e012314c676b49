package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims carries the authenticated caller's identity through the
// request context. Core operations receive the user id explicitly; no
// service reads ambient global state.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	TokenVersion int    `json:"token_version"`
}
