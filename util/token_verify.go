package util

import (
	"crypto/rsa"
	"errors"

	"sandra-backend/dto"

	"github.com/golang-jwt/jwt/v5"
)

// ParseAccessToken validates an RS256 access token and returns its claims
func ParseAccessToken(tokenString string, publicKey *rsa.PublicKey) (*dto.AuthClaims, error) {
	if publicKey == nil {
		return nil, errors.New("no public key configured for access tokens")
	}

	claims := &dto.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("invalid signing method, expected RS256")
		}
		return publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))

	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired access token")
	}

	if claims.Identity() == "" {
		return nil, errors.New("missing subject (user_id) in access token")
	}

	return claims, nil
}
