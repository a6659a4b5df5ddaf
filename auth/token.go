package auth

import (
	"fmt"
	"time"

	"plainchat/errors"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "plainchat"

// FileClaims authorizes one download of one stored file.
// The token is minted by the downloader and signed with the symmetric key it
// shares with the serving peer, so holding the key is the proof of membership.
type FileClaims struct {
	FileID string `json:"fid"`
	PeerID string `json:"pid"`
	jwt.RegisteredClaims
}

func GenerateFileToken(key []byte, peerID, fileID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &FileClaims{
		FileID: fileID,
		PeerID: peerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   peerID,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// ValidateFileToken checks signature, expiry and that the token targets fileID.
func ValidateFileToken(key []byte, tokenString, fileID string) (*FileClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &FileClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return key, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*FileClaims)
	if !ok || !token.Valid {
		return nil, errors.ErrInvalidToken
	}
	if claims.FileID != fileID {
		return nil, fmt.Errorf("%w: token issued for another file", errors.ErrInvalidToken)
	}
	return claims, nil
}
