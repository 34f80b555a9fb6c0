package common

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	inErrors "github.com/NadeeshaMedagama/modgoviya/internal/errors"
	"github.com/NadeeshaMedagama/modgoviya/internal/log"
)

// MintToken issues the bearer credential handed to a shopper at login.
func MintToken(c context.Context, userID uuid.UUID, secretKey string) (string, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "MintToken").
		Str(log.KeyUserID, userID.String()).
		Logger()

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    TokenIssuer,
		Subject:   userID.String(),
		Audience:  jwt.ClaimStrings{TokenAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
	if err != nil {
		err = fmt.Errorf("failed signing token with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	return token, nil
}

// VerifyToken validates a bearer credential and returns the shopper id it was
// minted for.
func VerifyToken(c context.Context, token string, secretKey string) (uuid.UUID, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VerifyToken").
		Logger()

	claims := jwt.RegisteredClaims{}
	jwtToken, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		},
		jwt.WithAudience(TokenAudience),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(TokenIssuer),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing with claims with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}
	if !jwtToken.Valid {
		logger.Error().Err(inErrors.ErrTokenInvalid).Msg(inErrors.ErrTokenInvalid.Error())
		return uuid.Nil, inErrors.ErrTokenInvalid
	}

	if claims.Subject == "" {
		logger.Error().Err(inErrors.ErrEmptySubject).Msg(inErrors.ErrEmptySubject.Error())
		return uuid.Nil, inErrors.ErrEmptySubject
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		err = fmt.Errorf("failed parsing subject=%s with error=%w", claims.Subject, err)
		logger.Error().Err(err).Msg(err.Error())
		return uuid.Nil, err
	}
	return userID, nil
}

// TokenExpiry reads the expiry of a bearer credential without verifying the
// signature. The client holds no signing key; it only needs to know when to
// ask the shopper to sign in again.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed parsing token with error=%w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, inErrors.ErrTokenInvalid
	}
	return claims.ExpiresAt.Time, nil
}

type jwtUserID struct{}

func AttachUserIDToContext(c context.Context, id uuid.UUID) context.Context {
	return context.WithValue(c, jwtUserID{}, id)
}

func UserIDFromContext(c context.Context) (uuid.UUID, error) {
	id, ok := c.Value(jwtUserID{}).(uuid.UUID)
	if !ok {
		return uuid.Nil, inErrors.ErrEmptySubject
	}
	return id, nil
}
