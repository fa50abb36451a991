package service

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "helpdesk-system/pkg/errors"
)

// JwtCustomClaim - полезная нагрузка токена: кто и с какой ролью.
type JwtCustomClaim struct {
	UserID         uint64 `json:"userId"`
	Role           string `json:"role"`
	IsRefreshToken bool   `json:"isRefresh"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateTokens(userID uint64, role string) (access string, refresh string, refreshID string, err error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
}

type jwtService struct {
	secretKey       string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	logger          *zap.Logger
}

func NewJWTService(secretKey string, accessTokenExp, refreshTokenExp time.Duration, logger *zap.Logger) JWTService {
	return &jwtService{
		secretKey:       secretKey,
		accessTokenExp:  accessTokenExp,
		refreshTokenExp: refreshTokenExp,
		logger:          logger,
	}
}

func (s *jwtService) GenerateTokens(userID uint64, role string) (string, string, string, error) {
	now := time.Now()
	refreshID := uuid.New().String()

	accessTokenClaims := &JwtCustomClaim{
		UserID:         userID,
		Role:           role,
		IsRefreshToken: false,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenExp)),
		},
	}

	refreshTokenClaims := &JwtCustomClaim{
		UserID:         userID,
		Role:           role,
		IsRefreshToken: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        refreshID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTokenExp)),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS512, accessTokenClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", "", "", err
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS512, refreshTokenClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", "", "", err
	}

	return accessTokenString, refreshTokenString, refreshID, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(s.secretKey), nil
		default:
			return nil, apperrors.ErrInvalidSigningMethod
		}
	})
	if err != nil {
		s.logger.Debug("Ошибка парсинга или проверки подписи токена", zap.Error(err))
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, apperrors.ErrTokenExpired
	}

	return claims, nil
}

func (s *jwtService) GetAccessTokenTTL() time.Duration {
	return s.accessTokenExp
}

func (s *jwtService) GetRefreshTokenTTL() time.Duration {
	return s.refreshTokenExp
}
