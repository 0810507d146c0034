// Package linktoken issues and verifies the signed capability tokens embedded
// in guest self-service links. Tokens are stateless: HMAC-signed, time-limited,
// and scoped to a single reservation and action.
package linktoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid link token")
	ErrExpiredToken = errors.New("link token expired")
	ErrWrongAction  = errors.New("link token not valid for this action")
)

// Action is what a link token entitles its holder to do.
type Action string

const (
	ActionCancel     Action = "cancel"
	ActionReschedule Action = "reschedule"
)

type Claims struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	Action        Action    `json:"action"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey  []byte
	defaultTTL time.Duration
}

func NewService(secretKey string, defaultTTL time.Duration) *Service {
	return &Service{
		secretKey:  []byte(secretKey),
		defaultTTL: defaultTTL,
	}
}

func (s *Service) Issue(reservationID uuid.UUID, action Action, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	now := time.Now()
	claims := Claims{
		ReservationID: reservationID,
		Action:        action,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Verify checks the signature and expiry and that the token was issued for
// wantAction. The returned claims are the authorized action context.
func (s *Service) Verify(tokenString string, wantAction Action) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Action != wantAction {
		return nil, ErrWrongAction
	}
	if claims.ReservationID == uuid.Nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
