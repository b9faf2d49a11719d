package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidCookie = errors.New("session: invalid cookie")

type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// CookieCodec 把会话 ID 签名后放进 Cookie，防止客户端伪造他人会话
type CookieCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewCookieCodec(secret string, ttl time.Duration) *CookieCodec {
	return &CookieCodec{secret: []byte(secret), ttl: ttl}
}

func NewID() string {
	return uuid.NewString()
}

func (c *CookieCodec) Encode(sid string) (string, error) {
	now := time.Now()
	claims := &Claims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

func (c *CookieCodec) Decode(value string) (string, error) {
	token, err := jwt.ParseWithClaims(value, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", ErrInvalidCookie
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", ErrInvalidCookie
	}
	if _, err := uuid.Parse(claims.SessionID); err != nil {
		return "", ErrInvalidCookie
	}
	return claims.SessionID, nil
}

func (c *CookieCodec) MaxAge() int {
	return int(c.ttl / time.Second)
}
