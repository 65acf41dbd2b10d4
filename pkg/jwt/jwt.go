package jwt

import (
	"context"
	"time"

	"spotex/conf"
	"spotex/internal/consts"
	"spotex/pkg/cache"
	"spotex/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v4"
)

type CustomClaims struct {
	UserId int64  `json:"user_id"`
	Sub    string `json:"sub"`
	jwt.RegisteredClaims
}

func BuildClaims(exp time.Time, uid int64) *CustomClaims {
	return &CustomClaims{
		UserId: uid,
		Sub:    "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    conf.AppConfig.AppName,
		},
	}
}

func GenToken(c *CustomClaims, secretKey string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	ss, err := token.SignedString([]byte(secretKey))
	return ss, err
}

// ParseToken 解析并验证token
func ParseToken(tokenStr string, secretKey string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// JoinBlackList 登出时把token加入黑名单，过期时间取配置的宽限期
func JoinBlackList(ctx context.Context, tokenStr string) error {
	ttl := time.Duration(conf.AppConfig.Jwt.JwtBlacklistGracePeriod) * time.Second
	return cache.GetRedisClient().
		Set(ctx, consts.JwtBlacklistPrefix+tokenStr, time.Now().Unix(), ttl).Err()
}

// IsInBlackList token是否在黑名单中
func IsInBlackList(ctx context.Context, tokenStr string) bool {
	_, err := cache.GetRedisClient().Get(ctx, consts.JwtBlacklistPrefix+tokenStr).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Errorf("jwt blacklist query error: %v", err)
		}
		return false
	}
	return true
}
