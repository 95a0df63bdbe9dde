package jwt

import (
	"log"
	"time"

	internal_errors "github.com/borda-dev/borda/internal/errors"

	"github.com/borda-dev/borda/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// JwtService issues and verifies login tokens carrying the minimal user
// identity claim.
type JwtService interface {
	NewToken(user domain.MiniUser) (string, error)
	DecodeToken(jwtStr string) (domain.MiniUser, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(user domain.MiniUser) (string, error) {
	claims := jwt.MapClaims{}
	claims["_id"] = user.Id
	claims["fullname"] = user.FullName
	claims["imgUrl"] = user.ImgUrl
	claims["isAdmin"] = user.IsAdmin
	claims["score"] = user.Score
	claims["exp"] = time.Now().Add(j.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Print(err.Error())
		return "", internal_errors.Unauthorized("Can't create token")
	}

	return tokenString, nil
}

// DecodeToken verifies the signature and expiration and rebuilds the user
// claim. Any failure means "no session" at the middleware level.
func (j *Jwt) DecodeToken(jwtStr string) (domain.MiniUser, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal_errors.Unauthorized("Unexpected signing method")
		}
		return []byte(j.secretKey), nil
	})
	if err != nil || !token.Valid {
		return domain.MiniUser{}, internal_errors.Unauthorized("Invalid access token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.MiniUser{}, internal_errors.Unauthorized("Invalid token claims")
	}

	user := domain.MiniUser{}
	if user.Id, ok = claims["_id"].(string); !ok || user.Id == "" {
		return domain.MiniUser{}, internal_errors.Unauthorized("Invalid token claims")
	}
	user.FullName, _ = claims["fullname"].(string)
	user.ImgUrl, _ = claims["imgUrl"].(string)
	user.IsAdmin, _ = claims["isAdmin"].(bool)
	if score, scoreOk := claims["score"].(float64); scoreOk {
		user.Score = int(score)
	}

	return user, nil
}
