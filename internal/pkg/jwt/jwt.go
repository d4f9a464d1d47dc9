package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Tokens are issued by the identity service; this side only verifies.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	SubjectAndRole(tokenString string) (subject string, role string, err error)
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// SubjectAndRole decodes a token and extracts the employee_id and role claims.
func (j *JWTService) SubjectAndRole(tokenString string) (string, string, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", "", err
	}

	subVal, ok := token.Get("employee_id")
	if !ok {
		return "", "", jwt.ErrInvalidJWT()
	}
	subject, ok := subVal.(string)
	if !ok {
		return "", "", jwt.ErrInvalidJWT()
	}

	role := ""
	if roleVal, ok := token.Get("role"); ok {
		if s, ok := roleVal.(string); ok {
			role = s
		}
	}

	return subject, role, nil
}
