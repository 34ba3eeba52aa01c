package auth

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Papéis aceitos no sistema
const (
	PapelCliente  = "cliente"
	PapelCorretor = "corretor"
	PapelAdmin    = "admin"
)

var (
	jwtSecret     []byte
	jwtSecretOnce sync.Once
)

func segredo() ([]byte, error) {
	jwtSecretOnce.Do(func() {
		if s := os.Getenv("JWT_SECRET"); s != "" {
			jwtSecret = []byte(s)
		}
	})
	if len(jwtSecret) == 0 {
		return nil, errors.New("JWT_SECRET não definida")
	}
	return jwtSecret, nil
}

type Claims struct {
	UserID uint   `json:"userId"`
	Papel  string `json:"papel"` // "cliente" | "corretor" | "admin"
	jwt.RegisteredClaims
}

// GerarToken gera um JWT HS256 com validade de 24h para o usuário e papel informados
func GerarToken(userID uint, papel string) (string, error) {
	key, err := segredo()
	if err != nil {
		return "", err
	}
	claims := &Claims{
		UserID: userID,
		Papel:  papel,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidarToken valida o token e retorna as claims
func ValidarToken(tokenStr string) (*Claims, error) {
	key, err := segredo()
	if err != nil {
		return nil, err
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("não foi possível extrair claims")
	}
	return claims, nil
}
