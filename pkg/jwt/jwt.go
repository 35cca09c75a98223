package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más el rol de la aplicación.
// Los tokens los emite el servicio de auth externo; este paquete solo los
// verifica con el secreto compartido (HS256).
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"` // "admin" | "bodeguero" | "consulta"
}

// Parse valida firma y expiración del token y devuelve userID (subject) y rol.
func Parse(secret, tokenString string) (userID, role string, err error) {
	if secret == "" {
		return "", "", fmt.Errorf("jwt: secret vacío")
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("jwt: método de firma inesperado %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", "", fmt.Errorf("jwt: token inválido")
	}
	return claims.Subject, claims.Role, nil
}

// Generate emite un token firmado con el mismo secreto. Lo usa la suite de
// tests y las herramientas locales; en producción los tokens vienen del
// servicio de auth externo.
func Generate(secret, userID, role string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
