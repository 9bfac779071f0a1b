package jwt

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims datos del token del backend que la terminal necesita: expiración, usuario y roles.
type Claims struct {
	UserID    string
	Name      string
	Email     string
	Roles     []string
	ExpiresAt time.Time // cero si el token no trae exp
}

// Expired indica si el token ya venció en now. Un token sin exp nunca vence del lado de la terminal.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Claves usadas por el backend (.NET emite las URIs largas de ClaimTypes).
const (
	msClaims     = "http://schemas.microsoft.com/ws/2008/06/identity/claims/"
	soapClaims   = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/"
	claimRoleURI = msClaims + "role"
)

var (
	userIDKeys = []string{"sub", "nameid", "user_id", "userId", soapClaims + "nameidentifier"}
	nameKeys   = []string{"unique_name", "name", soapClaims + "name"}
	emailKeys  = []string{"email", soapClaims + "emailaddress"}
	roleKeys   = []string{"role", "roles", claimRoleURI}
)

// Inspect lee los claims SIN verificar la firma: la terminal no tiene la clave del backend
// y el backend valida cada request. Solo se usa para conocer expiración y rol.
func Inspect(tokenString string) (Claims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return Claims{}, fmt.Errorf("jwt: token vacío")
	}
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, mc); err != nil {
		return Claims{}, fmt.Errorf("jwt: token mal formado: %w", err)
	}

	c := Claims{
		UserID: firstString(mc, userIDKeys),
		Name:   firstString(mc, nameKeys),
		Email:  firstString(mc, emailKeys),
		Roles:  stringList(mc, roleKeys),
	}
	exp, err := mc.GetExpirationTime()
	if err != nil {
		return Claims{}, fmt.Errorf("jwt: exp inválido: %w", err)
	}
	if exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}

func firstString(mc jwt.MapClaims, keys []string) string {
	for _, k := range keys {
		if s, ok := mc[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// stringList acepta el claim como string o como arreglo de strings.
func stringList(mc jwt.MapClaims, keys []string) []string {
	var out []string
	for _, k := range keys {
		switch v := mc[k].(type) {
		case string:
			if v != "" {
				out = append(out, v)
			}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					out = append(out, s)
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return out
}
