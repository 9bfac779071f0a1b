package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jhoicas/grocerymate-pos/internal/domain"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
	"github.com/jhoicas/grocerymate-pos/pkg/jwt"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login POST /auth/login. El backend responde {success, token, user, error}.
func (c *Client) Login(ctx context.Context, email, password string) (entity.Session, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   loginRequest{Username: email, Password: password},
	})
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Status >= 400 && se.Status < 500 {
			return entity.Session{}, fmt.Errorf("%w: %s", domain.ErrUnauthorized, se.Message)
		}
		return entity.Session{}, err
	}

	obj, err := decodeObject(raw)
	if err != nil {
		return entity.Session{}, fmt.Errorf("%w: login: %v", domain.ErrGateway, err)
	}
	if s := obj.str("success"); s == "false" {
		msg := obj.str("error", "message")
		if msg == "" {
			msg = "credenciales inválidas"
		}
		return entity.Session{}, fmt.Errorf("%w: %s", domain.ErrUnauthorized, msg)
	}
	token := obj.str("token", "accessToken", "access_token")
	if token == "" {
		return entity.Session{}, fmt.Errorf("%w: login sin token", domain.ErrGateway)
	}

	sess := entity.Session{Token: token}
	if u := obj.obj("user"); u != nil {
		sess.User = toUser(u)
	}
	if claims, err := jwt.Inspect(token); err == nil {
		sess.ExpiresAt = claims.ExpiresAt
		fillFromClaims(&sess.User, claims)
	} else {
		c.log.Debug().Err(err).Msg("token sin claims legibles")
	}
	if sess.User.Email == "" {
		sess.User.Email = email
	}
	return sess, nil
}

// fillFromClaims completa solo los campos que el cuerpo de login no trajo.
func fillFromClaims(u *entity.User, c jwt.Claims) {
	if u.ID == "" {
		u.ID = c.UserID
	}
	if u.Name == "" {
		u.Name = c.Name
	}
	if u.Email == "" {
		u.Email = c.Email
	}
	if len(u.Roles) == 0 {
		u.Roles = c.Roles
	}
}
