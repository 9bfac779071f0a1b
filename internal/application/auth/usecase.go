// Package auth maneja la sesión del cajero: login contra el backend, token vigente y logout.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/grocerymate-pos/internal/application/dto"
	"github.com/jhoicas/grocerymate-pos/internal/application/ports"
	"github.com/jhoicas/grocerymate-pos/internal/domain"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
	"github.com/jhoicas/grocerymate-pos/internal/domain/repository"
	"github.com/jhoicas/grocerymate-pos/pkg/jwt"
)

// Claves del registro durable de la sesión.
const (
	tokenKey = "token"
	userKey  = "user"
)

var _ ports.TokenSource = (*SessionUseCase)(nil)

// SessionUseCase sesión única de la terminal. Implementa ports.TokenSource para el gateway.
type SessionUseCase struct {
	gateway ports.AuthGateway
	records repository.RecordStore
	log     zerolog.Logger
	now     func() time.Time

	mu      sync.RWMutex
	session *entity.Session
}

// NewSessionUseCase construye el caso de uso; llamar Restore para recuperar una sesión previa.
func NewSessionUseCase(gateway ports.AuthGateway, records repository.RecordStore, log zerolog.Logger) *SessionUseCase {
	return &SessionUseCase{
		gateway: gateway,
		records: records,
		log:     log.With().Str("component", "session").Logger(),
		now:     time.Now,
	}
}

type storedUser struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// Login autentica contra el backend y guarda token y usuario.
func (uc *SessionUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.SessionResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y contraseña son obligatorios", domain.ErrInvalidInput)
	}
	sess, err := uc.gateway.Login(ctx, email, in.Password)
	if err != nil {
		return nil, err
	}
	if err := uc.persist(ctx, sess); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	uc.session = &sess
	uc.mu.Unlock()

	uc.log.Info().Str("user", sess.User.Email).Str("role", sess.User.PrimaryRole()).Msg("sesión iniciada")
	return toSessionResponse(&sess), nil
}

// Logout descarta la sesión local.
func (uc *SessionUseCase) Logout(ctx context.Context) error {
	uc.mu.Lock()
	uc.session = nil
	uc.mu.Unlock()
	return uc.forget(ctx)
}

// Current estado de la sesión; una sesión expirada se reporta como no autenticada.
func (uc *SessionUseCase) Current() *dto.SessionResponse {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.session == nil || uc.session.Expired(uc.now()) {
		return &dto.SessionResponse{Authenticated: false}
	}
	return toSessionResponse(uc.session)
}

// Restore recupera la sesión desde el registro durable. Un token ilegible o vencido se descarta.
func (uc *SessionUseCase) Restore(ctx context.Context) error {
	tokenRaw, err := uc.records.Get(ctx, tokenKey)
	if err != nil {
		return fmt.Errorf("session: leer token: %w", err)
	}
	var token string
	if err := json.Unmarshal(tokenRaw, &token); err != nil {
		token = strings.TrimSpace(string(tokenRaw))
	}
	if token == "" {
		return nil
	}
	sess := entity.Session{Token: token}
	if claims, err := jwt.Inspect(token); err == nil {
		sess.ExpiresAt = claims.ExpiresAt
		sess.User = entity.User{ID: claims.UserID, Name: claims.Name, Email: claims.Email, Roles: claims.Roles}
	}
	if userRaw, err := uc.records.Get(ctx, userKey); err == nil && len(userRaw) > 0 {
		var su storedUser
		if json.Unmarshal(userRaw, &su) == nil {
			sess.User = entity.User{ID: su.ID, Name: su.Name, Email: su.Email, Roles: su.Roles}
		}
	}
	if sess.Expired(uc.now()) {
		uc.log.Debug().Msg("sesión guardada vencida, se descarta")
		return uc.forget(ctx)
	}

	uc.mu.Lock()
	uc.session = &sess
	uc.mu.Unlock()
	return nil
}

// BearerToken token vigente. Un token vencido se descarta antes de emitir la request.
func (uc *SessionUseCase) BearerToken(ctx context.Context) (string, bool) {
	uc.mu.RLock()
	sess := uc.session
	uc.mu.RUnlock()
	if sess == nil {
		return "", false
	}
	if sess.Expired(uc.now()) {
		uc.Invalidate(ctx)
		return "", false
	}
	return sess.Token, true
}

// Invalidate descarta la sesión (401 del backend o token vencido).
func (uc *SessionUseCase) Invalidate(ctx context.Context) {
	uc.mu.Lock()
	had := uc.session != nil
	uc.session = nil
	uc.mu.Unlock()
	if had {
		uc.log.Info().Msg("sesión invalidada, se requiere login")
	}
	if err := uc.forget(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo borrar la sesión guardada")
	}
}

func (uc *SessionUseCase) persist(ctx context.Context, sess entity.Session) error {
	userRaw, err := json.Marshal(storedUser{
		ID: sess.User.ID, Name: sess.User.Name, Email: sess.User.Email, Roles: sess.User.Roles,
	})
	if err != nil {
		return fmt.Errorf("session: serializar usuario: %w", err)
	}
	// el token se guarda como string JSON para que el almacenamiento JSONB lo acepte
	tokenRaw, err := json.Marshal(sess.Token)
	if err != nil {
		return fmt.Errorf("session: serializar token: %w", err)
	}
	if err := uc.records.Put(ctx, tokenKey, tokenRaw); err != nil {
		return fmt.Errorf("session: guardar token: %w", err)
	}
	if err := uc.records.Put(ctx, userKey, userRaw); err != nil {
		return fmt.Errorf("session: guardar usuario: %w", err)
	}
	return nil
}

func (uc *SessionUseCase) forget(ctx context.Context) error {
	if err := uc.records.Delete(ctx, tokenKey); err != nil {
		return fmt.Errorf("session: borrar token: %w", err)
	}
	if err := uc.records.Delete(ctx, userKey); err != nil {
		return fmt.Errorf("session: borrar usuario: %w", err)
	}
	return nil
}

func toSessionResponse(s *entity.Session) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		Authenticated: true,
		User: &dto.UserResponse{
			ID:    s.User.ID,
			Name:  s.User.Name,
			Email: s.User.Email,
			Role:  s.User.PrimaryRole(),
			Roles: s.User.Roles,
		},
	}
	if !s.ExpiresAt.IsZero() {
		exp := s.ExpiresAt
		resp.ExpiresAt = &exp
	}
	return resp
}
