package auth

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/campusmart/marketplace/internal/adapter/config"
	"github.com/campusmart/marketplace/internal/core/domain"
	"github.com/campusmart/marketplace/internal/core/port"
)

const defaultTokenTTL = 24 * time.Hour

type PasetoToken struct {
	parser *paseto.Parser
	key    *paseto.V4SymmetricKey
	ttl    time.Duration
}

// New builds a v4.local token service. An empty key in conf generates a
// random one, so tokens do not survive a restart.
func New(conf *config.Auth) (port.TokenService, error) {
	key := paseto.NewV4SymmetricKey()
	ttl := defaultTokenTTL

	if conf != nil {
		if conf.TokenKey != "" {
			k, err := paseto.V4SymmetricKeyFromHex(conf.TokenKey)
			if err != nil {
				return nil, fmt.Errorf("parse token key: %w", err)
			}
			key = k
		}
		if conf.TokenTTL > 0 {
			ttl = conf.TokenTTL
		}
	}

	parser := paseto.NewParser()

	return &PasetoToken{
		parser: &parser,
		key:    &key,
		ttl:    ttl,
	}, nil
}

func (p *PasetoToken) CreateToken(user *domain.User) (string, error) {
	token := paseto.NewToken()
	now := time.Now()
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(p.ttl))

	payload := port.TokenPayload{UserID: user.ID, Role: user.Type}
	err := token.Set("payload", payload)
	if err != nil {
		return "", domain.ErrTokenCreation
	}

	return token.V4Encrypt(*p.key, nil), nil
}

func (p *PasetoToken) VerifyToken(token string) (*port.TokenPayload, error) {
	parsedToken, err := p.parser.ParseV4Local(*p.key, token, nil)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	payload := port.TokenPayload{}
	err = parsedToken.Get("payload", &payload)
	if err != nil || payload.UserID == "" {
		return nil, domain.ErrInvalidToken
	}
	return &payload, nil
}
