package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/NadeeshaMedagama/modgoviya/internal/api"
	"github.com/NadeeshaMedagama/modgoviya/internal/common"
	inErrors "github.com/NadeeshaMedagama/modgoviya/internal/errors"
	"github.com/NadeeshaMedagama/modgoviya/internal/log"
	"github.com/NadeeshaMedagama/modgoviya/internal/otel"
	"github.com/NadeeshaMedagama/modgoviya/user/pkg/request"
	"github.com/NadeeshaMedagama/modgoviya/user/pkg/response"
)

// Session holds the signed-in shopper and their bearer credential for one
// storefront session. Its Token method is the TokenSource the API client
// reads on every request.
type Session struct {
	client *api.Client

	mu     sync.RWMutex
	user   response.User
	token  string
	expiry time.Time
}

func NewSession(client *api.Client) *Session {
	return &Session{client: client}
}

// Token returns the current bearer credential, or "" when nobody is signed in
// or the credential expired.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || time.Now().After(s.expiry) {
		return ""
	}
	return s.token
}

func (s *Session) User() (response.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return response.User{}, inErrors.ErrNotLoggedIn
	}
	return s.user, nil
}

func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

func (s *Session) Register(c context.Context, param request.Register) (response.User, error) {
	c, span := otel.Tracer.Start(c, "Session Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Session Register").
		Object("register", param).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "registering user").Logger()
	logger.Info().Msgf("registering email=%s", param.Email)
	data := struct {
		User response.User `json:"user"`
	}{}
	c = logger.WithContext(c)
	if err := s.client.Post(c, "/auth/register", param, &data); err != nil {
		err = fmt.Errorf("failed registering email=%s with error=%w", param.Email, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msgf("registered email=%s", param.Email)
	return data.User, nil
}

func (s *Session) Login(c context.Context, param request.Login) (response.User, error) {
	c, span := otel.Tracer.Start(c, "Session Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Session Login").
		Object("login", param).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "logging in").Logger()
	logger.Info().Msgf("logging in email=%s", param.Email)
	data := struct {
		Auth response.Auth `json:"auth"`
	}{}
	c = logger.WithContext(c)
	if err := s.client.Post(c, "/auth/login", param, &data); err != nil {
		err = fmt.Errorf("failed logging in email=%s with error=%w", param.Email, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msgf("logged in email=%s", param.Email)

	return data.Auth.User, s.adopt(c, data.Auth)
}

// LoginWithProvider completes third-party sign-in: the provider access token
// obtained from the authorization-code exchange is traded for a ModGoviya
// session.
func (s *Session) LoginWithProvider(
	c context.Context,
	param request.OAuthExchange,
) (response.User, error) {
	c, span := otel.Tracer.Start(c, "Session LoginWithProvider")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Session LoginWithProvider").
		Str(log.KeyProvider, param.Provider).
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "exchanging provider token").Logger()
	logger.Info().Msgf("exchanging %s token", param.Provider)
	data := struct {
		Auth response.Auth `json:"auth"`
	}{}
	c = logger.WithContext(c)
	if err := s.client.Post(c, "/auth/oauth/"+param.Provider, param, &data); err != nil {
		err = fmt.Errorf("failed exchanging %s token with error=%w", param.Provider, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msgf("exchanged %s token", param.Provider)

	return data.Auth.User, s.adopt(c, data.Auth)
}

func (s *Session) adopt(c context.Context, auth response.Auth) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Session adopt").
		Str(log.KeyUserID, auth.User.ID.String()).
		Logger()

	expiry, err := common.TokenExpiry(auth.Token)
	if err != nil {
		err = fmt.Errorf("failed reading token expiry with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	s.mu.Lock()
	s.user = auth.User
	s.token = auth.Token
	s.expiry = expiry
	s.mu.Unlock()
	logger.Info().Time("tokenExpiry", expiry).Msg("session established")
	return nil
}

// Logout drops the credential. The caller also clears the cart store; the
// cart is session state and does not outlive the login.
func (s *Session) Logout(c context.Context) {
	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "Session Logout").Logger()

	s.mu.Lock()
	s.user = response.User{}
	s.token = ""
	s.expiry = time.Time{}
	s.mu.Unlock()
	logger.Info().Msg("session cleared")
}
