package stubapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/NadeeshaMedagama/modgoviya/internal/common"
	"github.com/NadeeshaMedagama/modgoviya/internal/log"
	"github.com/NadeeshaMedagama/modgoviya/internal/otel"
	userRequest "github.com/NadeeshaMedagama/modgoviya/user/pkg/request"
	userResponse "github.com/NadeeshaMedagama/modgoviya/user/pkg/response"
)

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "StubApi Register")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "StubApi Register").Logger()

	reqBody := userRequest.Register{}
	if !s.decodeAndValidate(w, r.WithContext(c), span, &reqBody) {
		return
	}
	logger = logger.With().Str(log.KeyEmail, reqBody.Email).Logger()

	email := strings.ToLower(reqBody.Email)
	hash, err := bcrypt.GenerateFromPassword([]byte(reqBody.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusInternalServerError, err.Error())
		return
	}

	s.store.mu.Lock()
	if _, exists := s.store.users[email]; exists {
		s.store.mu.Unlock()
		message := fmt.Sprintf("email=%s already registered", email)
		logger.Error().Msg(message)
		writeFailed(c, w, http.StatusConflict, message)
		return
	}
	user := userResponse.User{
		ID:        uuid.New(),
		Username:  reqBody.Username,
		Email:     email,
		CreatedAt: time.Now(),
	}
	s.store.users[email] = &userRecord{user: user, passwordHash: hash}
	s.store.mu.Unlock()
	logger.Info().Str(log.KeyUserID, user.ID.String()).Msgf("registered email=%s", email)

	writeSuccess(c, w, http.StatusCreated, "successfully registered user", map[string]interface{}{
		"user": user,
	})
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "StubApi Login")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "StubApi Login").Logger()

	reqBody := userRequest.Login{}
	if !s.decodeAndValidate(w, r.WithContext(c), span, &reqBody) {
		return
	}
	logger = logger.With().Str(log.KeyEmail, reqBody.Email).Logger()

	email := strings.ToLower(reqBody.Email)
	s.store.mu.Lock()
	record, exists := s.store.users[email]
	s.store.mu.Unlock()
	if !exists ||
		bcrypt.CompareHashAndPassword(record.passwordHash, []byte(reqBody.Password)) != nil {
		logger.Error().Msgf("invalid credentials for email=%s", email)
		writeFailed(c, w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	s.issueSession(w, r.WithContext(c), record.user)
}

// OAuthExchange trades a provider access token for a session. The double
// trusts the token blindly; the production API verifies it with the provider.
func (s *Server) OAuthExchange(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "StubApi OAuthExchange")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "StubApi OAuthExchange").Logger()

	provider := mux.Vars(r)["provider"]
	logger = logger.With().Str(log.KeyProvider, provider).Logger()

	reqBody := userRequest.OAuthExchange{}
	if !s.decodeAndValidate(w, r.WithContext(c), span, &reqBody) {
		return
	}
	if reqBody.Provider != provider {
		message := fmt.Sprintf("provider mismatch: body=%s path=%s", reqBody.Provider, provider)
		logger.Error().Msg(message)
		writeFailed(c, w, http.StatusBadRequest, message)
		return
	}

	email := strings.ToLower(reqBody.Email)
	s.store.mu.Lock()
	record, exists := s.store.users[email]
	if !exists {
		record = &userRecord{
			user: userResponse.User{
				ID:        uuid.New(),
				Username:  reqBody.Username,
				Email:     email,
				Provider:  provider,
				CreatedAt: time.Now(),
			},
		}
		s.store.users[email] = record
	}
	s.store.mu.Unlock()
	logger.Info().Str(log.KeyUserID, record.user.ID.String()).Msgf("signed in via %s", provider)

	s.issueSession(w, r.WithContext(c), record.user)
}

func (s *Server) issueSession(w http.ResponseWriter, r *http.Request, user userResponse.User) {
	c := r.Context()
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "StubApi issueSession").
		Str(log.KeyUserID, user.ID.String()).
		Logger()

	token, err := common.MintToken(c, user.ID, s.secretKey)
	if err != nil {
		err = fmt.Errorf("failed minting token with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusInternalServerError, err.Error())
		return
	}
	logger.Info().Msg("minted session token")

	writeSuccess(c, w, http.StatusOK, "successfully logged in", map[string]interface{}{
		"auth": userResponse.Auth{User: user, Token: token},
	})
}
