package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	appErrors "github.com/emberwake/merch-cart/internal/errors"
	"github.com/emberwake/merch-cart/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionHeader carries the signed session token in both directions.
const SessionHeader = "X-Cart-Session"

type sessionContextKey struct{}

// Sessions names anonymous cart slots. A session is a random UUID signed into
// an HS256 token; it identifies a cart and grants nothing else.
type Sessions struct {
	key    []byte
	expiry time.Duration
	now    func() time.Time
}

func NewSessions(key []byte, expiry time.Duration) *Sessions {
	return &Sessions{key: key, expiry: expiry, now: time.Now}
}

// Issue mints a new session id and its token.
func (s *Sessions) Issue() (string, string, error) {

	id := uuid.NewString()
	now := s.now()

	claims := jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", "", err
	}

	return id, token, nil
}

// Verify returns the session id carried by token.
func (s *Sessions) Verify(token string) (string, error) {

	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errors.New("session subject is not a uuid")
	}

	return claims.Subject, nil
}

// Handle resolves the caller's session, issuing a fresh one when the header is
// missing or the token has expired. Tampered tokens are rejected.
func (s *Sessions) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		token := r.Header.Get(SessionHeader)

		var (
			session string
			err     error
		)

		if token != "" {
			session, err = s.Verify(token)
			switch {
			case err == nil:
			case errors.Is(err, jwt.ErrTokenExpired):
				logger.Info("Cart session expired, issuing a new one")
				token = ""
			default:
				logger.Warn("Rejected cart session token", slog.String("error", err.Error()))
				response.Error(w, appErrors.InvalidSessionError("Invalid cart session"))
				return
			}
		}

		if token == "" {
			session, token, err = s.Issue()
			if err != nil {
				logger.Error("Failed to issue cart session", slog.Any("error", err))
				response.Error(w, appErrors.InternalError("Failed to start a cart session").WithError(err))
				return
			}
			logger.Debug("Issued cart session", slog.String("session", session))
		}

		w.Header().Set(SessionHeader, token)

		ctx := context.WithValue(r.Context(), sessionContextKey{}, session)
		ctx = context.WithValue(ctx, LoggerKey, logger.With(slog.String("session", session)))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

func SessionFromContext(ctx context.Context) (string, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(string)
	return session, ok && session != ""
}
