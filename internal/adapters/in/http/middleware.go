package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"paquexpress/internal/adapters/in/http/openapi"
	"paquexpress/internal/core/application/usecases/queries"
	"paquexpress/internal/core/domain/model/agent"
	"paquexpress/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	agentContextKey      = "agent"
	bearerScheme         = "Bearer"
	internalServerDetail = "internal server error"
)

var (
	ErrNotAuthenticated = errs.NewUnauthorizedError("not authenticated")
	errNoAgentInContext = errors.New("no authenticated agent in request context")
)

// SessionResolver resolves a bearer token into an agent profile.
type SessionResolver interface {
	Handle(ctx context.Context, query queries.ResolveSessionQuery) (agent.Profile, error)
}

// BearerAuth resolves the Authorization header on every request and stores
// the agent profile for AgentFromContext.
func BearerAuth(sessions SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scheme, credentials, found := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
			if !found || !strings.EqualFold(scheme, bearerScheme) {
				return ErrNotAuthenticated
			}

			query, err := queries.NewResolveSessionQuery(credentials)
			if err != nil {
				return ErrNotAuthenticated
			}

			profile, err := sessions.Handle(c.Request().Context(), query)
			if err != nil {
				return err
			}

			c.Set(agentContextKey, profile)
			return next(c)
		}
	}
}

// AgentFromContext returns the profile stored by BearerAuth.
func AgentFromContext(c echo.Context) (agent.Profile, error) {
	profile, ok := c.Get(agentContextKey).(agent.Profile)
	if !ok {
		return agent.Profile{}, errNoAgentInContext
	}
	return profile, nil
}

// ValidateRequest checks the request against the OpenAPI document.
func ValidateRequest(validator *openapi.Validator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := validator.Validate(c.Request().Context(), c.Request()); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// RequestLogger writes one structured access log line per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "HTTP request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	})
}

// ErrorHandler renders every error as {"detail": ...}. Unexpected errors are
// logged with the request id and reported as a generic 500. Conflicts are
// logged at warn level with their cause; the client sees only the reason.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, detail := classify(err)
		if status == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, bearerScheme)
		}
		switch {
		case status >= http.StatusInternalServerError:
			logger.ErrorContext(c.Request().Context(), "Request failed",
				"error", err,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
		case errors.Is(err, errs.ErrConflict):
			logger.WarnContext(c.Request().Context(), "Request conflicted",
				"error", err,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, ErrorResponse{Detail: detail})
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "Failed to write error response", "error", writeErr)
		}
	}
}

func classify(err error) (int, string) {
	var (
		unauthorized *errs.UnauthorizedError
		conflict     *errs.ConflictError
		requestErr   *openapi3filter.RequestError
		httpErr      *echo.HTTPError
	)

	switch {
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized, unauthorized.Reason
	case errors.As(err, &conflict):
		return http.StatusBadRequest, conflict.Reason
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, singleLine(err)
	case errors.As(err, &requestErr):
		return http.StatusBadRequest, singleLine(requestErr)
	case errors.Is(err, openapi.ErrRouteNotDocumented):
		return http.StatusNotFound, http.StatusText(http.StatusNotFound)
	case errors.As(err, &httpErr):
		if httpErr.Code >= http.StatusInternalServerError {
			return httpErr.Code, internalServerDetail
		}
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	default:
		return http.StatusInternalServerError, internalServerDetail
	}
}

func singleLine(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", "; ")
}
