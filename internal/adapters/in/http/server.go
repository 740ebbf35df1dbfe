// Package http is the echo transport of the API. Handlers translate JSON
// bodies into commands and queries and map their errors to status codes.
package http

import (
	"context"
	"fmt"
	"net/http"

	"paquexpress/internal/core/application/usecases/commands"
	"paquexpress/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

type (
	LoginHandler interface {
		Handle(ctx context.Context, command commands.LoginCommand) (commands.LoginResult, error)
	}

	RegisterDeliveryHandler interface {
		Handle(ctx context.Context, command commands.RegisterDeliveryCommand) (commands.DeliveryReceipt, error)
	}

	AssignedPackagesHandler interface {
		Handle(ctx context.Context, query queries.GetAssignedPackagesQuery) ([]queries.AssignedPackage, error)
	}
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	loginHandler            LoginHandler
	registerDeliveryHandler RegisterDeliveryHandler

	// Query handlers
	assignedPackagesHandler AssignedPackagesHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	loginHandler LoginHandler,
	registerDeliveryHandler RegisterDeliveryHandler,
	assignedPackagesHandler AssignedPackagesHandler,
) *Server {
	return &Server{
		loginHandler:            loginHandler,
		registerDeliveryHandler: registerDeliveryHandler,
		assignedPackagesHandler: assignedPackagesHandler,
	}
}

// GetStatus handles GET /api/v1/status.
func (s *Server) GetStatus(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, StatusResponse{
		Status:  "API running",
		Message: "Connected to Paquexpress",
	})
}

// Login handles POST /api/v1/auth/login.
func (s *Server) Login(ctx echo.Context) error {
	var request LoginRequest
	if err := ctx.Bind(&request); err != nil {
		return err
	}

	cmd, err := commands.NewLoginCommand(string(request.Email), request.Password)
	if err != nil {
		return err
	}

	result, err := s.loginHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, TokenResponse{
		AccessToken: result.Token,
		TokenType:   result.TokenType,
		AgentID:     result.AgentID,
		AgentName:   result.AgentName,
	})
}

// ListAssignedPackages handles GET /api/v1/packages/assigned.
func (s *Server) ListAssignedPackages(ctx echo.Context) error {
	profile, err := AgentFromContext(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetAssignedPackagesQuery(profile.ID)
	if err != nil {
		return err
	}

	packages, err := s.assignedPackagesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]AssignedPackageResponse, len(packages))
	for i, p := range packages {
		response[i] = AssignedPackageResponse{
			PackageID:          p.ID,
			UniqueCode:         p.Code,
			DestinationAddress: p.Destination,
			DeliveryState:      p.Status.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RegisterDelivery handles POST /api/v1/packages/register_delivery.
func (s *Server) RegisterDelivery(ctx echo.Context) error {
	profile, err := AgentFromContext(ctx)
	if err != nil {
		return err
	}

	var request DeliveryRequest
	if err = ctx.Bind(&request); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterDeliveryCommand(
		profile.ID,
		request.PackageID,
		request.Latitude,
		request.Longitude,
		request.PhotoEvidenceURL,
	)
	if err != nil {
		return err
	}

	receipt, err := s.registerDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, DeliveryResponse{
		Message:   fmt.Sprintf("delivery of package %d registered by %s", receipt.PackageID, profile.Name),
		PackageID: receipt.PackageID,
		AgentID:   receipt.AgentID,
	})
}
