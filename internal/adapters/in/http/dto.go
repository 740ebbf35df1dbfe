package http

import (
	"github.com/oapi-codegen/runtime/types"
)

// Request and response bodies, shaped as in openapi/openapi.yaml.
type (
	LoginRequest struct {
		Email    types.Email `json:"email"`
		Password string      `json:"password"`
	}

	TokenResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		AgentID     int64  `json:"agentId"`
		AgentName   string `json:"agentName"`
	}

	AssignedPackageResponse struct {
		PackageID          int64  `json:"packageId"`
		UniqueCode         string `json:"uniqueCode"`
		DestinationAddress string `json:"destinationAddress"`
		DeliveryState      string `json:"deliveryState"`
	}

	DeliveryRequest struct {
		PackageID        int64   `json:"packageId"`
		Latitude         float64 `json:"latitude"`
		Longitude        float64 `json:"longitude"`
		PhotoEvidenceURL string  `json:"photoEvidenceUrl"`
	}

	DeliveryResponse struct {
		Message   string `json:"message"`
		PackageID int64  `json:"packageId"`
		AgentID   int64  `json:"agentId"`
	}

	StatusResponse struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}

	ErrorResponse struct {
		Detail string `json:"detail"`
	}
)
