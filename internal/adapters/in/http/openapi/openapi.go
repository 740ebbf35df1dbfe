// Package openapi embeds the OpenAPI document of the HTTP API, validates
// requests against it and publishes it to the Swagger UI.
package openapi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var document []byte

var (
	loadOnce sync.Once
	loaded   *openapi3.T
	jsonDoc  []byte
	loadErr  error
)

func init() {
	swag.Register(swag.Name, swaggerDoc{})
}

// swaggerDoc feeds the Swagger UI through the swag registry.
type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string {
	if _, err := Load(); err != nil {
		return "{}"
	}
	return string(jsonDoc)
}

// Load parses and validates the embedded document once.
func Load() (*openapi3.T, error) {
	loadOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(document)
		if err != nil {
			loadErr = fmt.Errorf("load openapi document: %w", err)
			return
		}
		if err = doc.Validate(loader.Context); err != nil {
			loadErr = fmt.Errorf("validate openapi document: %w", err)
			return
		}
		data, err := doc.MarshalJSON()
		if err != nil {
			loadErr = fmt.Errorf("encode openapi document: %w", err)
			return
		}
		loaded, jsonDoc = doc, data
	})
	return loaded, loadErr
}

// JSON returns the document encoded as JSON.
func JSON() ([]byte, error) {
	if _, err := Load(); err != nil {
		return nil, err
	}
	return jsonDoc, nil
}

// Validator checks requests against the document. Authentication is left to
// the bearer middleware, so security requirements always pass here.
type Validator struct {
	router routers.Router
}

func NewValidator() (*Validator, error) {
	doc, err := Load()
	if err != nil {
		return nil, err
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	return &Validator{router: router}, nil
}

// ErrRouteNotDocumented is returned for requests the document does not describe.
var ErrRouteNotDocumented = errors.New("route is not documented")

// Validate checks parameters and body of req. The body is restored, so the
// request can be decoded again afterwards.
func (v *Validator) Validate(ctx context.Context, req *http.Request) error {
	route, pathParams, err := v.router.FindRoute(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s", ErrRouteNotDocumented, req.Method, req.URL.Path)
	}

	return openapi3filter.ValidateRequest(ctx, &openapi3filter.RequestValidationInput{
		Request:    req,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	})
}
