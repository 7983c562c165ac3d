package handlers

import (
	"log/slog"
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-playground/validator/v10"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
)

type Handlers struct {
	service  usecase.Service
	log      *slog.Logger
	validate *validator.Validate
	doc      *openapi3.T
}

func NewHandlers(service usecase.Service, doc *openapi3.T, log *slog.Logger) *Handlers {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	return &Handlers{
		service:  service,
		log:      log.With(slog.String("component", "http")),
		validate: v,
		doc:      doc,
	}
}

// jsonFieldName makes validation errors report the wire name of a field.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
