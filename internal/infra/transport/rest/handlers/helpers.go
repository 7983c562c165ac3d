package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/infra/logger"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func WriteJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func WriteError(w http.ResponseWriter, code int, err ErrorResponse) {
	WriteJSON(w, code, err)
}

// decodeAndValidate reads a JSON body into dst and runs the struct's
// validate tags. On failure the response is already written.
func (h *Handlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid json body",
			Details: err.Error(),
		})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		WriteError(w, http.StatusBadRequest, ErrorResponse{Error: validationMessage(err)})
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	field := fe.Namespace()
	// drop the Go type name in front of the first field
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// writeServiceError maps use case errors onto status codes. msg is the
// client-facing summary used for server-side failures.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var notInstalled *usecase.NotInstalledError

	switch {
	case errors.Is(err, usecase.ErrValidation):
		WriteError(w, http.StatusBadRequest, ErrorResponse{Error: clientMessage(err, usecase.ErrValidation)})
	case errors.Is(err, usecase.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, usecase.ErrForbidden):
		WriteError(w, http.StatusForbidden, ErrorResponse{Error: clientMessage(err, usecase.ErrForbidden)})
	case errors.Is(err, usecase.ErrNotFound):
		WriteError(w, http.StatusNotFound, ErrorResponse{Error: clientMessage(err, usecase.ErrNotFound)})
	case errors.As(err, &notInstalled):
		WriteError(w, http.StatusInternalServerError, ErrorResponse{
			Error:   notInstalled.Error(),
			Details: notInstalled.InstallURL,
		})
	default:
		h.log.ErrorContext(r.Context(), msg,
			slog.String("path", r.URL.Path),
			logger.Err(err),
		)
		WriteError(w, http.StatusInternalServerError, ErrorResponse{Error: msg, Details: err.Error()})
	}
}

// clientMessage strips the sentinel text so "validation error: owner is
// required" reads "owner is required".
func clientMessage(err, sentinel error) string {
	s := err.Error()
	if rest, ok := strings.CutPrefix(s, sentinel.Error()+": "); ok {
		return rest
	}
	if i := strings.LastIndex(s, ": "+sentinel.Error()); i >= 0 && i+len(sentinel.Error())+2 == len(s) {
		return s[:i]
	}
	return s
}

// queryList binds a repeated or comma separated query parameter. present is
// false when the parameter is absent; present with no values is an empty
// non-nil slice.
func queryList(r *http.Request, name string) (values []string, present bool, err error) {
	q := r.URL.Query()
	if _, present = q[name]; !present {
		return nil, false, nil
	}

	var raw *[]string
	if err := runtime.BindQueryParameter("form", true, false, name, q, &raw); err != nil {
		return nil, true, err
	}

	values = []string{}
	if raw == nil {
		return values, true, nil
	}
	for _, v := range *raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
	}
	return values, true, nil
}

// queryString binds an optional single value query parameter.
func queryString(r *http.Request, name string) (string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return strings.TrimSpace(*v), nil
}

func badQuery(w http.ResponseWriter, err error) {
	WriteError(w, http.StatusBadRequest, ErrorResponse{
		Error:   "invalid query parameters",
		Details: err.Error(),
	})
}
