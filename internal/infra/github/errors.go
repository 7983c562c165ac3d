package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v66/github"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
)

// mapError classifies go-github errors into the usecase sentinels.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", op, usecase.ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %s", op, usecase.ErrUpstream, err.Error())
}

func isNotFound(err error) bool {
	return errors.Is(err, usecase.ErrNotFound)
}
