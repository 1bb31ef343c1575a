package ml

import (
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrQuotaExceeded marks a provider refusing work because of quota or rate limits.
// The stub model returns it when configured with quota_exhausted; custom Model
// implementations can wrap it to trigger the same fallback.
var ErrQuotaExceeded = errors.New("model quota exceeded")

// IsQuotaError reports whether err is a quota or rate-limit failure from any backend.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrQuotaExceeded) {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests ||
			apiErr.Code == "insufficient_quota" ||
			apiErr.Type == "insufficient_quota"
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}

	return grpcCode(err) == codes.ResourceExhausted
}

// IsModelNotFound reports whether the provider does not know the configured model.
func IsModelNotFound(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == "model_not_found" || apiErr.HTTPStatusCode == http.StatusNotFound
	}

	return grpcCode(err) == codes.NotFound
}

func grpcCode(err error) codes.Code {
	var se interface{ GRPCStatus() *status.Status }
	if errors.As(err, &se) {
		return se.GRPCStatus().Code()
	}
	return codes.Unknown
}
