package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeStorageError       ErrorCode = "COMMON_017"
	ErrCodeMessagingError     ErrorCode = "COMMON_018"
)

// Aliases
const (
	CodeOK              = ErrorCode("OK")
	CodeUnknown         = ErrorCode("UNKNOWN")
	CodeInternal        = ErrCodeInternal
	CodeInvalidArgument = ErrCodeBadRequest
	CodeNotFound        = ErrCodeNotFound
)

// Candidate Module Error Codes
const (
	ErrCodeCandidateNotFound     ErrorCode = "CAND_001"
	ErrCodeInvalidCount          ErrorCode = "CAND_002"
	ErrCodeCountExceedsFixture   ErrorCode = "CAND_003"
	ErrCodeInvalidTier           ErrorCode = "CAND_004"
	ErrCodeMalformedCandidateCSV ErrorCode = "CAND_005"
	ErrCodeInvalidCandidate      ErrorCode = "CAND_006"
)

// Analysis Module Error Codes
const (
	ErrCodeTargetMissing         ErrorCode = "ANL_001"
	ErrCodeInvalidAnalysisOption ErrorCode = "ANL_002"
	ErrCodeAnalysisRunNotFound   ErrorCode = "ANL_003"
	ErrCodeExportFailed          ErrorCode = "ANL_004"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeStorageError:       http.StatusInternalServerError,
	ErrCodeMessagingError:     http.StatusInternalServerError,

	ErrCodeCandidateNotFound:     http.StatusNotFound,
	ErrCodeInvalidCount:          http.StatusBadRequest,
	ErrCodeCountExceedsFixture:   http.StatusBadRequest,
	ErrCodeInvalidTier:           http.StatusBadRequest,
	ErrCodeMalformedCandidateCSV: http.StatusBadRequest,
	ErrCodeInvalidCandidate:      http.StatusBadRequest,

	ErrCodeTargetMissing:         http.StatusBadRequest,
	ErrCodeInvalidAnalysisOption: http.StatusBadRequest,
	ErrCodeAnalysisRunNotFound:   http.StatusNotFound,
	ErrCodeExportFailed:          http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "rate limit exceeded",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeStorageError:       "object storage error",
	ErrCodeMessagingError:     "message broker error",

	ErrCodeCandidateNotFound:     "candidate not found",
	ErrCodeInvalidCount:          "candidate count must be positive",
	ErrCodeCountExceedsFixture:   "candidate count exceeds fixture size",
	ErrCodeInvalidTier:           "unknown classification tier",
	ErrCodeMalformedCandidateCSV: "malformed candidate CSV",
	ErrCodeInvalidCandidate:      "invalid candidate",

	ErrCodeTargetMissing:         "target structure file is required",
	ErrCodeInvalidAnalysisOption: "invalid analysis option",
	ErrCodeAnalysisRunNotFound:   "analysis run not found",
	ErrCodeExportFailed:          "export failed",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 1 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
