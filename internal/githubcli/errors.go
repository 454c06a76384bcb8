package githubcli

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/temirov/gh_scripts/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant     = "github cli executor not configured"
	notAuthenticatedMessageConstant          = "github cli is not authenticated"
	insufficientPermissionsMessageConstant   = "caller lacks permission for the requested operation"
	resourceNotFoundMessageConstant          = "requested resource was not found"
	remoteStateConflictMessageConstant       = "remote state changed concurrently"
	transportFailureMessageConstant          = "github api request failed"
	operationErrorMessageTemplateConstant    = "%s operation failed"
	operationErrorWithCauseTemplateConstant  = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant    = "%s response decoding failed: %s"
	payloadEncodingErrorTemplateConstant     = "%s payload encoding failed: %s"
	invalidInputErrorTemplateConstant        = "%s: %s"
	apiErrorMessageTemplateConstant          = "%s: %s (HTTP %d)"
	apiErrorWithoutStatusTemplateConstant    = "%s: %s"
	authenticationHintSubstringConstant      = "gh auth login"
	httpStatusUnauthorizedConstant           = 401
	httpStatusForbiddenConstant              = 403
	httpStatusNotFoundConstant               = 404
	httpStatusConflictConstant               = 409
	httpStatusPatternConstant                = `HTTP (\d{3})`
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// Sentinel errors used with errors.Is to branch on failure kinds.
var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
	// ErrNotAuthenticated indicates the caller is not authenticated to the GitHub API.
	ErrNotAuthenticated = errors.New(notAuthenticatedMessageConstant)
	// ErrPermissionDenied indicates the caller is authenticated but lacks permission.
	ErrPermissionDenied = errors.New(insufficientPermissionsMessageConstant)
	// ErrResourceNotFound indicates the repository, pull request, or protection is absent.
	ErrResourceNotFound = errors.New(resourceNotFoundMessageConstant)
	// ErrRemoteConflict indicates the remote state changed between read and write.
	ErrRemoteConflict = errors.New(remoteStateConflictMessageConstant)
	// ErrTransportFailure indicates a network or API failure without a clearer classification.
	ErrTransportFailure = errors.New(transportFailureMessageConstant)
)

var httpStatusPattern = regexp.MustCompile(httpStatusPatternConstant)

// APIError reports a GitHub API failure classified into one of the sentinel kinds.
type APIError struct {
	Operation  OperationName
	Kind       error
	StatusCode int
	Cause      error
}

// Error describes the classified failure including the HTTP status when known.
func (apiError APIError) Error() string {
	kindMessage := transportFailureMessageConstant
	if apiError.Kind != nil {
		kindMessage = apiError.Kind.Error()
	}
	if apiError.StatusCode > 0 {
		return fmt.Sprintf(apiErrorMessageTemplateConstant, apiError.Operation, kindMessage, apiError.StatusCode)
	}
	return fmt.Sprintf(apiErrorWithoutStatusTemplateConstant, apiError.Operation, kindMessage)
}

// Is matches the classified kind so callers can use errors.Is with the sentinels.
func (apiError APIError) Is(target error) bool {
	return apiError.Kind == target
}

// Unwrap exposes the underlying execution failure.
func (apiError APIError) Unwrap() error {
	return apiError.Cause
}

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations that resist classification.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates JSON decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// PayloadEncodingError indicates JSON encoding issues.
type PayloadEncodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the encoding failure.
func (encodingError PayloadEncodingError) Error() string {
	return fmt.Sprintf(payloadEncodingErrorTemplateConstant, encodingError.Operation, encodingError.Cause)
}

// Unwrap exposes the underlying error.
func (encodingError PayloadEncodingError) Unwrap() error {
	return encodingError.Cause
}

// classifyExecutionError maps gh CLI failures onto the sentinel error kinds.
//
// gh reports API failures on stderr with an "HTTP <status>" marker; anything
// without that marker is treated as a transport-level failure.
func classifyExecutionError(operation OperationName, executionError error) error {
	failedError := execshell.CommandFailedError{}
	if !errors.As(executionError, &failedError) {
		return OperationError{Operation: operation, Cause: executionError}
	}

	standardError := failedError.Result.StandardError
	statusCode := extractHTTPStatus(standardError)

	switch statusCode {
	case httpStatusUnauthorizedConstant:
		return APIError{Operation: operation, Kind: ErrNotAuthenticated, StatusCode: statusCode, Cause: executionError}
	case httpStatusForbiddenConstant:
		return APIError{Operation: operation, Kind: ErrPermissionDenied, StatusCode: statusCode, Cause: executionError}
	case httpStatusNotFoundConstant:
		return APIError{Operation: operation, Kind: ErrResourceNotFound, StatusCode: statusCode, Cause: executionError}
	case httpStatusConflictConstant:
		return APIError{Operation: operation, Kind: ErrRemoteConflict, StatusCode: statusCode, Cause: executionError}
	}

	if strings.Contains(standardError, authenticationHintSubstringConstant) {
		return APIError{Operation: operation, Kind: ErrNotAuthenticated, Cause: executionError}
	}

	return APIError{Operation: operation, Kind: ErrTransportFailure, StatusCode: statusCode, Cause: executionError}
}

func extractHTTPStatus(standardError string) int {
	statusMatch := httpStatusPattern.FindStringSubmatch(standardError)
	if len(statusMatch) < 2 {
		return 0
	}
	statusCode, conversionError := strconv.Atoi(statusMatch[1])
	if conversionError != nil {
		return 0
	}
	return statusCode
}
