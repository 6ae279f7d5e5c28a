// Package apperr holds the errors shared by the inbound handlers.
package apperr

import "github.com/tuanvumaihuynh/product-admin/pkg/zerror"

const (
	ValidationErrorCode = "VALIDATION_FAILED"
	MalformedBodyCode   = "MALFORMED_BODY"
)

var (
	ValidationErr    = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	MalformedBodyErr = zerror.NewBadRequest(MalformedBodyCode, "request body could not be decoded")
)
