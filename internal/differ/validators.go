package differ

import (
	"fmt"

	"github.com/aleister1102/datadiff/internal/common/errorwrapper"
)

// ContentSizeValidator validates content size against limits
type ContentSizeValidator struct {
	maxSizeBytes int64
}

// NewContentSizeValidator creates a validator for the given ceiling in MB
func NewContentSizeValidator(maxSizeMB int) *ContentSizeValidator {
	return &ContentSizeValidator{
		maxSizeBytes: int64(maxSizeMB) * 1024 * 1024,
	}
}

// Validate checks one input against the size ceiling. Content exactly at the
// ceiling is accepted; only content strictly over it is rejected.
func (cv *ContentSizeValidator) Validate(side errorwrapper.InputSide, content string) error {
	size := int64(len(content))
	if size > cv.maxSizeBytes {
		return errorwrapper.NewValidationError(
			string(side),
			size,
			fmt.Sprintf("input size %d bytes exceeds maximum of %d bytes", size, cv.maxSizeBytes),
		)
	}
	return nil
}

// InputValidator validates a diff request before dispatch
type InputValidator struct {
	sizeValidator *ContentSizeValidator
}

// NewInputValidator creates a new input validator
func NewInputValidator(maxSizeMB int) *InputValidator {
	return &InputValidator{
		sizeValidator: NewContentSizeValidator(maxSizeMB),
	}
}

// Validate rejects empty inputs and inputs over the size ceiling
func (iv *InputValidator) Validate(request DiffRequest) error {
	if request.Left == "" {
		return errorwrapper.NewValidationError("left", "", "input cannot be empty")
	}
	if request.Right == "" {
		return errorwrapper.NewValidationError("right", "", "input cannot be empty")
	}

	if err := iv.sizeValidator.Validate(errorwrapper.SideLeft, request.Left); err != nil {
		return err
	}
	return iv.sizeValidator.Validate(errorwrapper.SideRight, request.Right)
}
