package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "receipt-scanner/internal/errors"
	"receipt-scanner/internal/files"
	"receipt-scanner/internal/models"
)

// MaxUploadSize is the largest receipt image accepted, in bytes
const MaxUploadSize int64 = 10 * 1024 * 1024

// AllowedImageTypes are the media types accepted for receipt uploads
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

var (
	instance *Validator
	once     sync.Once
)

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	once.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("iso_date", validateISODate)
	_ = v.RegisterValidation("sort_key", validateSortKey)
	_ = v.RegisterValidation("sort_order", validateSortOrder)
	_ = v.RegisterValidation("image_mime", validateImageMime)
	_ = v.RegisterValidation("upload_size", validateUploadSize)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates s against its validate tags
func (v *Validator) Struct(s any) error {
	return v.validate.Struct(s)
}

// UploadError reports why a file was rejected before any network call
type UploadError struct {
	Code     apperrors.ErrorCode
	Filename string
}

func (e *UploadError) Error() string {
	return apperrors.GetErrorMessage(e.Code)
}

type uploadCandidate struct {
	ContentType string `json:"content_type" validate:"image_mime"`
	Size        int64  `json:"size" validate:"gte=0,upload_size"`
}

// ValidateUploadFile checks the media type and size of a receipt image.
// The media type is checked first.
func ValidateUploadFile(file files.File) error {
	return GetValidator().ValidateUploadFile(file)
}

// ValidateUploadFile checks the media type and size of a receipt image.
func (v *Validator) ValidateUploadFile(file files.File) error {
	if file == nil {
		return &UploadError{Code: apperrors.UploadMissingFile}
	}

	candidate := uploadCandidate{ContentType: file.ContentType(), Size: file.Size()}
	err := v.validate.Struct(candidate)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate upload: %w", err)
	}
	// Format wins over size when both are wrong
	for _, fe := range fieldErrs {
		if fe.Field() == "content_type" {
			return &UploadError{Code: apperrors.UploadUnsupportedFormat, Filename: file.Name()}
		}
	}
	return &UploadError{Code: apperrors.UploadFileTooLarge, Filename: file.Name()}
}

// IsAllowedImageType reports whether contentType may be uploaded
func IsAllowedImageType(contentType string) bool {
	for _, allowed := range AllowedImageTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}

// FormatErrors turns validator errors into "field: rule" strings
func FormatErrors(err error) []string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Namespace()
		if idx := strings.Index(field, "."); idx >= 0 {
			field = field[idx+1:]
		}
		if fe.Param() != "" {
			out = append(out, fmt.Sprintf("%s: %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			out = append(out, fmt.Sprintf("%s: %s", field, fe.Tag()))
		}
	}
	return out
}

// Custom validation functions

// validateISODate validates a calendar date in YYYY-MM-DD form
func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.DateOnly, fl.Field().String())
	return err == nil
}

func validateSortKey(fl validator.FieldLevel) bool {
	switch models.SortKey(fl.Field().String()) {
	case models.SortByCreatedAt, models.SortByDate, models.SortByTotalAmount, models.SortByStoreName:
		return true
	}
	return false
}

func validateSortOrder(fl validator.FieldLevel) bool {
	switch models.SortOrder(strings.ToLower(fl.Field().String())) {
	case models.SortAsc, models.SortDesc:
		return true
	}
	return false
}

func validateImageMime(fl validator.FieldLevel) bool {
	return IsAllowedImageType(fl.Field().String())
}

func validateUploadSize(fl validator.FieldLevel) bool {
	return fl.Field().Int() <= MaxUploadSize
}
