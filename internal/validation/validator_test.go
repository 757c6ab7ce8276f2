package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	apperrors "receipt-scanner/internal/errors"
	"receipt-scanner/internal/files"
	"receipt-scanner/internal/models"
)

type ValidatorTestSuite struct {
	suite.Suite
	validator *Validator
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}

func (s *ValidatorTestSuite) SetupTest() {
	s.validator = NewValidator()
}

func sized(name, contentType string, size int) files.File {
	return files.FromBytes(name, contentType, make([]byte, size))
}

// Test upload acceptance for each allowed type and the size boundary
func (s *ValidatorTestSuite) TestValidateUploadFile_Accepted() {
	s.NoError(s.validator.ValidateUploadFile(sized("a.jpg", "image/jpeg", 10)))
	s.NoError(s.validator.ValidateUploadFile(sized("a.png", "image/png", 10)))
	s.NoError(s.validator.ValidateUploadFile(sized("a.webp", "image/webp", 10)))
	s.NoError(s.validator.ValidateUploadFile(sized("edge.jpg", "image/jpeg", int(MaxUploadSize))))
}

// Test rejection codes
func (s *ValidatorTestSuite) TestValidateUploadFile_Rejected() {
	testCases := []struct {
		name string
		file files.File
		code apperrors.ErrorCode
	}{
		{"gif", sized("a.gif", "image/gif", 10), apperrors.UploadUnsupportedFormat},
		{"pdf", sized("a.pdf", "application/pdf", 10), apperrors.UploadUnsupportedFormat},
		{"empty type", sized("a", "", 10), apperrors.UploadUnsupportedFormat},
		{"one byte over", sized("big.jpg", "image/jpeg", int(MaxUploadSize)+1), apperrors.UploadFileTooLarge},
		{"format wins over size", sized("big.gif", "image/gif", int(MaxUploadSize)+1), apperrors.UploadUnsupportedFormat},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := s.validator.ValidateUploadFile(tc.file)
			var uploadErr *UploadError
			s.Require().ErrorAs(err, &uploadErr)
			s.Equal(tc.code, uploadErr.Code)
			s.Equal(tc.file.Name(), uploadErr.Filename)
			s.Equal(apperrors.GetErrorMessage(tc.code), err.Error())
		})
	}
}

// Test nil file handling
func (s *ValidatorTestSuite) TestValidateUploadFile_Nil() {
	var uploadErr *UploadError
	s.Require().ErrorAs(s.validator.ValidateUploadFile(nil), &uploadErr)
	s.Equal(apperrors.UploadMissingFile, uploadErr.Code)
}

// Test filter validation including custom sort and date tags
func (s *ValidatorTestSuite) TestFilterParams() {
	s.NoError(s.validator.Struct(models.ReceiptFilterParams{}))
	s.NoError(s.validator.Struct(models.ReceiptFilterParams{
		SortBy:    models.SortByStoreName,
		SortOrder: models.SortAsc,
		DateFrom:  "2026-01-01",
		DateTo:    "2026-01-31",
	}))

	err := s.validator.Struct(models.ReceiptFilterParams{SortBy: "image_path", DateFrom: "2026-13-01"})
	s.Require().Error(err)
	messages := FormatErrors(err)
	s.Contains(messages, "sort_by: sort_key")
	s.Contains(messages, "date_from: iso_date")
}

// Test update validation dives into items
func (s *ValidatorTestSuite) TestReceiptUpdate() {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}

	valid := models.ReceiptUpdate{
		Date:        models.StringPtr("2026-02-10"),
		TotalAmount: decimal.NewNullDecimal(decimal.NewFromInt(100)),
		Items:       []models.ReceiptItemCreate{{Name: models.StringPtr("パン")}},
	}
	s.NoError(s.validator.Struct(valid))

	invalid := models.ReceiptUpdate{
		Date:  models.StringPtr("10/02/2026"),
		Items: []models.ReceiptItemCreate{{Name: models.StringPtr(string(long))}},
	}
	err := s.validator.Struct(invalid)
	s.Require().Error(err)
	messages := FormatErrors(err)
	s.Contains(messages, "date: iso_date")
	s.Contains(messages, "items[0].name: max=255")
}

// Test that the singleton is stable
func (s *ValidatorTestSuite) TestGetValidator() {
	s.Same(GetValidator(), GetValidator())
	s.NotNil(GetValidator().GetValidate())
}

func (s *ValidatorTestSuite) TestIsAllowedImageType() {
	s.True(IsAllowedImageType("image/webp"))
	s.False(IsAllowedImageType("image/heic"))
}
