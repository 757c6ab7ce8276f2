package services

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"receipt-scanner/internal/client"
	"receipt-scanner/internal/logging"
	"receipt-scanner/internal/models"
	"receipt-scanner/internal/services/service_mocks"
)

// ReceiptEditorSuite defines the test suite for the receipt editor
type ReceiptEditorSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	gateway *service_mocks.MockReceiptGatewayInterface
	editor  *ReceiptEditor
	ctx     context.Context
}

func TestReceiptEditorSuite(t *testing.T) {
	suite.Run(t, new(ReceiptEditorSuite))
}

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func (s *ReceiptEditorSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.gateway = service_mocks.NewMockReceiptGatewayInterface(s.ctrl)
	s.ctx = context.Background()

	receipt := &models.Receipt{
		ID:          7,
		StoreName:   models.StringPtr("コンビニ"),
		Date:        models.StringPtr("2026-01-15"),
		TotalAmount: dec("1200"),
		Tax:         dec("109"),
		Category:    models.StringPtr("食料品"),
		ImagePath:   "/uploads/a.jpg",
		Items: []models.ReceiptItem{
			{ID: 1, ReceiptID: 7, Name: models.StringPtr("おにぎり"), Quantity: dec("2"), Price: dec("150")},
			{ID: 2, ReceiptID: 7, Name: models.StringPtr("お茶"), Quantity: dec("1"), Price: dec("130")},
		},
	}
	s.editor = NewReceiptEditor(s.gateway, receipt, logging.Discard())
}

func (s *ReceiptEditorSuite) TearDownTest() {
	s.ctrl.Finish()
}

// Test the draft mirrors the receipt
func (s *ReceiptEditorSuite) TestDraftFromReceipt() {
	draft := s.editor.Draft()

	s.Equal(int64(7), s.editor.ReceiptID())
	s.Equal("コンビニ", *draft.StoreName)
	s.Equal("2026-01-15", *draft.Date)
	s.True(draft.TotalAmount.Decimal.Equal(decimal.NewFromInt(1200)))
	s.Require().Len(draft.Items, 2)
	s.Equal("おにぎり", *draft.Items[0].Name)
}

// Test the draft copy is isolated from the editor
func (s *ReceiptEditorSuite) TestDraftIsCopy() {
	draft := s.editor.Draft()
	*draft.StoreName = "changed"
	draft.Items[0].Name = nil

	again := s.editor.Draft()
	s.Equal("コンビニ", *again.StoreName)
	s.NotNil(again.Items[0].Name)
}

// Test typed field updates
func (s *ReceiptEditorSuite) TestSetField() {
	s.Require().NoError(s.editor.SetField(StoreName(models.StringPtr("スーパー"))))
	s.Require().NoError(s.editor.SetField(Category(nil)))
	s.Require().NoError(s.editor.SetField(TotalAmount(dec("980"))))
	s.Require().NoError(s.editor.SetField(Tax(decimal.NullDecimal{})))

	draft := s.editor.Draft()
	s.Equal("スーパー", *draft.StoreName)
	s.Nil(draft.Category)
	s.True(draft.TotalAmount.Decimal.Equal(decimal.NewFromInt(980)))
	s.False(draft.Tax.Valid)
}

// Test parsing field updates from text
func (s *ReceiptEditorSuite) TestParseFieldUpdate() {
	update, err := ParseFieldUpdate("date", "2026-02-01")
	s.Require().NoError(err)
	s.Equal(FieldDate, update.Field())
	s.Require().NoError(s.editor.SetField(update))
	s.Equal("2026-02-01", *s.editor.Draft().Date)

	update, err = ParseFieldUpdate("tax", "")
	s.Require().NoError(err)
	s.Require().NoError(s.editor.SetField(update))
	s.False(s.editor.Draft().Tax.Valid)

	_, err = ParseFieldUpdate("total_amount", "abc")
	s.ErrorIs(err, ErrInvalidNumber)

	_, err = ParseFieldUpdate("image_path", "x")
	s.ErrorIs(err, ErrUnknownField)
}

// Test item edits parse numbers and clear on empty text
func (s *ReceiptEditorSuite) TestSetItem() {
	s.Require().NoError(s.editor.SetItem(0, ItemQuantity, "3"))
	s.Require().NoError(s.editor.SetItem(0, ItemPrice, "1.5"))
	s.Require().NoError(s.editor.SetItem(1, ItemName, ""))
	s.Require().NoError(s.editor.SetItem(1, ItemPrice, ""))

	draft := s.editor.Draft()
	s.True(draft.Items[0].Quantity.Decimal.Equal(decimal.NewFromInt(3)))
	s.True(draft.Items[0].Price.Decimal.Equal(decimal.RequireFromString("1.5")))
	s.Nil(draft.Items[1].Name)
	s.False(draft.Items[1].Price.Valid)
}

// Test a non-numeric value is rejected and the draft stays unchanged
func (s *ReceiptEditorSuite) TestSetItem_InvalidNumber() {
	before := s.editor.Draft()

	err := s.editor.SetItem(0, ItemQuantity, "abc")

	s.ErrorIs(err, ErrInvalidNumber)
	s.Equal(before, s.editor.Draft())
}

// Test indices outside the items are rejected
func (s *ReceiptEditorSuite) TestSetItem_OutOfRange() {
	s.ErrorIs(s.editor.SetItem(2, ItemName, "x"), ErrItemIndexOutOfRange)
	s.ErrorIs(s.editor.SetItem(-1, ItemName, "x"), ErrItemIndexOutOfRange)
	s.ErrorIs(s.editor.SetItem(0, ItemField("sku"), "x"), ErrUnknownField)
}

// Test adding an item appends an empty line with quantity one
func (s *ReceiptEditorSuite) TestAddItem() {
	s.editor.AddItem()

	items := s.editor.Draft().Items
	s.Require().Len(items, 3)
	s.Nil(items[2].Name)
	s.False(items[2].Price.Valid)
	s.True(items[2].Quantity.Decimal.Equal(decimal.NewFromInt(1)))
}

// Test removing an item shifts later ones down
func (s *ReceiptEditorSuite) TestRemoveItem() {
	s.Require().NoError(s.editor.RemoveItem(0))

	items := s.editor.Draft().Items
	s.Require().Len(items, 1)
	s.Equal("お茶", *items[0].Name)

	s.ErrorIs(s.editor.RemoveItem(5), ErrItemIndexOutOfRange)
}

// Test save submits the whole draft and returns the stored receipt
func (s *ReceiptEditorSuite) TestSave() {
	s.editor.AddItem()
	s.Require().NoError(s.editor.SetItem(2, ItemName, "パン"))
	stored := &models.Receipt{ID: 7, StoreName: models.StringPtr("コンビニ")}

	s.gateway.EXPECT().UpdateReceipt(gomock.Any(), int64(7), gomock.Any()).DoAndReturn(
		func(ctx context.Context, id int64, update models.ReceiptUpdate) (*models.Receipt, error) {
			s.Len(update.Items, 3)
			s.Equal("パン", *update.Items[2].Name)
			s.True(s.editor.Saving())
			return stored, nil
		})

	receipt, err := s.editor.Save(s.ctx)

	s.Require().NoError(err)
	s.Equal(stored, receipt)
	s.False(s.editor.Saving())
}

// Test a failed save clears the saving flag and keeps the draft
func (s *ReceiptEditorSuite) TestSave_Failure() {
	apiErr := &client.APIError{StatusCode: 422, Message: "入力値が正しくありません"}
	s.gateway.EXPECT().UpdateReceipt(gomock.Any(), int64(7), gomock.Any()).Return(nil, apiErr)

	receipt, err := s.editor.Save(s.ctx)

	s.Nil(receipt)
	s.ErrorIs(err, apiErr)
	s.False(s.editor.Saving())
	s.Len(s.editor.Draft().Items, 2)
}

// Test a second save while one is in flight is refused
func (s *ReceiptEditorSuite) TestSave_InProgress() {
	started := make(chan struct{})
	release := make(chan struct{})
	s.gateway.EXPECT().UpdateReceipt(gomock.Any(), int64(7), gomock.Any()).DoAndReturn(
		func(ctx context.Context, id int64, update models.ReceiptUpdate) (*models.Receipt, error) {
			close(started)
			<-release
			return &models.Receipt{ID: 7}, nil
		}).Times(1)

	done := make(chan struct{})
	go func() {
		_, _ = s.editor.Save(s.ctx)
		close(done)
	}()
	<-started

	_, err := s.editor.Save(s.ctx)
	s.ErrorIs(err, ErrSaveInProgress)

	close(release)
	<-done
	s.False(s.editor.Saving())
}
