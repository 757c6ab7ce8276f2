package services

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"receipt-scanner/internal/client"
	"receipt-scanner/internal/files"
	"receipt-scanner/internal/logging"
	"receipt-scanner/internal/models"
	"receipt-scanner/internal/services/service_mocks"
	"receipt-scanner/internal/validation"
)

// BatchUploadSuite defines the test suite for the batch upload lifecycle
type BatchUploadSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	gateway *service_mocks.MockReceiptGatewayInterface
	batch   *BatchUpload
	ctx     context.Context
}

func TestBatchUploadSuite(t *testing.T) {
	suite.Run(t, new(BatchUploadSuite))
}

func (s *BatchUploadSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.gateway = service_mocks.NewMockReceiptGatewayInterface(s.ctrl)
	s.batch = NewBatchUpload(s.gateway, nil, logging.Discard())
	s.ctx = context.Background()
}

func (s *BatchUploadSuite) TearDownTest() {
	s.ctrl.Finish()
}

func failed(name, msg string) models.BatchScanResultItem {
	return models.BatchScanResultItem{Filename: name, Success: false, Error: &msg}
}

// Test all valid files are accepted without a message
func (s *BatchUploadSuite) TestSelectFiles_AllValid() {
	s.batch.SelectFiles([]files.File{jpeg("a.jpg"), jpeg("b.jpg")})

	state := s.batch.State()
	s.Len(state.Files, 2)
	s.Empty(state.Error)
	s.Equal(UploadStatusIdle, state.Status)
}

// Test skipped files are counted in the message
func (s *BatchUploadSuite) TestSelectFiles_SomeSkipped() {
	s.batch.SelectFiles([]files.File{
		jpeg("a.jpg"),
		files.FromBytes("doc.pdf", "application/pdf", []byte("%PDF")),
		files.FromBytes("big.png", "image/png", make([]byte, validation.MaxUploadSize+1)),
	})

	state := s.batch.State()
	s.Len(state.Files, 1)
	s.Equal("a.jpg", state.Files[0].Name())
	s.Equal("2件のファイルがスキップされました（形式/サイズ不正）", state.Error)
}

// Test no valid files gives an empty set and an error
func (s *BatchUploadSuite) TestSelectFiles_NoneValid() {
	s.batch.SelectFiles([]files.File{files.FromBytes("doc.pdf", "application/pdf", []byte("%PDF"))})

	state := s.batch.State()
	s.Empty(state.Files)
	s.NotNil(state.Files)
	s.Equal("対応していないファイル形式またはサイズ超過です", state.Error)
}

// Test reselecting clears the previous result and progress
func (s *BatchUploadSuite) TestSelectFiles_ClearsResult() {
	s.batch.SelectFiles([]files.File{jpeg("a.jpg")})
	s.gateway.EXPECT().BatchScanReceipts(gomock.Any(), gomock.Any()).
		Return(&models.BatchScanResult{
			Results:      []models.BatchScanResultItem{{Filename: "a.jpg", Success: true, Receipt: &models.Receipt{ID: 1}}},
			SuccessCount: 1,
		}, nil)
	s.batch.Upload(s.ctx)
	s.Require().NotNil(s.batch.State().Result)

	s.batch.SelectFiles([]files.File{jpeg("b.jpg")})

	state := s.batch.State()
	s.Nil(state.Result)
	s.Zero(state.Progress)
	s.Equal(UploadStatusIdle, state.Status)
}

// Test upload with no files is a no-op
func (s *BatchUploadSuite) TestUpload_NoFiles() {
	s.batch.Upload(s.ctx)

	s.Equal(UploadStatusIdle, s.batch.State().Status)
}

// Test a mixed batch reports progress and the per-file outcomes
func (s *BatchUploadSuite) TestUpload_Mixed() {
	a, b, c := jpeg("a.jpg"), jpeg("b.jpg"), jpeg("c.jpg")
	s.batch.SelectFiles([]files.File{a, b, c})
	result := &models.BatchScanResult{
		Results: []models.BatchScanResultItem{
			{Filename: "a.jpg", Success: true, Receipt: &models.Receipt{ID: 1}},
			failed("b.jpg", "AI解析中にエラーが発生しました"),
			{Filename: "c.jpg", Success: true, Receipt: &models.Receipt{ID: 2}},
		},
		SuccessCount: 2,
		ErrorCount:   1,
	}
	s.gateway.EXPECT().BatchScanReceipts(gomock.Any(), []files.File{a, b, c}).Return(result, nil)

	var progress []int
	var statuses []UploadStatus
	s.batch.OnChange(func(state BatchState) {
		progress = append(progress, state.Progress)
		statuses = append(statuses, state.Status)
	})

	s.batch.Upload(s.ctx)

	state := s.batch.State()
	s.Equal(UploadStatusDone, state.Status)
	s.Equal(BatchProgressDone, state.Progress)
	s.Equal(2, state.Result.SuccessCount)
	s.Equal(1, state.Result.ErrorCount)
	s.Equal([]int{BatchProgressStarted, BatchProgressDone}, progress)
	s.Equal([]UploadStatus{UploadStatusUploading, UploadStatusDone}, statuses)
}

// Test counts that disagree with the results are recomputed
func (s *BatchUploadSuite) TestUpload_RecountsMismatch() {
	s.batch.SelectFiles([]files.File{jpeg("a.jpg")})
	s.gateway.EXPECT().BatchScanReceipts(gomock.Any(), gomock.Any()).
		Return(&models.BatchScanResult{
			Results:      []models.BatchScanResultItem{failed("a.jpg", "x")},
			SuccessCount: 1,
		}, nil)

	s.batch.Upload(s.ctx)

	result := s.batch.State().Result
	s.Zero(result.SuccessCount)
	s.Equal(1, result.ErrorCount)
}

// Test a missing result body becomes an empty result
func (s *BatchUploadSuite) TestUpload_NilResult() {
	s.batch.SelectFiles([]files.File{jpeg("a.jpg")})
	s.gateway.EXPECT().BatchScanReceipts(gomock.Any(), gomock.Any()).Return(nil, nil)

	s.batch.Upload(s.ctx)

	state := s.batch.State()
	s.Equal(UploadStatusDone, state.Status)
	s.Require().NotNil(state.Result)
	s.Empty(state.Result.Results)
}

// Test a failed batch call stores the message and keeps the files
func (s *BatchUploadSuite) TestUpload_Failure() {
	s.batch.SelectFiles([]files.File{jpeg("a.jpg")})
	s.gateway.EXPECT().BatchScanReceipts(gomock.Any(), gomock.Any()).
		Return(nil, &client.APIError{StatusCode: 413, Message: "ファイルサイズが大きすぎます"})

	s.batch.Upload(s.ctx)

	state := s.batch.State()
	s.Equal(UploadStatusError, state.Status)
	s.Equal("ファイルサイズが大きすぎます", state.Error)
	s.Len(state.Files, 1)
	s.Nil(state.Result)
}

// Test a finished or failed batch is not sent again without a new selection
func (s *BatchUploadSuite) TestUpload_NoRepeatAfterDoneOrError() {
	s.batch.SelectFiles([]files.File{jpeg("a.jpg")})
	s.gateway.EXPECT().BatchScanReceipts(gomock.Any(), gomock.Any()).
		Return(&models.BatchScanResult{SuccessCount: 1, Results: []models.BatchScanResultItem{
			{Filename: "a.jpg", Success: true, Receipt: &models.Receipt{ID: 7}},
		}}, nil).Times(1)

	s.batch.Upload(s.ctx)
	s.batch.Upload(s.ctx)

	state := s.batch.State()
	s.Equal(UploadStatusDone, state.Status)
	s.Equal(BatchProgressDone, state.Progress)
	s.Require().NotNil(state.Result)

	s.batch.SelectFiles([]files.File{jpeg("b.jpg")})
	s.gateway.EXPECT().BatchScanReceipts(gomock.Any(), gomock.Any()).
		Return(nil, &client.APIError{Message: "boom"}).Times(1)

	s.batch.Upload(s.ctx)
	s.batch.Upload(s.ctx)

	state = s.batch.State()
	s.Equal(UploadStatusError, state.Status)
	s.Equal("boom", state.Error)
	s.Nil(state.Result)
	s.Equal(BatchProgressStarted, state.Progress)
}

// Test a failure without text falls back to the batch message
func (s *BatchUploadSuite) TestUpload_FailureFallback() {
	s.batch.SelectFiles([]files.File{jpeg("a.jpg")})
	s.gateway.EXPECT().BatchScanReceipts(gomock.Any(), gomock.Any()).Return(nil, &client.APIError{})

	s.batch.Upload(s.ctx)

	s.Equal("一括アップロード中にエラーが発生しました", s.batch.State().Error)
}

// Test a result arriving after reset is dropped
func (s *BatchUploadSuite) TestUpload_SupersededByReset() {
	s.batch.SelectFiles([]files.File{jpeg("a.jpg")})

	started := make(chan struct{})
	release := make(chan struct{})
	s.gateway.EXPECT().BatchScanReceipts(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, uploads []files.File) (*models.BatchScanResult, error) {
			close(started)
			<-release
			return &models.BatchScanResult{Results: []models.BatchScanResultItem{}}, nil
		})

	done := make(chan struct{})
	go func() {
		s.batch.Upload(s.ctx)
		close(done)
	}()
	<-started
	s.batch.Reset()
	close(release)
	<-done

	state := s.batch.State()
	s.Equal(UploadStatusIdle, state.Status)
	s.Empty(state.Files)
	s.Nil(state.Result)
	s.Zero(state.Progress)
}

// Test reset returns every field to its initial value
func (s *BatchUploadSuite) TestReset() {
	s.batch.SelectFiles([]files.File{files.FromBytes("doc.pdf", "application/pdf", nil)})
	s.Require().NotEmpty(s.batch.State().Error)

	s.batch.Reset()

	state := s.batch.State()
	s.Equal(UploadStatusIdle, state.Status)
	s.Empty(state.Files)
	s.Empty(state.Error)
	s.Nil(state.Result)
	s.Zero(state.Progress)
}
