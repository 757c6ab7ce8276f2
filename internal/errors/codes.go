package errors

// ErrorCode represents a standardized error code used by the API and its clients
type ErrorCode string

// Network error codes (NETWORK_*)
const (
	NetworkUnreachable ErrorCode = "NETWORK_001"
)

// Response error codes (RESPONSE_*)
const (
	ResponseInvalid ErrorCode = "RESPONSE_001"
)

// Request error codes (REQUEST_*), one per HTTP status the client distinguishes
const (
	RequestInvalid         ErrorCode = "REQUEST_001"
	RequestNotFound        ErrorCode = "REQUEST_002"
	RequestPayloadTooLarge ErrorCode = "REQUEST_003"
	RequestUnprocessable   ErrorCode = "REQUEST_004"
	RequestRateLimited     ErrorCode = "REQUEST_005"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationInvalidDate   ErrorCode = "VALIDATION_002"
	ValidationOutOfRange    ErrorCode = "VALIDATION_003"
	ValidationInvalidFormat ErrorCode = "VALIDATION_004"
)

// Upload error codes (UPLOAD_*)
const (
	UploadUnsupportedFormat ErrorCode = "UPLOAD_001"
	UploadFileTooLarge      ErrorCode = "UPLOAD_002"
	UploadFailed            ErrorCode = "UPLOAD_003"
	UploadInvalidImage      ErrorCode = "UPLOAD_004"
	UploadMissingFile       ErrorCode = "UPLOAD_005"
	UploadReadFailed        ErrorCode = "UPLOAD_006"
)

// Batch upload error codes (BATCH_*)
const (
	BatchNoValidFiles ErrorCode = "BATCH_001"
	BatchFilesSkipped ErrorCode = "BATCH_002"
	BatchUploadFailed ErrorCode = "BATCH_003"
)

// Receipt error codes (RECEIPT_*)
const (
	ReceiptNotFound         ErrorCode = "RECEIPT_001"
	ReceiptListFailed       ErrorCode = "RECEIPT_002"
	ReceiptExtractionFailed ErrorCode = "RECEIPT_003"
	ReceiptInvalidID        ErrorCode = "RECEIPT_004"
)

// Summary error codes (SUMMARY_*)
const (
	SummaryMonthListFailed ErrorCode = "SUMMARY_001"
	SummaryFetchFailed     ErrorCode = "SUMMARY_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemUnexpectedError    ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default user-facing messages
var errorMessages = map[ErrorCode]string{
	NetworkUnreachable: "ネットワークエラー：サーバーに接続できません",

	ResponseInvalid: "サーバーの応答を解析できませんでした",

	RequestInvalid:         "リクエストが正しくありません",
	RequestNotFound:        "データが見つかりません",
	RequestPayloadTooLarge: "ファイルサイズが大きすぎます",
	RequestUnprocessable:   "入力値が正しくありません",
	RequestRateLimited:     "リクエストが多すぎます。しばらくしてから再試行してください",

	ValidationGeneral:       "入力値が正しくありません",
	ValidationInvalidDate:   "日付の形式が正しくありません（YYYY-MM-DD）",
	ValidationOutOfRange:    "値が許容範囲外です",
	ValidationInvalidFormat: "値の形式が正しくありません",

	UploadUnsupportedFormat: "対応していないファイル形式です（JPEG/PNG/WebPのみ対応）",
	UploadFileTooLarge:      "ファイルサイズが10MBを超えています",
	UploadFailed:            "アップロード中にエラーが発生しました",
	UploadInvalidImage:      "有効な画像ファイルではありません",
	UploadMissingFile:       "ファイルが指定されていません",
	UploadReadFailed:        "ファイルを読み込めませんでした",

	BatchNoValidFiles: "対応していないファイル形式またはサイズ超過です",
	BatchFilesSkipped: "%d件のファイルがスキップされました（形式/サイズ不正）",
	BatchUploadFailed: "一括アップロード中にエラーが発生しました",

	ReceiptNotFound:         "レシートが見つかりません",
	ReceiptListFailed:       "レシート一覧の取得に失敗しました",
	ReceiptExtractionFailed: "AI解析中にエラーが発生しました",
	ReceiptInvalidID:        "レシートIDが正しくありません",

	SummaryMonthListFailed: "月リストの取得に失敗しました",
	SummaryFetchFailed:     "サマリーの取得に失敗しました",

	SystemInternalError:      "サーバー内部エラーが発生しました",
	SystemDatabaseError:      "データベースエラーが発生しました",
	SystemServiceUnavailable: "サービスが一時的に利用できません",
	SystemUnexpectedError:    "エラーが発生しました",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return errorMessages[SystemUnexpectedError]
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
