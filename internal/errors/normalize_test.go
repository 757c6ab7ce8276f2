package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// NormalizeTestSuite covers the message normalization table
type NormalizeTestSuite struct {
	suite.Suite
}

func TestNormalizeTestSuite(t *testing.T) {
	suite.Run(t, new(NormalizeTestSuite))
}

func detail(s string) *string {
	return &s
}

// TestNormalizeMessage tests every row of the status table
func (s *NormalizeTestSuite) TestNormalizeMessage() {
	testCases := []struct {
		name     string
		raw      RawError
		expected string
	}{
		{"no response", RawError{Cause: errors.New("connection refused")}, "ネットワークエラー：サーバーに接続できません"},
		{"no response ignores detail", RawError{Detail: detail("x")}, "ネットワークエラー：サーバーに接続できません"},
		{"400 with detail", RawError{StatusCode: 400, Detail: detail("有効な画像ファイルではありません")}, "有効な画像ファイルではありません"},
		{"400 without detail", RawError{StatusCode: 400}, "リクエストが正しくありません"},
		{"404 with detail", RawError{StatusCode: 404, Detail: detail("レシートが見つかりません")}, "レシートが見つかりません"},
		{"404 without detail", RawError{StatusCode: 404}, "データが見つかりません"},
		{"413 ignores detail", RawError{StatusCode: 413, Detail: detail("too big")}, "ファイルサイズが大きすぎます"},
		{"413 without detail", RawError{StatusCode: 413}, "ファイルサイズが大きすぎます"},
		{"422 with detail", RawError{StatusCode: 422, Detail: detail("日付が不正")}, "日付が不正"},
		{"422 without detail", RawError{StatusCode: 422}, "入力値が正しくありません"},
		{"500 with detail", RawError{StatusCode: 500, Detail: detail("AI解析中にエラーが発生しました")}, "AI解析中にエラーが発生しました"},
		{"500 without detail", RawError{StatusCode: 500}, "サーバー内部エラーが発生しました"},
		{"503 without detail", RawError{StatusCode: 503}, "サーバー内部エラーが発生しました"},
		{"409 with detail", RawError{StatusCode: 409, Detail: detail("conflict")}, "conflict"},
		{"418 without detail", RawError{StatusCode: 418}, "エラーが発生しました（418）"},
		{"429 without detail", RawError{StatusCode: 429}, "エラーが発生しました（429）"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, NormalizeMessage(tc.raw))
		})
	}
}

// TestNormalizeMessage_PureFunction tests that normalization is deterministic
func (s *NormalizeTestSuite) TestNormalizeMessage_PureFunction() {
	raw := RawError{StatusCode: 404}
	s.Equal(NormalizeMessage(raw), NormalizeMessage(raw))
}

// TestParseDetail tests extraction of detail from error bodies
func (s *NormalizeTestSuite) TestParseDetail() {
	testCases := []struct {
		name     string
		body     string
		expected *string
	}{
		{"string detail", `{"detail":"レシートが見つかりません"}`, detail("レシートが見つかりません")},
		{"validation list", `{"detail":[{"loc":["query","year"],"msg":"too small"},{"msg":"bad month"}]}`, detail("too small; bad month")},
		{"null detail", `{"detail":null}`, nil},
		{"empty list", `{"detail":[]}`, nil},
		{"missing detail", `{"message":"nope"}`, nil},
		{"object detail", `{"detail":{"a":1}}`, nil},
		{"not json", `<html>502</html>`, nil},
		{"empty body", ``, nil},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, ParseDetail([]byte(tc.body)))
		})
	}
}
