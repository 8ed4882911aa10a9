package locale

import (
	"fmt"
	"strings"
)

// Language selects one of the two fixed string tables.
type Language string

const (
	English    Language = "en"
	Vietnamese Language = "vi"
)

// Parse maps a user supplied value to a Language.
func Parse(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case "", English:
		return English, nil
	case Vietnamese:
		return Vietnamese, nil
	default:
		return English, fmt.Errorf("unsupported language %q (supported: en, vi)", s)
	}
}

// Toggle flips between English and Vietnamese.
func (l Language) Toggle() Language {
	if l == Vietnamese {
		return English
	}
	return Vietnamese
}

func (l Language) String() string {
	return string(l)
}

// Strings returns the table for l, falling back to English.
func (l Language) Strings() *Strings {
	if l == Vietnamese {
		return &vietnamese
	}
	return &english
}

// Strings holds every user-facing string the client renders or composes.
type Strings struct {
	Title            string
	Subtitle         string
	InputPlaceholder string
	Welcome          string
	WelcomeHint      string
	Thinking         string
	Sources          string
	You              string
	Assistant        string

	UploadTitle      string
	AcceptedFormats  string
	SelectPosition   string
	FilePathPrompt   string
	NoPositionWarn   string
	NoFileWarn       string
	UploadHidden     string
	Busy             string
	Cleared          string
	LanguageSwitched string

	// Format strings with a single %s verb.
	ChatError   string
	CVError     string
	CVSubmitted string
}

// ChatFailure composes the transcript message for a failed plain turn.
func (s *Strings) ChatFailure(detail string) string {
	return fmt.Sprintf(s.ChatError, detail)
}

// CVFailure composes the transcript message for a failed CV turn.
func (s *Strings) CVFailure(detail string) string {
	return fmt.Sprintf(s.CVError, detail)
}

// CVSummary composes the user message recorded for a CV submission.
func (s *Strings) CVSummary(filename, preview string) string {
	return fmt.Sprintf(s.CVSubmitted, filename, preview)
}

var english = Strings{
	Title:            "Internal HR Assistant",
	Subtitle:         "Ask me about policies, benefits, leave, and more",
	InputPlaceholder: "Type your HR question here...",
	Welcome:          "Welcome to HR Assistant",
	WelcomeHint:      "Ask me anything about HR policies, benefits, and leave",
	Thinking:         "thinking...",
	Sources:          "Sources:",
	You:              "You",
	Assistant:        "HR Assistant",

	UploadTitle:      "Upload CV",
	AcceptedFormats:  "Accepted: PDF, DOC, DOCX, TXT",
	SelectPosition:   "Select Position",
	FilePathPrompt:   "Path to your CV",
	NoPositionWarn:   "⚠️ Please select a position first",
	NoFileWarn:       "⚠️ Please choose a CV file first",
	UploadHidden:     "CV upload is available after asking to evaluate your CV",
	Busy:             "Still waiting for the previous answer",
	Cleared:          "Chat history cleared",
	LanguageSwitched: "Language: English",

	ChatError:   "Sorry, I encountered an error: %s. Please try again.",
	CVError:     "Error evaluating CV: %s",
	CVSubmitted: "📎 Submitted CV: %s\n\nContent:\n%s",
}

var vietnamese = Strings{
	Title:            "Trợ Lý HR Nội Bộ",
	Subtitle:         "Hỏi tôi về chính sách, phúc lợi, nghỉ phép và nhiều hơn nữa",
	InputPlaceholder: "Nhập câu hỏi HR của bạn ở đây...",
	Welcome:          "Chào mừng đến với Trợ Lý HR",
	WelcomeHint:      "Hỏi tôi bất cứ điều gì về chính sách HR, phúc lợi và nghỉ phép",
	Thinking:         "đang suy nghĩ...",
	Sources:          "Nguồn:",
	You:              "Bạn",
	Assistant:        "Trợ Lý HR",

	UploadTitle:      "Upload CV",
	AcceptedFormats:  "Chấp nhận: PDF, DOC, DOCX, TXT",
	SelectPosition:   "Chọn Vị Trí",
	FilePathPrompt:   "Đường dẫn tới CV của bạn",
	NoPositionWarn:   "⚠️ Vui lòng chọn vị trí trước",
	NoFileWarn:       "⚠️ Vui lòng chọn file CV trước",
	UploadHidden:     "Chức năng upload CV có sẵn sau khi yêu cầu đánh giá CV",
	Busy:             "Đang chờ câu trả lời trước đó",
	Cleared:          "Đã xóa lịch sử chat",
	LanguageSwitched: "Ngôn ngữ: Tiếng Việt",

	ChatError:   "Xin lỗi, tôi gặp lỗi: %s. Vui lòng thử lại.",
	CVError:     "Lỗi đánh giá CV: %s",
	CVSubmitted: "📎 Đã gửi CV: %s\n\nNội dung:\n%s",
}
