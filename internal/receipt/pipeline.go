package receipt

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "moneymind/internal/errors"
	"moneymind/internal/models"
)

// State identifies where a receipt sits in the intake flow.
type State string

const (
	// StateSelecting waits for a file to be chosen.
	StateSelecting State = "selecting"
	// StateUploading runs text recognition on the chosen file.
	StateUploading State = "uploading"
	// StateReview holds a draft transaction awaiting confirmation.
	StateReview State = "review"
)

const (
	maxDescriptionRunes = 80

	defaultCategory      = "Other"
	defaultPaymentMethod = "Credit Card"
)

// allowedMIMETypes are the receipt image types accepted for recognition.
var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/jpg":  true,
}

// Recognizer extracts text from a receipt image.
type Recognizer interface {
	RecognizeText(ctx context.Context, mimeType string, data []byte) (string, error)
}

// TransactionSink receives the confirmed transaction at the end of the flow.
type TransactionSink interface {
	CreateFromReceipt(ctx context.Context, userID string, draft Draft) (*models.Transaction, error)
}

// File is a receipt image selected for intake.
type File struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Draft is the pre-filled transaction produced from a recognized receipt.
// Every field may be edited before commit.
type Draft struct {
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	PaymentMethod string    `json:"payment_method"`
	Date          time.Time `json:"date"`
	RawText       string    `json:"raw_text"`
}

// Pipeline drives a receipt from file selection through recognition to a
// committed expense transaction.
type Pipeline struct {
	recognizer Recognizer
	sink       TransactionSink
	maxBytes   int64
	now        func() time.Time

	state State
	file  *File
	draft *Draft
}

// NewPipeline returns a pipeline in the selecting state.
func NewPipeline(recognizer Recognizer, sink TransactionSink, maxBytes int64) *Pipeline {
	return &Pipeline{
		recognizer: recognizer,
		sink:       sink,
		maxBytes:   maxBytes,
		now:        time.Now,
		state:      StateSelecting,
	}
}

// State returns the current pipeline state.
func (p *Pipeline) State() State { return p.state }

// Draft returns the draft under review, or nil outside the review state.
func (p *Pipeline) Draft() *Draft { return p.draft }

// Select validates and accepts a receipt file, leaving the pipeline ready
// to upload. Rejects unsupported MIME types and oversized files.
func (p *Pipeline) Select(file File) error {
	if !allowedMIMETypes[file.MIMEType] {
		return apperrors.ErrUnsupportedFileType
	}
	if int64(len(file.Data)) > p.maxBytes {
		return apperrors.ErrReceiptTooLarge
	}
	p.file = &file
	p.state = StateSelecting
	p.draft = nil
	return nil
}

// Upload runs text recognition on the selected file and moves the pipeline
// to review with a pre-filled draft. On recognition failure the pipeline
// returns to selecting with the file still chosen.
func (p *Pipeline) Upload(ctx context.Context) error {
	if p.state == StateUploading {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Recognition already in progress")
	}
	if p.file == nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "No receipt file selected")
	}

	p.state = StateUploading
	text, err := p.recognizer.RecognizeText(ctx, p.file.MIMEType, p.file.Data)
	if err != nil {
		p.state = StateSelecting
		return apperrors.Wrap(apperrors.ErrOCRFailed, err)
	}

	p.draft = p.buildDraft(text)
	p.state = StateReview
	return nil
}

// Cancel discards any draft and selected file and returns to selecting.
func (p *Pipeline) Cancel() {
	p.file = nil
	p.draft = nil
	p.state = StateSelecting
}

// Commit validates the (possibly edited) draft and hands it to the sink as
// an expense transaction. On success the pipeline resets to selecting.
func (p *Pipeline) Commit(ctx context.Context, userID string, draft Draft) (*models.Transaction, error) {
	if p.state != StateReview {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "No receipt under review")
	}
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	tx, err := p.sink.CreateFromReceipt(ctx, userID, draft)
	if err != nil {
		return nil, err
	}

	p.Cancel()
	return tx, nil
}

// ValidateDraft checks that a draft carries everything a transaction needs.
func ValidateDraft(draft Draft) error {
	switch {
	case draft.Amount <= 0:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
	case strings.TrimSpace(draft.Description) == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Description is required")
	case strings.TrimSpace(draft.Category) == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Category is required")
	case strings.TrimSpace(draft.PaymentMethod) == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Payment method is required")
	case draft.Date.IsZero():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Date is required")
	}
	return nil
}

func (p *Pipeline) buildDraft(text string) *Draft {
	return &Draft{
		Amount:        ExtractAmount(text),
		Description:   descriptionFromText(text, p.file.Name),
		Category:      defaultCategory,
		PaymentMethod: defaultPaymentMethod,
		Date:          p.now(),
		RawText:       text,
	}
}

// descriptionFromText uses the first non-empty line of the recognized text,
// capped at 80 runes, falling back to the file name.
func descriptionFromText(text, filename string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) > maxDescriptionRunes {
			return string([]rune(line)[:maxDescriptionRunes])
		}
		return line
	}
	return filename
}
