package services

import (
	"context"
	"time"

	"moneymind/internal/models"
	"moneymind/internal/receipt"
)

// receiptService runs the receipt intake flow. Each upload builds a fresh
// pipeline since the HTTP surface is stateless; the draft travels to the
// client and comes back on commit.
type receiptService struct {
	recognizer   receipt.Recognizer
	transactions TransactionServicer
	catalog      Catalog
	maxBytes     int64
}

// NewReceiptService creates a new ReceiptServicer.
func NewReceiptService(recognizer receipt.Recognizer, transactions TransactionServicer, catalog Catalog, maxBytes int64) ReceiptServicer {
	return &receiptService{
		recognizer:   recognizer,
		transactions: transactions,
		catalog:      catalog,
		maxBytes:     maxBytes,
	}
}

// ProcessReceipt validates the uploaded file, runs text recognition, and
// returns a draft transaction for the user to review.
func (s *receiptService) ProcessReceipt(ctx context.Context, userID string, file receipt.File) (*receipt.Draft, error) {
	p := receipt.NewPipeline(s.recognizer, s, s.maxBytes)
	if err := p.Select(file); err != nil {
		return nil, err
	}
	if err := p.Upload(ctx); err != nil {
		return nil, err
	}
	return p.Draft(), nil
}

// CommitReceipt validates the reviewed draft and records it as an expense.
// A draft without a date commits dated today.
func (s *receiptService) CommitReceipt(ctx context.Context, userID string, draft receipt.Draft) (*models.Transaction, error) {
	if draft.Date.IsZero() {
		draft.Date = time.Now()
	}
	if err := receipt.ValidateDraft(draft); err != nil {
		return nil, err
	}
	if err := s.catalog.ValidateCategory(draft.Category); err != nil {
		return nil, err
	}
	if err := s.catalog.ValidatePaymentMethod(draft.PaymentMethod); err != nil {
		return nil, err
	}
	return s.CreateFromReceipt(ctx, userID, draft)
}

// CreateFromReceipt implements receipt.TransactionSink. Receipts always
// commit as expenses dated to the day.
func (s *receiptService) CreateFromReceipt(ctx context.Context, userID string, draft receipt.Draft) (*models.Transaction, error) {
	date := draft.Date
	if date.IsZero() {
		date = time.Now()
	}
	return s.transactions.CreateTransaction(userID, TransactionInput{
		Type:          models.TransactionTypeExpense,
		Amount:        draft.Amount,
		Category:      draft.Category,
		Description:   draft.Description,
		Date:          date,
		PaymentMethod: draft.PaymentMethod,
	})
}
