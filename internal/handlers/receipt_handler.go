package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "moneymind/internal/errors"
	"moneymind/internal/receipt"
	"moneymind/internal/services"
)

// ReceiptHandler handles receipt intake requests
type ReceiptHandler struct {
	receiptService services.ReceiptServicer
	auditService   services.AuditServicer
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService services.ReceiptServicer, auditService services.AuditServicer) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService, auditService: auditService}
}

// CommitReceiptRequest represents the reviewed draft sent back for commit
type CommitReceiptRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Description   string  `json:"description" binding:"required,max=255"`
	Category      string  `json:"category" binding:"required,max=100"`
	PaymentMethod string  `json:"payment_method" binding:"required,max=50"`
	Date          string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// Upload runs text recognition on a receipt image
// @Summary     Upload a receipt
// @Description Upload a receipt image and get back a pre-filled draft transaction
// @Tags        receipts
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       receipt formData file true "Receipt image (JPG or PNG, max 10 MiB)"
// @Success     200 {object} receipt.Draft "Draft transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     413 {object} ErrorResponse "File too large"
// @Failure     415 {object} ErrorResponse "Unsupported file type"
// @Failure     502 {object} ErrorResponse "Text recognition failed"
// @Router      /receipts/ocr [post]
func (h *ReceiptHandler) Upload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "receipt file is required"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	draft, err := h.receiptService.ProcessReceipt(c.Request.Context(), userID, receipt.File{
		Name:     fileHeader.Filename,
		MIMEType: fileHeader.Header.Get("Content-Type"),
		Data:     data,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// Commit records a reviewed receipt draft as an expense
// @Summary     Commit a receipt draft
// @Description Confirm a reviewed receipt draft and record it as an expense transaction
// @Tags        receipts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CommitReceiptRequest true "Reviewed draft"
// @Success     201 {object} models.Transaction "Created transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /receipts/commit [post]
func (h *ReceiptHandler) Commit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CommitReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date time.Time
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date"))
			return
		}
	}

	transaction, err := h.receiptService.CommitReceipt(c.Request.Context(), userID, receipt.Draft{
		Amount:        req.Amount,
		Description:   req.Description,
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
		Date:          date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "COMMIT_RECEIPT", "transaction", transaction.ID, c.ClientIP(), map[string]any{
		"amount": transaction.Amount,
	})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}
