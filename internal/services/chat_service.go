package services

import (
	"context"

	"moneymind/internal/chat"
)

// Assistant generates a reply to a user message given their budget snapshot.
type Assistant interface {
	Reply(ctx context.Context, message string, snapshot chat.Snapshot) (string, error)
}

// chatService answers budgeting questions with the user's live budget
// figures embedded in the prompt.
type chatService struct {
	assistant Assistant
	analytics AnalyticsServicer
}

// NewChatService creates a new ChatServicer.
func NewChatService(assistant Assistant, analytics AnalyticsServicer) ChatServicer {
	return &chatService{assistant: assistant, analytics: analytics}
}

// Chat builds the user's current budget snapshot and asks the assistant.
func (s *chatService) Chat(ctx context.Context, userID, message string) (string, error) {
	report, err := s.analytics.GetBudgetReport(userID)
	if err != nil {
		return "", err
	}

	snapshot := chat.Snapshot{
		TotalSpent:   report.TotalSpent,
		MonthlyLimit: report.TotalBudget,
		Remaining:    report.RemainingBudget,
	}
	return s.assistant.Reply(ctx, message, snapshot)
}
