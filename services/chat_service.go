package services

import (
	"context"
	"strings"

	"medscan_gateway/models"
	"medscan_gateway/pkg/logging"
)

const (
	chatGreetingMsg   = "Hi! I'm your report assistant. How can I help you with your diagnosis?"
	chatNoReportMsg   = "No report found. Please go back to your diagnostic report and click 'Chat with Report' to start a conversation."
	chatFallbackMsg   = "There was an error fetching a response. Please try again."
	chatEmptyReplyMsg = "Sorry, I could not understand that."
)

// ChatService is stateless per turn: each send carries the current
// message and whatever report is stored, nothing else. Any memory of
// prior turns is the backend's problem; the transcript lives client-side.
type ChatService struct {
	backend InferenceAPI
	reports ReportStore
}

func NewChatService(backend InferenceAPI, reports ReportStore) *ChatService {
	return &ChatService{backend: backend, reports: reports}
}

// Opening seeds the transcript. Without a stored report the one fixed
// "no report" message is all the client gets.
func (s *ChatService) Opening(ctx context.Context, userID string) *models.ChatOpeningRes {
	_, hasReport, err := s.reports.GetReport(ctx, userID)
	if err != nil {
		logging.Logger.Error("fail reading report store", "error", err, "userID", userID)
		hasReport = false
	}
	if !hasReport {
		return &models.ChatOpeningRes{
			Messages:  []models.ChatMessage{{Role: models.RoleAI, Text: chatNoReportMsg}},
			HasReport: false,
		}
	}
	return &models.ChatOpeningRes{
		Messages:  []models.ChatMessage{{Role: models.RoleAI, Text: chatGreetingMsg}},
		HasReport: true,
	}
}

// Send issues exactly one backend call and yields exactly one AI reply;
// a failed call becomes the fixed fallback text, not an error.
func (s *ChatService) Send(ctx context.Context, userID, message string) (*models.ChatRes, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, NewValidationError("Message is required.")
	}

	// whatever is stored goes along, including nothing
	report, hasReport, err := s.reports.GetReport(ctx, userID)
	if err != nil {
		logging.Logger.Error("fail reading report store", "error", err, "userID", userID)
		report = ""
	}

	reply, err := s.backend.ChatWithReport(ctx, message, report)
	if err != nil {
		logging.Logger.Error("fail ChatWithReport", "error", err, "userID", userID)
		reply = chatFallbackMsg
	} else if reply == "" {
		reply = chatEmptyReplyMsg
	}

	return &models.ChatRes{Response: reply, HasReport: hasReport}, nil
}
