package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"medscan_gateway/models"
)

func TestOpeningWithoutReport(t *testing.T) {
	svc := NewChatService(&fakeBackend{}, newFakeReportStore())

	res := svc.Opening(context.Background(), "user-1")

	require.False(t, res.HasReport)
	require.Len(t, res.Messages, 1)
	require.Equal(t, models.RoleAI, res.Messages[0].Role)
	require.Equal(t, "No report found. Please go back to your diagnostic report and click 'Chat with Report' to start a conversation.", res.Messages[0].Text)
}

func TestOpeningWithReport(t *testing.T) {
	reports := newFakeReportStore()
	require.NoError(t, reports.SetReport(context.Background(), "user-1", "some report"))
	svc := NewChatService(&fakeBackend{}, reports)

	res := svc.Opening(context.Background(), "user-1")

	require.True(t, res.HasReport)
	require.Len(t, res.Messages, 1)
	require.Equal(t, "Hi! I'm your report assistant. How can I help you with your diagnosis?", res.Messages[0].Text)
}

func TestOpeningStoreFailureShowsNoReport(t *testing.T) {
	reports := newFakeReportStore()
	reports.getErr = errors.New("redis down")
	svc := NewChatService(&fakeBackend{}, reports)

	res := svc.Opening(context.Background(), "user-1")
	require.False(t, res.HasReport)
}

func TestSendCarriesStoredReport(t *testing.T) {
	reports := newFakeReportStore()
	require.NoError(t, reports.SetReport(context.Background(), "user-1", "the report text"))
	backend := &fakeBackend{
		chatFn: func(_, _ string) (string, error) {
			return "The finding suggests a follow-up.", nil
		},
	}
	svc := NewChatService(backend, reports)

	res, err := svc.Send(context.Background(), "user-1", "  what does this mean?  ")
	require.NoError(t, err)

	require.Equal(t, 1, backend.chatCalls)
	require.Equal(t, "what does this mean?", backend.lastChatReq.Message)
	require.Equal(t, "the report text", backend.lastChatReq.Report)
	require.Equal(t, "The finding suggests a follow-up.", res.Response)
	require.True(t, res.HasReport)
}

func TestSendWithoutReportStillCallsBackend(t *testing.T) {
	backend := &fakeBackend{
		chatFn: func(_, report string) (string, error) {
			require.Empty(t, report)
			return "General advice only.", nil
		},
	}
	svc := NewChatService(backend, newFakeReportStore())

	res, err := svc.Send(context.Background(), "user-1", "hello")
	require.NoError(t, err)
	require.Equal(t, 1, backend.chatCalls)
	require.False(t, res.HasReport)
}

func TestSendEmptyMessageRejected(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewChatService(backend, newFakeReportStore())

	_, err := svc.Send(context.Background(), "user-1", "   ")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "Message is required.", vErr.Message)
	require.Zero(t, backend.chatCalls)
}

func TestSendBackendFailureBecomesFallbackReply(t *testing.T) {
	backend := &fakeBackend{
		chatFn: func(_, _ string) (string, error) {
			return "", errors.New("model backend down")
		},
	}
	svc := NewChatService(backend, newFakeReportStore())

	res, err := svc.Send(context.Background(), "user-1", "hello")
	require.NoError(t, err)
	require.Equal(t, "There was an error fetching a response. Please try again.", res.Response)
}

func TestSendEmptyReplyBecomesPlaceholder(t *testing.T) {
	svc := NewChatService(&fakeBackend{}, newFakeReportStore())

	res, err := svc.Send(context.Background(), "user-1", "hello")
	require.NoError(t, err)
	require.Equal(t, "Sorry, I could not understand that.", res.Response)
}
