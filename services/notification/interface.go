package notification

import (
	"context"

	"go.uber.org/zap"
)

// NotificationService delivers session notifications to participants. The
// push transport itself is an external collaborator; this boundary only
// hands messages over.
type NotificationService interface {
	SendClientNotification(ctx context.Context, clientID, title, body string, data map[string]string) error
	SendAdvisorNotification(ctx context.Context, advisorID, title, body string, data map[string]string) error
}

// LogNotificationService records notifications to the service log. It
// stands in wherever a push transport is not wired.
type LogNotificationService struct {
	Logger *zap.Logger
}

func (s *LogNotificationService) SendClientNotification(ctx context.Context, clientID, title, body string, data map[string]string) error {
	s.Logger.Info("client notification",
		zap.String("clientID", clientID),
		zap.String("title", title),
		zap.String("body", body),
		zap.Any("data", data))
	return nil
}

func (s *LogNotificationService) SendAdvisorNotification(ctx context.Context, advisorID, title, body string, data map[string]string) error {
	s.Logger.Info("advisor notification",
		zap.String("advisorID", advisorID),
		zap.String("title", title),
		zap.String("body", body),
		zap.Any("data", data))
	return nil
}
