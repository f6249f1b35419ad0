package app

import (
	"context"

	"propmatch_backend/internal/email"
	"propmatch_backend/internal/logger"
)

// MockEmailProvider stands in for SMTP when no mail server is configured.
// Messages are logged and dropped.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(ctx context.Context, e *email.Email) error {
	logger.CtxDebug(ctx, "mock email dropped", "to", e.To, "subject", e.Subject)
	return nil
}

func (m *MockEmailProvider) SendTemplate(ctx context.Context, to []string, subject string, templateName string, data email.TemplateData) error {
	logger.CtxDebug(ctx, "mock email dropped", "to", to, "subject", subject, "template", templateName)
	return nil
}

func (m *MockEmailProvider) Validate() error { return nil }
