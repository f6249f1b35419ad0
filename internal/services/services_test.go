package services

import (
	"context"
	"testing"
	"time"

	"propmatch_backend/internal/auth"
	"propmatch_backend/internal/email"
	"propmatch_backend/internal/models"
	"propmatch_backend/internal/testutil"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, e *email.Email) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockMailer) SendTemplate(ctx context.Context, to []string, subject string, templateName string, data email.TemplateData) error {
	return m.Called(ctx, to, subject, templateName, data).Error(0)
}

func (m *mockMailer) Validate() error {
	return nil
}

type fixture struct {
	db       *gorm.DB
	mailer   *mockMailer
	services *ServiceContainer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mailer := &mockMailer{}
	mailer.On("SendTemplate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	return &fixture{
		db:     testutil.NewTestDB(t),
		mailer: mailer,
		services: NewServiceContainer(Dependencies{
			Tokens:   auth.NewTokenManager("test-secret", "propmatch", "propmatch-clients", time.Hour),
			Mailer:   mailer,
			CacheTTL: time.Minute,
		}),
	}
}

// drain waits for fire-and-forget notifications so mailer assertions are stable.
func (f *fixture) drain(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.services.NotificationService.Wait(ctx))
}

func principalOf(u *models.User) *auth.Principal {
	return &auth.Principal{UserID: u.ID, Email: u.Email, Role: u.Role}
}
