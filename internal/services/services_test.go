package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/confluencehack/registration_service/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.HackathonRegistration{}))
	return db
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent    []sentMail
	failErr error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

// lastCode pulls the OTP out of the most recent mail body.
func (m *fakeMailer) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, m.sent)
	body := m.sent[len(m.sent)-1].Body
	code := strings.TrimPrefix(body, "Your OTP is: ")
	require.Len(t, code, 6)
	return code
}

type publishedEvent struct {
	Key   string
	Value string
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) PublishMessage(key, value []byte) error {
	p.events = append(p.events, publishedEvent{Key: string(key), Value: string(value)})
	return nil
}

type fakeUploader struct {
	calls   int
	failErr error
}

func (u *fakeUploader) UploadBytes(_ context.Context, folder, filename string, _ []byte) (string, error) {
	u.calls++
	if u.failErr != nil {
		return "", u.failErr
	}
	return fmt.Sprintf("https://files.test/%s/%s", folder, filename), nil
}

var errUploadDown = errors.New("object store unavailable")
