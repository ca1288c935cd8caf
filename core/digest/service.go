package digest

import (
	"context"
	"net/mail"
	"sync"
	"time"

	"github.com/sahyadri/classai/core"
	"github.com/sahyadri/classai/core/student"
)

// Service composes the weekly struggling-students digest and mails it
// to the configured teacher inbox.
type Service interface {
	// SendWeekly builds and sends the digest for the current week. An
	// empty candidate list skips the send.
	SendWeekly(ctx context.Context) error

	// Run fires SendWeekly on the configured weekday and hour until ctx
	// is cancelled. At most one digest is sent per week.
	Run(ctx context.Context)
}

type service struct {
	conf       *core.Config
	logger     core.Logger
	mailSvc    core.EmailService
	studentSvc student.Service

	// SendWeekly may be called directly while Run ticks
	mu           sync.Mutex
	lastSentWeek string
}

var _ Service = (*service)(nil)

func NewService(conf *core.Config, logger core.Logger, mailSvc core.EmailService, studentSvc student.Service) Service {
	return &service{
		conf:       conf,
		logger:     logger,
		mailSvc:    mailSvc,
		studentSvc: studentSvc,
	}
}

func (svc *service) SendWeekly(ctx context.Context) error {
	struggling, err := svc.studentSvc.Struggling(ctx)
	if err != nil {
		return err
	}
	if len(struggling) == 0 {
		svc.logger.Info("weekly digest skipped, no struggling students this week")
		return nil
	}

	week := student.WeekKey(time.Now())
	msg := &core.EmailMessage{
		To:      []mail.Address{{Address: svc.conf.TeacherInboxEmail}},
		Subject: "Struggling students this week",
		TemplateData: digestData{
			Week:     week,
			Students: struggling,
		},
		TextTemplate: textTemplate,
		HTMLTemplate: htmlTemplate,
	}
	if err := msg.Render(svc.conf); err != nil {
		return err
	}

	svc.mailSvc.SendMessages(msg)
	svc.mu.Lock()
	svc.lastSentWeek = week
	svc.mu.Unlock()
	svc.logger.Info("weekly digest sent", map[string]interface{}{"week": week, "students": len(struggling)})
	return nil
}

func (svc *service) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if !svc.due(now) {
				continue
			}
			if err := svc.SendWeekly(ctx); err != nil {
				svc.logger.Error("sending weekly digest", err)
			}
		}
	}
}

func (svc *service) due(now time.Time) bool {
	if now.Weekday() != svc.conf.Digest.Weekday || now.Hour() != svc.conf.Digest.Hour {
		return false
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.lastSentWeek != student.WeekKey(now)
}
