package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/tenancyjustice/clerk/modules/intake/domain/aggregates/submission"
	"github.com/tenancyjustice/clerk/modules/issue/domain/aggregates/issue"
	"github.com/tenancyjustice/clerk/pkg/eventbus"
)

// NotificationHandler is the in-process consumer of processing events. The
// actual email/Slack integrations live outside this service; this handler
// gives their dispatch point a home and an audit trail in the logs.
type NotificationHandler struct {
	log *logrus.Entry
}

func RegisterNotificationHandler(bus eventbus.EventBus, log *logrus.Logger) *NotificationHandler {
	h := &NotificationHandler{log: log.WithField("component", "intake.notifications")}
	bus.Subscribe(h.OnIssueCreated)
	bus.Subscribe(h.OnSubmissionProcessed)
	bus.Subscribe(h.OnSubmissionFailed)
	return h
}

func (h *NotificationHandler) OnIssueCreated(event issue.CreatedEvent) {
	h.log.WithFields(logrus.Fields{
		"fileref":   event.Issue.Fileref(),
		"topic":     event.Issue.Topic(),
		"client_id": event.Issue.ClientID(),
	}).Info("issue created")
}

func (h *NotificationHandler) OnSubmissionProcessed(event submission.ProcessedEvent) {
	h.log.WithFields(logrus.Fields{
		"submission_id": event.Submission.ID(),
		"issue_id":      event.Submission.IssueID(),
	}).Info("submission processed")
}

func (h *NotificationHandler) OnSubmissionFailed(event submission.FailedEvent) {
	h.log.WithFields(logrus.Fields{
		"submission_id": event.Submission.ID(),
		"reason":        event.Reason,
	}).Warn("submission processing failed")
}
