package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates(t *testing.T) {
	expiry := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		msg     *Message
		kind    string
		subject string
		body    string
	}{
		{"welcome", Welcome("a@x.test", "s3cretPass12"), KindWelcome,
			"Your Event Organizer Access Has Been Granted", "s3cretPass12"},
		{"registration pending", Registration("s@x.test", "Hackathon", true), KindRegistration,
			"Registration Received (Pending Verification) for Hackathon", "pending payment verification"},
		{"registration confirmed", Registration("s@x.test", "Hackathon", false), KindRegistration,
			"Registration Successful for Hackathon!", "is confirmed"},
		{"payment rejected default reason", PaymentRejected("s@x.test", "Hackathon", ""), KindPaymentRejected,
			"Registration Rejected for Hackathon", DefaultRejectionReason},
		{"payment rejected reason", PaymentRejected("s@x.test", "Hackathon", "blurry screenshot"), KindPaymentRejected,
			"Registration Rejected for Hackathon", "blurry screenshot"},
		{"certificate", Certificate("s@x.test", "Asha", "Certificate of Participation", "Hackathon"), KindCertificate,
			"Your Certificate of Participation for Hackathon is here!", "Asha"},
		{"final report", FinalReport("o@x.test", "Hackathon", []byte("xlsx")), KindFinalReport,
			"Final Report for Hackathon (Access Revoked)", "Guest"},
		{"event canceled", EventCanceled("s@x.test", "Hackathon"), KindEventCanceled,
			"Event Canceled: Hackathon", "canceled"},
		{"access warning", AccessWarning("o@x.test", expiry), KindAccessWarning,
			"Action Required: Your Organizer Access is Expiring Soon", "14 Mar 2026"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.msg.Kind)
			assert.Equal(t, tc.subject, tc.msg.Subject)
			assert.Contains(t, tc.msg.HTML, tc.body)
			assert.True(t, tc.msg.HasRecipients())
		})
	}
}

func TestHTMLIsEscaped(t *testing.T) {
	msg := EventCanceled("s@x.test", "<script>x</script>")
	assert.NotContains(t, msg.HTML, "<script>")
}

func TestAttendanceReport(t *testing.T) {
	msg := AttendanceReport(AttendanceReportData{
		InstructorEmail: "prof@x.test",
		InstructorName:  "Prof. Rao",
		EventName:       "Tech Fest",
		Classes: []ReportClass{
			{Label: "CSE Year 2 Section A", Students: []string{"Asha (Roll: 12)"}},
		},
		Committee:      []string{"Ravi (7, CSE)"},
		CommitteeSheet: []byte("sheet"),
	})

	assert.Equal(t, "Attendance Report: Tech Fest", msg.Subject)
	assert.Contains(t, msg.HTML, "For your class: CSE Year 2 Section A")
	assert.Contains(t, msg.HTML, "Asha (Roll: 12)")
	assert.Contains(t, msg.HTML, "Ravi (7, CSE)")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, XLSXContentType, msg.Attachments[0].ContentType)
}

func TestDispatcherDeliversAndSkipsEmpty(t *testing.T) {
	rec := &Recorder{}
	d := NewDispatcher(rec, 2, 8)

	d.Dispatch(
		Welcome("a@x.test", "pw"),
		&Message{Subject: "no recipients", Text: "x"},
		&Message{To: To("b@x.test"), Subject: "no body"},
		nil,
	)
	d.Wait()

	msgs := rec.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, KindWelcome, msgs[0].Kind)
	require.NoError(t, d.Shutdown(context.Background()))
}

func TestDispatcherSwallowsSendErrors(t *testing.T) {
	rec := &Recorder{Err: errors.New("smtp down")}
	d := NewDispatcher(rec, 1, 4)

	d.Dispatch(EventCanceled("s@x.test", "Hackathon"))
	d.Wait()

	assert.Empty(t, rec.Messages())
	require.NoError(t, d.Shutdown(context.Background()))
}

func TestDispatchAfterShutdownIsDropped(t *testing.T) {
	rec := &Recorder{}
	d := NewDispatcher(rec, 1, 4)
	require.NoError(t, d.Shutdown(context.Background()))

	d.Dispatch(EventCanceled("s@x.test", "Hackathon"))
	d.Wait()
	assert.Empty(t, rec.Messages())
}

func TestSendgridPrepare(t *testing.T) {
	s := NewSendgridSender("key", "CampusVibe", "no-reply@campus.test")
	msg := FinalReport("o@x.test", "Hackathon", []byte("xlsx-bytes"))

	v3 := s.prepare(msg)
	require.Len(t, v3.Personalizations, 1)
	assert.Equal(t, "o@x.test", v3.Personalizations[0].To[0].Address)
	require.Len(t, v3.Attachments, 1)
	assert.Equal(t, "final-report.xlsx", v3.Attachments[0].Filename)
}
