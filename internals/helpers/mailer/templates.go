package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"strings"
	"time"
)

// Message kinds
const (
	KindWelcome          = "welcome"
	KindRegistration     = "registration"
	KindPaymentRejected  = "payment_rejected"
	KindResourceRequest  = "resource_request"
	KindAttendanceReport = "attendance_report"
	KindCertificate      = "certificate"
	KindFinalReport      = "final_report"
	KindEventCanceled    = "event_canceled"
	KindAccessWarning    = "access_warning"
)

const DefaultRejectionReason = "Payment verification failed."

var templates = template.Must(template.New("mail").Parse(`
{{define "welcome"}}<h1>Welcome to CampusVibe!</h1>
<p>Your request to organize an event has been approved.</p>
<p>You can now log in using these credentials:</p>
<p><b>Email:</b> {{.Email}}</p>
<p><b>Temporary Password:</b> {{.Password}}</p>
<p>You will be required to change this password upon your first login.</p>{{end}}

{{define "registration"}}{{if .Pending}}<p>Your registration for <b>{{.EventName}}</b> has been received. It is currently <b>pending payment verification</b> by the event organizer.</p>{{else}}<p>Congratulations! Your registration for <b>{{.EventName}}</b> is confirmed. We look forward to seeing you there.</p>{{end}}{{end}}

{{define "payment_rejected"}}<p>Your registration for <b>{{.EventName}}</b> has been rejected by the organizer.</p>
<p><b>Reason:</b> {{.Reason}}</p>
<p>Please re-register with valid payment proof or contact the event organizer.</p>{{end}}

{{define "resource_request"}}<h3>New Resource Request</h3>
<p>Hello {{.RecipientName}},</p>
<p>A new request has been submitted by <b>{{.Coordinator}}</b> for the event <b>{{.EventName}}</b> (on {{.EventDate}}).</p>
<p><b>Items Requested:</b></p>
<ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>
{{if .Message}}<p>{{.Message}}</p>{{end}}
<p>Please coordinate with the organizer to approve this request.</p>{{end}}

{{define "attendance_report"}}<h3>Event Attendance Report</h3>
<p>Hello {{.InstructorName}},</p>
<p>The following students were marked as "Attended" at the event <b>{{.EventName}}</b>, which conflicted with your scheduled classes.</p>
{{range .Classes}}<h4>For your class: {{.Label}}</h4><ul>{{range .Students}}<li>{{.}}</li>{{end}}</ul><hr>{{end}}
<p><b>Generalised Organizing Committee (for your reference):</b></p>
<ul>{{range .Committee}}<li>{{.}}</li>{{end}}</ul>{{end}}

{{define "certificate"}}<p>Dear {{.StudentName}},</p>
<p>Thank you for your involvement in <b>{{.EventName}}</b>!</p>
<p>This email confirms your <b>{{.CertificateType}}</b>.</p>{{end}}

{{define "final_report"}}<p>Your access as an organizer for <b>{{.EventName}}</b> has now expired.</p>
<p>Attached is the final participant report for your records. Your account is now set to "Guest".</p>{{end}}

{{define "event_canceled"}}<p>We regret to inform you that the event <b>{{.EventName}}</b> has been canceled by the organizer.</p>
<p>Your registration is now void. If you paid a fee, please contact the event organizer for a refund.</p>{{end}}

{{define "access_warning"}}<p>This is an automated reminder that your Event Organizer access for CampusVibe will expire on <b>{{.ExpiryDate}}</b>.</p>
<p>Please ensure all event activities, including leaderboard finalization, are complete by this date.</p>{{end}}
`))

func render(name string, data any) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("[MAILER] render %s: %v", name, err)
		return ""
	}
	return buf.String()
}

func formatDate(t time.Time) string {
	return t.Format("02 Jan 2006")
}

func Welcome(email, password string) *Message {
	return &Message{
		Kind:    KindWelcome,
		To:      To(email),
		Subject: "Your Event Organizer Access Has Been Granted",
		HTML:    render("welcome", map[string]string{"Email": email, "Password": password}),
		Text: fmt.Sprintf("Welcome to CampusVibe!\nEmail: %s\nTemporary Password: %s\n"+
			"You will be required to change this password upon your first login.", email, password),
	}
}

func Registration(email, eventName string, pending bool) *Message {
	subject := fmt.Sprintf("Registration Successful for %s!", eventName)
	text := fmt.Sprintf("Your registration for %s is confirmed.", eventName)
	if pending {
		subject = fmt.Sprintf("Registration Received (Pending Verification) for %s", eventName)
		text = fmt.Sprintf("Your registration for %s is pending payment verification by the organizer.", eventName)
	}
	return &Message{
		Kind:    KindRegistration,
		To:      To(email),
		Subject: subject,
		HTML:    render("registration", map[string]any{"EventName": eventName, "Pending": pending}),
		Text:    text,
	}
}

func PaymentRejected(email, eventName, reason string) *Message {
	if strings.TrimSpace(reason) == "" {
		reason = DefaultRejectionReason
	}
	return &Message{
		Kind:    KindPaymentRejected,
		To:      To(email),
		Subject: fmt.Sprintf("Registration Rejected for %s", eventName),
		HTML:    render("payment_rejected", map[string]string{"EventName": eventName, "Reason": reason}),
		Text:    fmt.Sprintf("Your registration for %s has been rejected.\nReason: %s", eventName, reason),
	}
}

type ResourceRequestData struct {
	RecipientEmail string
	RecipientName  string
	Coordinator    string
	EventName      string
	EventDate      time.Time
	Items          []string
	Message        string
}

func ResourceRequest(d ResourceRequestData) *Message {
	name := d.RecipientName
	if name == "" {
		name = "there"
	}
	return &Message{
		Kind:    KindResourceRequest,
		To:      To(d.RecipientEmail),
		Subject: fmt.Sprintf("New Resource Request for Event: %s", d.EventName),
		HTML: render("resource_request", map[string]any{
			"RecipientName": name,
			"Coordinator":   d.Coordinator,
			"EventName":     d.EventName,
			"EventDate":     formatDate(d.EventDate),
			"Items":         d.Items,
			"Message":       d.Message,
		}),
		Text: fmt.Sprintf("New resource request by %s for %s on %s: %s",
			d.Coordinator, d.EventName, formatDate(d.EventDate), strings.Join(d.Items, ", ")),
	}
}

type ReportClass struct {
	Label    string
	Students []string
}

type AttendanceReportData struct {
	InstructorEmail string
	InstructorName  string
	EventName       string
	Classes         []ReportClass
	Committee       []string
	CommitteeSheet  []byte
}

func AttendanceReport(d AttendanceReportData) *Message {
	var text strings.Builder
	fmt.Fprintf(&text, "Hello %s,\nStudents who attended %s during your classes:\n", d.InstructorName, d.EventName)
	for _, c := range d.Classes {
		fmt.Fprintf(&text, "\n%s\n  - %s\n", c.Label, strings.Join(c.Students, "\n  - "))
	}
	msg := &Message{
		Kind:    KindAttendanceReport,
		To:      To(d.InstructorEmail),
		Subject: fmt.Sprintf("Attendance Report: %s", d.EventName),
		HTML:    render("attendance_report", d),
		Text:    text.String(),
	}
	if len(d.CommitteeSheet) > 0 {
		msg.Attachments = append(msg.Attachments, Attachment{
			Filename:    "committee-list.xlsx",
			ContentType: XLSXContentType,
			Content:     d.CommitteeSheet,
		})
	}
	return msg
}

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func Certificate(email, studentName, certificateType, eventName string) *Message {
	return &Message{
		Kind:    KindCertificate,
		To:      To(email),
		Subject: fmt.Sprintf("Your %s for %s is here!", certificateType, eventName),
		HTML: render("certificate", map[string]string{
			"StudentName":     studentName,
			"EventName":       eventName,
			"CertificateType": certificateType,
		}),
		Text: fmt.Sprintf("Dear %s, thank you for your involvement in %s. This confirms your %s.",
			studentName, eventName, certificateType),
	}
}

func FinalReport(email, eventName string, report []byte) *Message {
	msg := &Message{
		Kind:    KindFinalReport,
		To:      To(email),
		Subject: fmt.Sprintf("Final Report for %s (Access Revoked)", eventName),
		HTML:    render("final_report", map[string]string{"EventName": eventName}),
		Text:    fmt.Sprintf("Your organizer access for %s has expired. Your account is now set to Guest.", eventName),
	}
	if len(report) > 0 {
		msg.Attachments = []Attachment{{
			Filename:    "final-report.xlsx",
			ContentType: XLSXContentType,
			Content:     report,
		}}
	}
	return msg
}

func EventCanceled(email, eventName string) *Message {
	return &Message{
		Kind:    KindEventCanceled,
		To:      To(email),
		Subject: fmt.Sprintf("Event Canceled: %s", eventName),
		HTML:    render("event_canceled", map[string]string{"EventName": eventName}),
		Text:    fmt.Sprintf("The event %s has been canceled by the organizer.", eventName),
	}
}

func AccessWarning(email string, expiry time.Time) *Message {
	return &Message{
		Kind:    KindAccessWarning,
		To:      To(email),
		Subject: "Action Required: Your Organizer Access is Expiring Soon",
		HTML:    render("access_warning", map[string]string{"ExpiryDate": formatDate(expiry)}),
		Text:    fmt.Sprintf("Your CampusVibe organizer access expires on %s.", formatDate(expiry)),
	}
}
