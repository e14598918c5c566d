// Package notify builds appointment confirmation emails and hands them to SMTP.
package notify

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"clinic-booking-api/internal/model"
)

// LongDateLayout renders dates the en-US long way, e.g. "Sunday, June 1, 2025".
const LongDateLayout = "Monday, January 2, 2006"

type Message struct {
	To      string
	Subject string
	HTML    string
}

// Composer turns an appointment into a confirmation message. It does no I/O.
type Composer struct {
	loc *time.Location
}

// NewComposer pins the zone dates are rendered in. Nil means UTC.
func NewComposer(loc *time.Location) *Composer {
	if loc == nil {
		loc = time.UTC
	}
	return &Composer{loc: loc}
}

// FormatDate renders the calendar day of d in the composer's zone. Only the
// year, month and day of d are used, so a date never drifts to a neighbour.
func (c *Composer) FormatDate(d time.Time) string {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, c.loc).Format(LongDateLayout)
}

// AddressLines splits free-text address input into trimmed display lines.
func AddressLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

type confirmationData struct {
	Name         string
	Age          int
	Gender       string
	Date         string
	Time         string
	AddressLines []string
}

func (c *Composer) Compose(a model.Appointment) (Message, error) {
	d := confirmationData{
		Name:         a.Name,
		Date:         c.FormatDate(a.Date),
		Time:         a.Time,
		AddressLines: AddressLines(a.Address),
	}
	if a.Age != nil && *a.Age > 0 {
		d.Age = *a.Age
	}
	if a.Gender != nil {
		d.Gender = strings.TrimSpace(*a.Gender)
	}

	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, d); err != nil {
		return Message{}, err
	}
	return Message{
		To:      a.Email,
		Subject: "Appointment Confirmation for " + a.Name,
		HTML:    buf.String(),
	}, nil
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #2c3e50;">Appointment Confirmation</h2>
<p style="font-size: 16px;">Dear {{.Name}},</p>
<p style="font-size: 16px;">Thank you for booking your appointment with us. Here are your details:</p>
<div style="background: #f9f9f9; padding: 15px; border-radius: 5px; margin: 20px 0;">
<h3 style="color: #2c3e50; margin-top: 0;">Patient Information</h3>
<p style="margin: 5px 0;"><strong>Name:</strong> {{.Name}}</p>
{{- if .Age}}
<p style="margin: 5px 0;"><strong>Age:</strong> {{.Age}}</p>
{{- end}}
{{- if .Gender}}
<p style="margin: 5px 0;"><strong>Gender:</strong> {{.Gender}}</p>
{{- end}}
<h3 style="color: #2c3e50;">Appointment Details</h3>
<p style="margin: 5px 0;"><strong>Date:</strong> {{.Date}}</p>
<p style="margin: 5px 0;"><strong>Time:</strong> {{.Time}}</p>
<h3 style="color: #2c3e50;">Address</h3>
<p style="margin: 5px 0;">{{range $i, $l := .AddressLines}}{{if $i}}<br>{{end}}{{$l}}{{end}}</p>
</div>
<div style="margin-top: 20px;">
<h3 style="color: #2c3e50;">Important Notes</h3>
<ul style="padding-left: 20px;">
<li>Please arrive 10 minutes before your scheduled time</li>
<li>Bring your ID and any relevant medical documents</li>
<li>Fasting may be required for certain tests</li>
</ul>
</div>
<p style="font-size: 16px; margin-top: 20px;">If you need to reschedule or cancel, please contact us at least 24 hours in advance.</p>
<p style="font-size: 16px;">Best regards,</p>
<p style="font-size: 16px; font-weight: bold;">Doctor Appointment Team</p>
</div>
`))
