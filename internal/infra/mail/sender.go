package mail

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"gopkg.in/gomail.v2"
)

const textBody = `Новая заявка с сайта ({{.SourceTag}})

Имя: {{.FirstName}} {{.LastName}}
Email: {{.Email}}
Телефон: {{.Phone}}

{{.Comment}}

Заявка: {{.SubmissionID}}
`

const htmlBody = `<h2>Новая заявка с сайта ({{.SourceTag}})</h2>
<p><b>Имя:</b> {{.FirstName}} {{.LastName}}<br>
<b>Email:</b> {{.Email}}<br>
<b>Телефон:</b> {{.Phone}}</p>
<pre>{{.Comment}}</pre>
<p><small>Заявка: {{.SubmissionID}}</small></p>
`

var (
	textTmpl = texttemplate.Must(texttemplate.New("lead_text").Parse(textBody))
	htmlTmpl = htmltemplate.Must(htmltemplate.New("lead_html").Parse(htmlBody))
)

func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
	}
}

// SendLeadNotification emails a plain-text plus HTML summary of the lead to
// the configured office address.
func (s *EmailSender) SendLeadNotification(n LeadNotification) error {
	text, html, err := renderBodies(n)
	if err != nil {
		return fmt.Errorf("render lead notification: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", fmt.Sprintf("Заявка с сайта: %s %s", n.FirstName, n.LastName))
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send lead notification: %w", err)
	}

	return nil
}

func renderBodies(n LeadNotification) (text, html string, err error) {
	var tb, hb bytes.Buffer
	if err := textTmpl.Execute(&tb, n); err != nil {
		return "", "", err
	}
	if err := htmlTmpl.Execute(&hb, n); err != nil {
		return "", "", err
	}
	return tb.String(), hb.String(), nil
}
