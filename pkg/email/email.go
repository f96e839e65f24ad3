package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
)

// Sender delivers transactional email through Resend.
type Sender struct {
	client *resend.Client
	from   string
}

func NewSender(apiKey, from string) *Sender {
	return &Sender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// SendEmail sends an HTML email to a single recipient.
func (s *Sender) SendEmail(to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

var nudgeTemplate = template.Must(template.New("nudge").Parse(`
<p>Hi {{.Username}},</p>
<p>These streaks end tonight unless you log them today:</p>
<ul>
{{range .Habits}}
  <li>{{.}}</li>
{{end}}
</ul>
`))

// RenderStreakNudge builds the body of the "streaks ending tonight" email.
func RenderStreakNudge(username string, habits []string) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Username string
		Habits   []string
	}{username, habits}
	if err := nudgeTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
