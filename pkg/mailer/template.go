package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var resetPasswordTmpl = template.Must(template.New("reset_password").Parse(`<!doctype html>
<html>
  <body style="font-family: sans-serif; color: #1f2937;">
    <h2>{{.Company}} password reset</h2>
    <p>Hi {{.Name}},</p>
    <p>We received a request to reset the password for your admin account.
       The link below is valid for {{.ExpiresIn}}.</p>
    <p><a href="{{.ResetURL}}" style="color: #3b82f6;">Reset your password</a></p>
    <p>If you did not request this, you can ignore this email.</p>
  </body>
</html>`))

// Render produces subject, text, and HTML bodies for a templated job.
func Render(job EmailJob) (subject, text, html string, err error) {
	switch job.Template {
	case "":
		return job.Subject, job.Text, job.HTML, nil
	case "reset_password":
		var buf bytes.Buffer
		if err := resetPasswordTmpl.Execute(&buf, job.Data); err != nil {
			return "", "", "", err
		}
		subject = job.Subject
		if subject == "" {
			subject = fmt.Sprintf("%v password reset", job.Data["Company"])
		}
		text = fmt.Sprintf("Reset your password: %v", job.Data["ResetURL"])
		return subject, text, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", job.Template)
	}
}
