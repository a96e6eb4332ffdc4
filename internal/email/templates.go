package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// TemplateData carries the values a mail template renders with.
type TemplateData map[string]interface{}

const welcomeTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Hi {{.Name}}, welcome to Natours!</h2>
  <p>We're glad to have you on board. Log in to browse our tours and start
  planning your next trip.</p>
  <p>If you have any questions, just reply to this email. We're always happy
  to help.</p>
  <p>— The Natours Team</p>
</body>
</html>`

const passwordResetTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Hi {{.Name}},</h2>
  <p>Forgot your password? Submit a PATCH request with your new password to
  the link below. The link is valid for {{.ValidMinutes}} minutes.</p>
  <p><a href="{{.ResetURL}}">{{.ResetURL}}</a></p>
  <p>If you didn't request a password reset, please ignore this email.</p>
  <p>— The Natours Team</p>
</body>
</html>`

// Renderer turns a named template plus data into an HTML body.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() *Renderer {
	r := &Renderer{templates: map[string]*template.Template{}}
	r.mustAdd("welcome", welcomeTemplate)
	r.mustAdd("password_reset", passwordResetTemplate)
	return r
}

func (r *Renderer) mustAdd(name, body string) {
	r.templates[name] = template.Must(template.New(name).Parse(body))
}

func (r *Renderer) Render(name string, data TemplateData) (string, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("email: unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("email: render %q: %w", name, err)
	}
	return buf.String(), nil
}
