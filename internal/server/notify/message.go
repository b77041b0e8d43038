// Package notify delivers user-facing messages such as the registration
// confirmation email.
package notify

import (
	"bytes"
	"fmt"
	"html/template"
)

// Message is anything that can be rendered into an email.
type Message interface {
	To() string
	Subject() string
	Text() string
	HTML() (string, error)
}

// RegistrationEmail carries the link that finishes a signup.
type RegistrationEmail struct {
	AppName   string
	Recipient string
	Link      string
}

var registrationHTML = template.Must(template.New("registration").Parse(`<html>
  <head></head>
  <body>
    <p>Hello from {{.AppName}}!</p>
    <p>Follow this <a href="{{.Link}}">link</a> to finish the registration.</p>
  </body>
</html>
`))

func (m RegistrationEmail) To() string { return m.Recipient }

func (m RegistrationEmail) Subject() string {
	return fmt.Sprintf("Finish registration on %s", m.AppName)
}

func (m RegistrationEmail) Text() string {
	return fmt.Sprintf("Hello from %s! Follow link %s to finish the registration.", m.AppName, m.Link)
}

func (m RegistrationEmail) HTML() (string, error) {
	var buf bytes.Buffer
	if err := registrationHTML.Execute(&buf, m); err != nil {
		return "", fmt.Errorf("render registration email: %w", err)
	}
	return buf.String(), nil
}
