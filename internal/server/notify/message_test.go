package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationEmail(t *testing.T) {
	m := RegistrationEmail{AppName: "App", Recipient: "a@x.com", Link: "http://front/user/42/"}

	assert.Equal(t, "a@x.com", m.To())
	assert.Equal(t, "Finish registration on App", m.Subject())
	assert.Equal(t, "Hello from App! Follow link http://front/user/42/ to finish the registration.", m.Text())

	html, err := m.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, `<a href="http://front/user/42/">link</a>`)
	assert.Contains(t, html, "Hello from App!")
}

func TestRegistrationEmail_HTMLEscapes(t *testing.T) {
	m := RegistrationEmail{AppName: "<b>App</b>", Recipient: "a@x.com", Link: "http://front/"}

	html, err := m.HTML()
	require.NoError(t, err)
	assert.NotContains(t, html, "<b>App</b>")
	assert.Contains(t, html, "&lt;b&gt;App&lt;/b&gt;")
}
