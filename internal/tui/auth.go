package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/letsfood/storefront/internal/bridge"
)

// authModal is the sign-in / sign-up dialog. Tab switches between the two
// forms; each keeps its own inputs.
type authModal struct {
	open  bool
	form  bridge.Form
	focus int

	signin []textinput.Model // email, password
	signup []textinput.Model // name, email, password, confirmation
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "  "
	ti.CharLimit = 200
	ti.Cursor.SetMode(cursor.CursorStatic)
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func newAuthModal() authModal {
	return authModal{
		form: bridge.FormSignIn,
		signin: []textinput.Model{
			newInput("Email", false),
			newInput("Password", true),
		},
		signup: []textinput.Model{
			newInput("Full name", false),
			newInput("Email", false),
			newInput("Password", true),
			newInput("Confirm password", true),
		},
	}
}

func (m *authModal) inputs() []textinput.Model {
	if m.form == bridge.FormSignUp {
		return m.signup
	}
	return m.signin
}

func (m *authModal) show() tea.Cmd {
	m.open = true
	return m.setFocus(0)
}

func (m *authModal) hide() {
	m.open = false
	for _, in := range [][]textinput.Model{m.signin, m.signup} {
		for i := range in {
			in[i].Blur()
		}
	}
}

// reset clears every field, used once a submission succeeds.
func (m *authModal) reset() {
	for _, in := range [][]textinput.Model{m.signin, m.signup} {
		for i := range in {
			in[i].Reset()
		}
	}
}

func (m *authModal) toggle() tea.Cmd {
	if m.form == bridge.FormSignIn {
		m.form = bridge.FormSignUp
	} else {
		m.form = bridge.FormSignIn
	}
	return m.setFocus(0)
}

func (m *authModal) setFocus(i int) tea.Cmd {
	in := m.inputs()
	if i < 0 {
		i = len(in) - 1
	}
	if i >= len(in) {
		i = 0
	}
	m.focus = i
	var cmd tea.Cmd
	for j := range in {
		if j == i {
			cmd = in[j].Focus()
		} else {
			in[j].Blur()
		}
	}
	return cmd
}

func (m *authModal) update(msg tea.Msg) tea.Cmd {
	in := m.inputs()
	var cmd tea.Cmd
	in[m.focus], cmd = in[m.focus].Update(msg)
	return cmd
}

func (m *authModal) value(i int) string {
	return m.inputs()[i].Value()
}

func (m *authModal) view(msg *bridge.Message) string {
	var b strings.Builder
	signin, signup := "Sign in", "Sign up"
	if m.form == bridge.FormSignIn {
		signin = selectedStyle.Render("[Sign in]")
	} else {
		signup = selectedStyle.Render("[Sign up]")
	}
	b.WriteString(signin + "  " + signup + "\n\n")
	for _, in := range m.inputs() {
		b.WriteString(in.View() + "\n")
	}
	if msg != nil && msg.Form == m.form {
		b.WriteString("\n" + renderMessage(msg) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("tab switch · ↑/↓ field · enter submit · esc close"))
	return modalStyle.Render(b.String())
}
