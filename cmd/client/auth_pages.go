package main

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tanvir-rifat07/chirplink/internal/client"
)

// loggedInMsg signals a successful login or registration
type loggedInMsg struct{}

// loginModel is the login form page
type loginModel struct {
	session  *client.Session
	email    textinput.Model
	password textinput.Model
	errText  string
}

func initialLoginModel(session *client.Session) loginModel {
	m := loginModel{session: session}

	m.email = textinput.New()
	m.email.Placeholder = "Email"
	m.email.Focus()

	m.password = textinput.New()
	m.password.Placeholder = "Password"
	m.password.EchoMode = textinput.EchoPassword

	return m
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) submit() tea.Cmd {
	email, password := m.email.Value(), m.password.Value()
	return func() tea.Msg {
		if err := m.session.Login(email, password); err != nil {
			return errMsg{err}
		}
		return loggedInMsg{}
	}
}

func (m loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		emailCmd tea.Cmd
		passCmd  tea.Cmd
	)
	m.email, emailCmd = m.email.Update(msg)
	m.password, passCmd = m.password.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "down", "tab":
			m.password.Focus()
			m.email.Blur()
		case "up":
			m.email.Focus()
			m.password.Blur()
		case "esc":
			return initialHomeModel(m.session), nil
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			return m, m.submit()
		}
	case loggedInMsg:
		return initialFeedModel(m.session), loadFeed(m.session, false)
	case errMsg:
		m.errText = msg.err.Error()
	}
	return m, tea.Batch(emailCmd, passCmd)
}

func (m loginModel) View() string {
	s := "Login\n\n"
	s += m.email.View() + "\n"
	s += m.password.View() + "\n"
	if m.errText != "" {
		s += "\nerror: " + m.errText + "\n"
	}
	s += "\nenter to submit, esc to go back\n"
	return s
}

// registerModel is the registration form page
type registerModel struct {
	session *client.Session
	inputs  []textinput.Model
	focus   int
	errText string
}

func initialRegisterModel(session *client.Session) registerModel {
	m := registerModel{session: session, inputs: make([]textinput.Model, 3)}

	for i, placeholder := range []string{"Username", "Email", "Password"} {
		in := textinput.New()
		in.Placeholder = placeholder
		m.inputs[i] = in
	}
	m.inputs[2].EchoMode = textinput.EchoPassword
	m.inputs[0].Focus()

	return m
}

func (m registerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m registerModel) submit() tea.Cmd {
	username, email, password := m.inputs[0].Value(), m.inputs[1].Value(), m.inputs[2].Value()
	return func() tea.Msg {
		if err := m.session.Register(username, email, password); err != nil {
			return errMsg{err}
		}
		return loggedInMsg{}
	}
}

func (m registerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "down", "tab":
			m.inputs[m.focus].Blur()
			m.focus = (m.focus + 1) % len(m.inputs)
			m.inputs[m.focus].Focus()
		case "up":
			m.inputs[m.focus].Blur()
			m.focus = (m.focus + len(m.inputs) - 1) % len(m.inputs)
			m.inputs[m.focus].Focus()
		case "esc":
			return initialHomeModel(m.session), nil
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			return m, m.submit()
		}
	case loggedInMsg:
		return initialFeedModel(m.session), loadFeed(m.session, false)
	case errMsg:
		m.errText = msg.err.Error()
	}
	return m, tea.Batch(cmds...)
}

func (m registerModel) View() string {
	s := "Register\n\n"
	for i := range m.inputs {
		s += m.inputs[i].View() + "\n"
	}
	if m.errText != "" {
		s += "\nerror: " + m.errText + "\n"
	}
	s += "\nenter to submit, esc to go back\n"
	return s
}
