package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tanvir-rifat07/chirplink/internal/client"
)

func main() {
	baseURL := os.Getenv("CHIRPLINK_API")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	session := client.NewSession(client.New(baseURL))

	p := tea.NewProgram(initialHomeModel(session))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running client: %v\n", err)
		os.Exit(1)
	}
}

// errMsg carries an API failure into a page's Update
type errMsg struct{ err error }

// homeModel is the anonymous landing menu. Authenticated pages hand control
// back here whenever the session drops to anonymous.
type homeModel struct {
	session *client.Session
	status  string
}

func initialHomeModel(session *client.Session) homeModel {
	return homeModel{session: session}
}

func (m homeModel) Init() tea.Cmd {
	return nil
}

func (m homeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "l":
			return initialLoginModel(m.session), nil
		case "r":
			return initialRegisterModel(m.session), nil
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m homeModel) View() string {
	s := "chirplink\n\n"
	s += "[l] login\n"
	s += "[r] register\n"
	s += "[q] quit\n"
	if m.status != "" {
		s += "\n" + m.status + "\n"
	}
	return s
}
