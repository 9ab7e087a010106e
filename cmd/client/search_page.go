package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tanvir-rifat07/chirplink/internal/client"
	"github.com/tanvir-rifat07/chirplink/internal/models"
)

type usersFoundMsg struct{ users []models.PublicUser }
type followChangedMsg struct{}

// searchModel is the user search page; found users can be followed and
// unfollowed from the result list
type searchModel struct {
	session *client.Session
	query   textinput.Model
	results []models.PublicUser
	cursor  int
	errText string
}

func initialSearchModel(session *client.Session) searchModel {
	q := textinput.New()
	q.Placeholder = "Search users"
	q.Focus()
	return searchModel{session: session, query: q}
}

func (m searchModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m searchModel) search() tea.Cmd {
	query := m.query.Value()
	return func() tea.Msg {
		users, err := m.session.SearchUsers(query)
		if err != nil {
			return errMsg{err}
		}
		return usersFoundMsg{users: users}
	}
}

// following reports whether the current user already follows target
func (m searchModel) following(target *models.PublicUser) bool {
	me := m.session.User()
	if me == nil {
		return false
	}
	for _, id := range target.Followers {
		if id == me.ID {
			return true
		}
	}
	return false
}

func (m searchModel) toggleFollow() tea.Cmd {
	if m.cursor >= len(m.results) {
		return nil
	}
	target := m.results[m.cursor]
	unfollow := m.following(&target)
	return func() tea.Msg {
		var err error
		if unfollow {
			err = m.session.Unfollow(target.ID)
		} else {
			err = m.session.Follow(target.ID)
		}
		if err != nil {
			return errMsg{err}
		}
		return followChangedMsg{}
	}
}

func (m searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var queryCmd tea.Cmd
	m.query, queryCmd = m.query.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m, m.search()
		case "down":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "ctrl+f":
			return m, m.toggleFollow()
		case "esc":
			return initialFeedModel(m.session), loadFeed(m.session, false)
		case "ctrl+c":
			return m, tea.Quit
		}
	case usersFoundMsg:
		m.results = msg.users
		m.cursor = 0
		m.errText = ""
	case followChangedMsg:
		// refresh follower lists in the results
		return m, tea.Batch(m.search(), func() tea.Msg {
			m.session.Refresh()
			return nil
		})
	case errMsg:
		if !m.session.Authenticated() {
			home := initialHomeModel(m.session)
			home.status = "session expired, please log in again"
			return home, nil
		}
		m.errText = msg.err.Error()
	}
	return m, queryCmd
}

func (m searchModel) View() string {
	s := "Search\n\n"
	s += m.query.View() + "\n\n"

	for i, u := range m.results {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		state := ""
		if m.following(&u) {
			state = " (following)"
		}
		s += fmt.Sprintf("%s@%s%s  %s\n", cursor, u.Username, state, u.Bio)
	}

	if m.errText != "" {
		s += "\nerror: " + m.errText + "\n"
	}
	s += "\nenter to search, up/down to move, ctrl+f to follow/unfollow, esc for feed\n"
	return s
}
