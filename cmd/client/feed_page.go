package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tanvir-rifat07/chirplink/internal/client"
	"github.com/tanvir-rifat07/chirplink/internal/models"
)

type postsLoadedMsg struct {
	posts    []models.PostView
	discover bool
}

type likeToggledMsg struct {
	postID string
	liked  bool
}

type postCreatedMsg struct{}
type commentAddedMsg struct{ post models.PostView }

// composeMode says what the text input at the bottom of the feed is for
type composeMode int

const (
	composeNone composeMode = iota
	composePost
	composeComment
)

// feedModel renders the feed or the discover listing
type feedModel struct {
	session  *client.Session
	posts    []models.PostView
	cursor   int
	discover bool
	mode     composeMode
	input    textinput.Model
	errText  string
}

func initialFeedModel(session *client.Session) feedModel {
	in := textinput.New()
	in.Placeholder = "What's on your mind?"
	return feedModel{session: session, input: in}
}

func loadFeed(session *client.Session, discover bool) tea.Cmd {
	return func() tea.Msg {
		var (
			posts []models.PostView
			err   error
		)
		if discover {
			posts, err = session.Discover()
		} else {
			posts, err = session.Feed()
		}
		if err != nil {
			return errMsg{err}
		}
		return postsLoadedMsg{posts: posts, discover: discover}
	}
}

func (m feedModel) Init() tea.Cmd {
	return nil
}

func (m feedModel) toggleLike() tea.Cmd {
	if m.cursor >= len(m.posts) {
		return nil
	}
	postID := m.posts[m.cursor].ID.Hex()
	return func() tea.Msg {
		liked, err := m.session.ToggleLike(postID)
		if err != nil {
			return errMsg{err}
		}
		return likeToggledMsg{postID: postID, liked: liked}
	}
}

func (m feedModel) submitInput() tea.Cmd {
	text := m.input.Value()
	switch m.mode {
	case composePost:
		return func() tea.Msg {
			if _, err := m.session.CreatePost(text, ""); err != nil {
				return errMsg{err}
			}
			return postCreatedMsg{}
		}
	case composeComment:
		if m.cursor >= len(m.posts) {
			return nil
		}
		postID := m.posts[m.cursor].ID.Hex()
		return func() tea.Msg {
			post, err := m.session.AddComment(postID, text)
			if err != nil {
				return errMsg{err}
			}
			return commentAddedMsg{post: *post}
		}
	}
	return nil
}

func (m feedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode != composeNone {
		var inputCmd tea.Cmd
		m.input, inputCmd = m.input.Update(msg)

		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "esc":
				m.mode = composeNone
				m.input.Reset()
				m.input.Blur()
				return m, nil
			case "enter":
				return m, m.submitInput()
			}
		case postCreatedMsg:
			m.mode = composeNone
			m.input.Reset()
			m.input.Blur()
			return m, loadFeed(m.session, m.discover)
		case commentAddedMsg:
			m.mode = composeNone
			m.input.Reset()
			m.input.Blur()
			for i := range m.posts {
				if m.posts[i].ID == msg.post.ID {
					m.posts[i] = msg.post
				}
			}
			return m, nil
		case errMsg:
			return m.fail(msg.err)
		}
		return m, inputCmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.posts)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "l":
			return m, m.toggleLike()
		case "d":
			return m, loadFeed(m.session, !m.discover)
		case "r":
			return m, loadFeed(m.session, m.discover)
		case "n":
			m.mode = composePost
			m.input.Placeholder = "What's on your mind?"
			m.input.Focus()
			return m, textinput.Blink
		case "c":
			if len(m.posts) > 0 {
				m.mode = composeComment
				m.input.Placeholder = "Write a comment"
				m.input.Focus()
				return m, textinput.Blink
			}
		case "s":
			return initialSearchModel(m.session), textinput.Blink
		case "x":
			m.session.Logout()
			return initialHomeModel(m.session), nil
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case postsLoadedMsg:
		m.posts = msg.posts
		m.discover = msg.discover
		m.errText = ""
		if m.cursor >= len(m.posts) {
			m.cursor = 0
		}
	case likeToggledMsg:
		return m, loadFeed(m.session, m.discover)
	case errMsg:
		return m.fail(msg.err)
	}
	return m, nil
}

// fail shows the error, or drops back to the landing menu when the session
// was cleared by a 401
func (m feedModel) fail(err error) (tea.Model, tea.Cmd) {
	if !m.session.Authenticated() {
		home := initialHomeModel(m.session)
		home.status = "session expired, please log in again"
		return home, nil
	}
	m.errText = err.Error()
	return m, nil
}

func (m feedModel) View() string {
	title := "Feed"
	if m.discover {
		title = "Discover"
	}
	s := title + "\n\n"

	if len(m.posts) == 0 {
		s += "no posts yet\n"
	}
	for i, p := range m.posts {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		s += fmt.Sprintf("%s@%s: %s  [%d likes, %d comments]\n", cursor, p.Author.Username, p.Content, len(p.Likes), len(p.Comments))
		if i == m.cursor {
			for _, cm := range p.Comments {
				s += fmt.Sprintf("      @%s: %s\n", cm.Author.Username, cm.Text)
			}
		}
	}

	if m.mode != composeNone {
		s += "\n" + m.input.View() + "\n"
		s += "enter to submit, esc to cancel\n"
		return s
	}

	if m.errText != "" {
		s += "\nerror: " + m.errText + "\n"
	}
	s += "\n[j/k] move  [l] like  [c] comment  [n] new post  [d] feed/discover  [s] search  [r] reload  [x] logout  [q] quit\n"
	return s
}
