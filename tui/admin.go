package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cinemago-cli/model"
)

const newSessionFieldCount = 7

func newSessionInputs() []textinput.Model {
	title := newTextInput("movie title", 80)
	hall := newTextInput("hall, e.g. Hall 3", 32)
	start := newTextInput("start, e.g. 2026-09-01T19:30", 20)
	price := newTextInput("base price", 8)
	seats := newTextInput("total seats", 4)
	return []textinput.Model{title, hall, start, price, seats}
}

// newSessionInputIndex maps a form focus position to its text input, if the
// focused field has one (cinema is a cycler, submit is a button).
func newSessionInputIndex(focus int) (int, bool) {
	switch focus {
	case newSessionFieldTitle:
		return 0, true
	case newSessionFieldHall:
		return 1, true
	case newSessionFieldStart:
		return 2, true
	case newSessionFieldPrice:
		return 3, true
	case newSessionFieldSeats:
		return 4, true
	default:
		return 0, false
	}
}

func (m *appModel) refocusNewSession() {
	focused, hasInput := newSessionInputIndex(m.newSessionFocus)
	for i := range m.newSessionInputs {
		if hasInput && i == focused {
			m.newSessionInputs[i].Focus()
		} else {
			m.newSessionInputs[i].Blur()
		}
	}
}

func (m appModel) handleNewSessionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "down":
		m.newSessionFocus = (m.newSessionFocus + 1) % newSessionFieldCount
		m.refocusNewSession()
		return m, textinput.Blink, true
	case "shift+tab", "up":
		m.newSessionFocus = (m.newSessionFocus + newSessionFieldCount - 1) % newSessionFieldCount
		m.refocusNewSession()
		return m, textinput.Blink, true
	case "left":
		if m.newSessionFocus == newSessionFieldCinema {
			m.newSessionCinema = (m.newSessionCinema + len(model.Cinemas) - 1) % len(model.Cinemas)
			return m, nil, true
		}
	case "right", " ":
		if m.newSessionFocus == newSessionFieldCinema {
			m.newSessionCinema = (m.newSessionCinema + 1) % len(model.Cinemas)
			return m, nil, true
		}
	}
	if msg.Type == tea.KeyEnter {
		if m.newSessionFocus != newSessionFieldSubmit {
			m.newSessionFocus++
			m.refocusNewSession()
			return m, textinput.Blink, true
		}
		return m.submitNewSession()
	}
	return m, nil, false
}

func (m appModel) submitNewSession() (tea.Model, tea.Cmd, bool) {
	session, err := m.buildNewSession()
	if err != nil {
		m.notice = err.Error()
		return m, nil, true
	}
	m.notice = "Creating session..."
	return m, tea.Batch(m.createSessionCmd(session), m.spinner.Tick), true
}

func (m appModel) buildNewSession() (model.Session, error) {
	title := strings.TrimSpace(m.newSessionInputs[0].Value())
	hall := strings.TrimSpace(m.newSessionInputs[1].Value())
	start := strings.TrimSpace(m.newSessionInputs[2].Value())
	priceRaw := strings.TrimSpace(m.newSessionInputs[3].Value())
	seatsRaw := strings.TrimSpace(m.newSessionInputs[4].Value())

	if title == "" {
		return model.Session{}, errors.New("movie title is required")
	}
	if hall == "" {
		hall = "Hall 1"
	}
	startAt, err := time.ParseInLocation("2006-01-02T15:04", start, time.Local)
	if err != nil {
		return model.Session{}, errors.New("start must look like 2026-09-01T19:30")
	}
	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil || price <= 0 {
		return model.Session{}, errors.New("base price must be a positive number")
	}
	seats, err := strconv.Atoi(seatsRaw)
	if err != nil || seats <= 0 {
		return model.Session{}, errors.New("total seats must be a positive number")
	}

	return model.Session{
		MovieTitle: title,
		CinemaName: model.Cinemas[m.newSessionCinema],
		Hall:       hall,
		StartTime:  startAt.UTC().Format(time.RFC3339),
		BasePrice:  price,
		TotalSeats: seats,
	}, nil
}

func (m appModel) createSessionCmd(session model.Session) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		created, err := m.client.CreateSession(ctx, session)
		return sessionCreatedMsg{session: created, err: err}
	}
}
