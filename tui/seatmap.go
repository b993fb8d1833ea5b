package tui

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"cinemago-cli/booking"
	"cinemago-cli/model"
)

func (m appModel) handleSeatMapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "up", "k":
		if m.cursorRow > 0 {
			m.cursorRow--
			m.clampCursor()
		}
		return m, nil, true
	case "down", "j":
		if m.cursorRow < len(m.layout.Rows)-1 {
			m.cursorRow++
			m.clampCursor()
		}
		return m, nil, true
	case "left", "h":
		if m.cursorCol > 0 {
			m.cursorCol--
		}
		return m, nil, true
	case "right", "l":
		if m.cursorCol < len(m.layout.Rows[m.cursorRow])-1 {
			m.cursorCol++
		}
		return m, nil, true
	case "enter", " ":
		id := m.layout.Rows[m.cursorRow][m.cursorCol]
		if err := m.recon.Select(id); err != nil {
			var selErr *booking.InvalidSelectionError
			if errors.As(err, &selErr) {
				m.notice = selErr.Error()
				return m, nil, true
			}
			return m, errCmd(err), true
		}
		m.notice = ""
		return m, nil, true
	case "c":
		if _, ok := m.recon.Selection(); !ok {
			m.notice = "Pick a free seat first."
			return m, nil, true
		}
		return m.enterBookingForm()
	}
	return m, nil, false
}

func (m appModel) enterBookingForm() (tea.Model, tea.Cmd, bool) {
	if m.bookInputs[bookFieldEmail].Value() == "" && m.claims.Email != "" {
		m.bookInputs[bookFieldEmail].SetValue(m.claims.Email)
	}
	m.bookFocus = bookFieldEmail
	m.refocusBooking()
	m.notice = ""
	m.state = stateBookingForm
	return m, nil, true
}

func (m appModel) handleBookingFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "down":
		m.bookFocus = (m.bookFocus + 1) % 4
		m.refocusBooking()
		return m, nil, true
	case "shift+tab", "up":
		m.bookFocus = (m.bookFocus + 3) % 4
		m.refocusBooking()
		return m, nil, true
	case " ":
		if m.bookFocus == bookFieldStudent {
			m.isStudent = !m.isStudent
			return m, nil, true
		}
	}
	if msg.Type == tea.KeyEnter {
		if m.bookFocus == bookFieldStudent {
			m.isStudent = !m.isStudent
			return m, nil, true
		}
		if m.bookFocus != bookFieldSubmit {
			m.bookFocus++
			m.refocusBooking()
			return m, nil, true
		}
		return m.submitBooking()
	}
	return m, nil, false
}

func (m appModel) submitBooking() (tea.Model, tea.Cmd, bool) {
	if m.submitting {
		return m, nil, true
	}
	seat, ok := m.recon.Selection()
	if !ok {
		m.notice = "No seat selected."
		return m, nil, true
	}
	age, _ := strconv.Atoi(strings.TrimSpace(m.bookInputs[bookFieldAge].Value()))
	req := model.BookingRequest{
		Email:     strings.TrimSpace(m.bookInputs[bookFieldEmail].Value()),
		SessionID: m.selected.ID,
		Seat:      seat,
		IsStudent: m.isStudent,
		Age:       age,
	}
	if err := booking.Validate(req); err != nil {
		m.notice = err.Error()
		return m, nil, true
	}
	m.notice = ""
	m.submitting = true
	m.state = stateSubmitting
	return m, tea.Batch(m.submitBookingCmd(req), m.spinner.Tick), true
}

func (m *appModel) clampCursor() {
	rowLen := len(m.layout.Rows[m.cursorRow])
	if m.cursorCol >= rowLen {
		m.cursorCol = rowLen - 1
	}
}
