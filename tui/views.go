package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"cinemago-cli/booking"
	"cinemago-cli/model"
)

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLogin:
		return header + "\n\n" + m.loginView()
	case stateRegister:
		return header + "\n\n" + m.registerView()
	case stateLoadingSessions, stateLoadingSeats, stateSubmitting:
		return header + "\n\n" + m.loadingView()
	case stateListSessions:
		return header + "\n\n" + m.sessionList.View()
	case stateSelectDate:
		return header + "\n\n" + m.dateList.View()
	case stateSelectCinema:
		return header + "\n\n" + m.cinemaList.View()
	case stateMaxPrice:
		return header + "\n\n" + "Max ticket price\n\n" + m.priceInput.View() + "\n\n" + hint("Enter to apply, empty clears the cap.")
	case stateSeatMap:
		return header + "\n\n" + m.renderSeatMap()
	case stateBookingForm:
		return header + "\n\n" + m.bookingFormView()
	case stateReceipt:
		return header + "\n\n" + m.receiptView()
	case stateMovieSearch:
		return header + "\n\n" + m.movieView()
	case stateChat:
		return header + "\n\n" + m.chatView()
	case stateProfile:
		return header + "\n\n" + m.profileView()
	case stateAdmin:
		return header + "\n\n" + m.adminView()
	case stateAdminNewSession:
		return header + "\n\n" + m.newSessionView()
	case stateError:
		return header + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()) + "\n\n" + hint("Press enter or esc to go back, ctrl+c to quit.")
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("CinemaGo")
	sub := []string{}
	if m.authed && m.claims.Username != "" {
		who := m.claims.Username
		if m.claims.IsAdmin() {
			who += " (admin)"
		}
		sub = append(sub, "User: "+who)
	}
	if m.authed && m.filter.Date != "" && m.state != stateLogin && m.state != stateRegister {
		sub = append(sub, "Date: "+m.filter.Date)
	}
	if m.filter.Cinema != "" {
		sub = append(sub, "Cinema: "+m.filter.Cinema)
	}
	if m.filter.OnlyWithSeats {
		sub = append(sub, "Only with seats")
	}
	if m.state == stateSeatMap || m.state == stateBookingForm {
		sub = append(sub, fmt.Sprintf("Session: %s %s", m.selected.MovieTitle, formatStartTime(m.selected.StartTime)))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}

	hints := "ctrl+c quit • esc back"
	switch m.state {
	case stateLogin:
		hints = "ctrl+c quit • tab next field • enter sign in • ctrl+n create account"
	case stateRegister:
		hints = "ctrl+c quit • tab next field • enter submit • esc back to login"
	case stateListSessions:
		hints = "ctrl+c quit • type to filter • enter pick seats • ctrl+d date • ctrl+g cinema • ctrl+b max price • ctrl+o seats toggle • ctrl+f movie • ctrl+a assistant • ctrl+p profile • ctrl+l sign out"
		if m.claims.IsAdmin() {
			hints += " • ctrl+t board • ctrl+x delete session"
		}
	case stateSelectDate:
		hints = "ctrl+c quit • esc back • enter select date"
	case stateSelectCinema:
		hints = "ctrl+c quit • esc back • enter select cinema"
	case stateSeatMap:
		hints = "ctrl+c quit • esc back • arrows move • enter pick seat • c continue"
	case stateBookingForm:
		hints = "ctrl+c quit • esc back • tab next field • space toggle student • enter confirm"
	case stateReceipt:
		hints = "ctrl+c quit • p pay online • enter back to sessions"
	case stateMovieSearch:
		hints = "ctrl+c quit • esc back • enter search"
	case stateChat:
		hints = "ctrl+c quit • esc back • enter send"
	case stateAdmin:
		hints = "ctrl+c quit • esc sessions • ctrl+n new session • ctrl+r refresh orders • ctrl+l sign out"
	case stateAdminNewSession:
		hints = "ctrl+c quit • esc cancel • tab next field • left/right pick cinema • enter create"
	}

	notice := ""
	if m.notice != "" {
		notice = "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render(m.notice)
	}
	return title + meta + notice + "\n" + hint(hints)
}

func (m appModel) loadingView() string {
	label := "Loading..."
	switch m.state {
	case stateLoadingSessions:
		label = "Loading sessions..."
	case stateLoadingSeats:
		label = "Refreshing seat availability..."
	case stateSubmitting:
		label = "Submitting booking..."
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), label)
}

func (m appModel) loginView() string {
	var b strings.Builder
	b.WriteString("Sign in\n\n")
	b.WriteString(formLine("Email", m.loginInputs[loginFieldEmail].View(), m.loginFocus == loginFieldEmail))
	b.WriteString(formLine("Password", m.loginInputs[loginFieldPassword].View(), m.loginFocus == loginFieldPassword))
	b.WriteString("\n")
	b.WriteString(buttonLine("Sign in", m.loginFocus == loginFieldSubmit))
	return b.String()
}

func (m appModel) registerView() string {
	var b strings.Builder
	b.WriteString("Create account\n\n")
	b.WriteString(formLine("Email", m.regInputs[regFieldEmail].View(), m.regFocus == regFieldEmail))
	b.WriteString(formLine("Username", m.regInputs[regFieldUsername].View(), m.regFocus == regFieldUsername))
	b.WriteString(formLine("Password", m.regInputs[regFieldPassword].View(), m.regFocus == regFieldPassword))
	b.WriteString("\n")
	b.WriteString(buttonLine("Register", m.regFocus == regFieldSubmit))
	return b.String()
}

func (m appModel) renderSeatMap() string {
	if m.recon == nil || len(m.layout.Rows) == 0 {
		return "No seat map data."
	}

	seatStyleFree := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatStyleTaken := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	seatStyleSelected := lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2")).Bold(true)
	cursorStyle := lipgloss.NewStyle().Reverse(true)

	cellWidth := 3
	for _, row := range m.layout.Rows {
		for _, id := range row {
			if len(id) > cellWidth {
				cellWidth = len(id)
			}
		}
	}

	selectedSeat, hasSelection := m.recon.Selection()

	var b strings.Builder
	for r, row := range m.layout.Rows {
		b.WriteString(fmt.Sprintf("%s ", string(row[0][0])))
		for c, id := range row {
			text := padCell(id, cellWidth)
			state, _ := m.recon.State(id)
			switch {
			case r == m.cursorRow && c == m.cursorCol:
				text = cursorStyle.Render(text)
			case hasSelection && id == selectedSeat:
				text = seatStyleSelected.Render(text)
			case state == booking.SeatFree:
				text = seatStyleFree.Render(text)
			default:
				text = seatStyleTaken.Render(text)
			}
			b.WriteString(text)
			if c < len(row)-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	gridWidth := len(m.layout.Rows[0])*(cellWidth+1) - 1
	screenBar := screenBarBlock(gridWidth, "SCREEN")
	screenStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214"))
	screenBorderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Background(lipgloss.Color("236"))

	b.WriteString("\n")
	b.WriteString("  " + screenBorderStyle.Render(screenBar.top) + "\n")
	b.WriteString("  " + screenStyle.Render(screenBar.mid) + "\n")
	b.WriteString("  " + screenBorderStyle.Render(screenBar.bot) + "\n\n")

	b.WriteString(fmt.Sprintf("Free %d of %d", m.recon.FreeCount(), m.recon.Size()))
	if hasSelection {
		b.WriteString(" • Selected: " + selectedSeat)
	}
	b.WriteString("\n")
	b.WriteString(hint("Legend: green free • gray taken • highlighted selected"))
	return b.String()
}

func (m appModel) bookingFormView() string {
	seat, _ := m.recon.Selection()
	base := m.selected.BasePrice
	total := booking.DisplayTotal(base, m.isStudent)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Booking seat %s • %s • %s\n\n", seat, m.selected.MovieTitle, m.selected.CinemaName))
	b.WriteString(formLine("Email", m.bookInputs[bookFieldEmail].View(), m.bookFocus == bookFieldEmail))
	b.WriteString(formLine("Age", m.bookInputs[bookFieldAge].View(), m.bookFocus == bookFieldAge))

	student := "[ ] Student discount (-20%)"
	if m.isStudent {
		student = "[x] Student discount (-20%)"
	}
	b.WriteString(formLine("", student, m.bookFocus == bookFieldStudent))

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Base price:  %s\n", booking.FormatPrice(base)))
	if m.isStudent {
		b.WriteString(fmt.Sprintf("Student:     -%s\n", booking.FormatPrice(base-total)))
	}
	b.WriteString(fmt.Sprintf("To pay:      %s\n", lipgloss.NewStyle().Bold(true).Render(booking.FormatPrice(total))))
	b.WriteString(hint("Final price is confirmed by the cinema; promos may lower it further.") + "\n\n")

	label := "Confirm booking"
	if m.submitting {
		label = "Submitting..."
	}
	b.WriteString(buttonLine(label, m.bookFocus == bookFieldSubmit))
	return b.String()
}

func (m appModel) receiptView() string {
	ok := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	var b strings.Builder
	b.WriteString(ok.Render("Booking confirmed") + "\n\n")
	b.WriteString(fmt.Sprintf("Order:   #%d\n", m.order.ID))
	b.WriteString(fmt.Sprintf("Movie:   %s\n", m.order.MovieTitle))
	b.WriteString(fmt.Sprintf("Email:   %s\n", m.order.CustomerEmail))
	b.WriteString(fmt.Sprintf("Price:   %s\n", booking.FormatPrice(m.order.FinalPrice)))
	if m.order.PromoCode != "" {
		b.WriteString(fmt.Sprintf("Promo:   %s\n", m.order.PromoCode))
	}
	if m.order.BonusesEarned > 0 {
		b.WriteString(fmt.Sprintf("Bonuses: +%d\n", m.order.BonusesEarned))
	}
	b.WriteString("\n" + hint("Press p to pay online, enter to book another session."))
	return b.String()
}

func (m appModel) movieView() string {
	var b strings.Builder
	b.WriteString("Movie lookup\n\n")
	b.WriteString(m.movieInput.View() + "\n\n")
	if m.movieBusy {
		b.WriteString(fmt.Sprintf("%s Searching...\n", m.spinner.View()))
		return b.String()
	}
	if m.movie == nil {
		b.WriteString(hint("Enter a title or a TMDb id and press enter."))
		return b.String()
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.movie.Title) + "\n")
	if m.movie.ReleaseDate != "" {
		b.WriteString("Released: " + m.movie.ReleaseDate + "\n")
	}
	if m.movie.VoteAverage > 0 {
		b.WriteString(fmt.Sprintf("Rating:   %.1f/10\n", m.movie.VoteAverage))
	}
	if m.movie.Adult {
		b.WriteString("18+\n")
	}
	if m.movie.Overview != "" {
		b.WriteString("\n" + wrapText(m.movie.Overview, max(40, m.width-4)) + "\n")
	}
	return b.String()
}

func (m appModel) chatView() string {
	userStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	botStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)

	var b strings.Builder
	b.WriteString("Assistant\n\n")
	if len(m.chatLog) == 0 {
		b.WriteString(hint("Ask about movies, sessions or discounts.") + "\n")
	}
	width := max(40, m.width-10)
	for _, entry := range m.chatLog {
		if entry.fromUser {
			b.WriteString(userStyle.Render("you: "))
		} else {
			b.WriteString(botStyle.Render("bot: "))
		}
		b.WriteString(wrapText(entry.text, width) + "\n")
	}
	if m.chatWaiting {
		b.WriteString(fmt.Sprintf("%s thinking...\n", m.spinner.View()))
	}
	b.WriteString("\n" + m.chatInput.View())
	return b.String()
}

func (m appModel) profileView() string {
	var b strings.Builder
	b.WriteString("My tickets\n\n")
	if m.profileBusy {
		b.WriteString(fmt.Sprintf("%s Loading profile...\n", m.spinner.View()))
		return b.String()
	}
	if len(m.profile.Tickets) == 0 {
		b.WriteString(hint("No tickets yet.") + "\n")
	}
	for _, t := range m.profile.Tickets {
		line := fmt.Sprintf("#%-4d %-28s seat %-4s %s", t.OrderID, t.MovieTitle, t.Seat, booking.FormatPrice(t.FinalPrice))
		if t.StartTime != "" {
			line += "  " + formatStartTime(t.StartTime)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(fmt.Sprintf("\nTotal bonuses: %d\n", m.profile.TotalBonuses))
	return b.String()
}

func (m appModel) adminView() string {
	revenue := 0.0
	for _, o := range m.orders {
		revenue += o.FinalPrice
	}
	stats := fmt.Sprintf("Orders: %d • Revenue: %s • Sessions on %s: %d",
		len(m.orders), booking.FormatPrice(revenue), m.filter.Date, len(m.sessions))
	return lipgloss.NewStyle().Faint(true).Render(stats) + "\n\n" + m.orderList.View()
}

func (m appModel) newSessionView() string {
	cinema := fmt.Sprintf("< %s >", model.Cinemas[m.newSessionCinema])

	var b strings.Builder
	b.WriteString("New session\n\n")
	b.WriteString(formLine("Movie", m.newSessionInputs[0].View(), m.newSessionFocus == newSessionFieldTitle))
	b.WriteString(formLine("Cinema", cinema, m.newSessionFocus == newSessionFieldCinema))
	b.WriteString(formLine("Hall", m.newSessionInputs[1].View(), m.newSessionFocus == newSessionFieldHall))
	b.WriteString(formLine("Start", m.newSessionInputs[2].View(), m.newSessionFocus == newSessionFieldStart))
	b.WriteString(formLine("Price", m.newSessionInputs[3].View(), m.newSessionFocus == newSessionFieldPrice))
	b.WriteString(formLine("Seats", m.newSessionInputs[4].View(), m.newSessionFocus == newSessionFieldSeats))
	b.WriteString("\n")
	b.WriteString(buttonLine("Create session", m.newSessionFocus == newSessionFieldSubmit))
	return b.String()
}

func formLine(label string, field string, focused bool) string {
	marker := "  "
	if focused {
		marker = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Render("> ")
	}
	if label == "" {
		return fmt.Sprintf("%s%s\n", marker, field)
	}
	return fmt.Sprintf("%s%-9s %s\n", marker, label, field)
}

func buttonLine(label string, focused bool) string {
	style := lipgloss.NewStyle().Padding(0, 2)
	if focused {
		style = style.Reverse(true).Bold(true)
	} else {
		style = style.Faint(true)
	}
	return style.Render("[ "+label+" ]") + "\n"
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func sessionListTitle(filter model.SessionFilter) string {
	title := "Sessions • " + filter.Date
	if filter.Cinema != "" {
		title += " • " + filter.Cinema
	}
	if filter.MaxPrice > 0 {
		title += " • up to " + booking.FormatPrice(filter.MaxPrice)
	}
	return title
}

// formatStartTime renders a session start for display. The server sends
// RFC 3339; anything else is shown as-is.
func formatStartTime(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Format("Mon 2 Jan 15:04")
}

func padCell(text string, width int) string {
	if len(text) >= width {
		return text
	}
	left := (width - len(text)) / 2
	right := width - len(text) - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

type screenBar struct {
	top string
	mid string
	bot string
}

func screenBarBlock(width int, label string) screenBar {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	pad := width - len(label)
	left := pad / 2
	right := pad - left
	return screenBar{
		top: strings.Repeat("▁", width),
		mid: strings.Repeat(" ", left) + label + strings.Repeat(" ", right),
		bot: strings.Repeat("▔", width),
	}
}

func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	words := strings.Fields(text)
	var b strings.Builder
	line := 0
	for i, w := range words {
		if i > 0 {
			if line+1+len(w) > width {
				b.WriteString("\n")
				line = 0
			} else {
				b.WriteString(" ")
				line++
			}
		}
		b.WriteString(w)
		line += len(w)
	}
	return b.String()
}
