package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cinemago-cli/booking"
	"cinemago-cli/config"
	"cinemago-cli/model"
	"cinemago-cli/service"
	"cinemago-cli/store"
)

type appState int

const (
	stateLogin appState = iota
	stateRegister
	stateLoadingSessions
	stateListSessions
	stateSelectDate
	stateSelectCinema
	stateMaxPrice
	stateLoadingSeats
	stateSeatMap
	stateBookingForm
	stateSubmitting
	stateReceipt
	stateMovieSearch
	stateChat
	stateProfile
	stateAdmin
	stateAdminNewSession
	stateError
)

const (
	loginFieldEmail = iota
	loginFieldPassword
	loginFieldSubmit
)

const (
	regFieldEmail = iota
	regFieldUsername
	regFieldPassword
	regFieldSubmit
)

const (
	bookFieldEmail = iota
	bookFieldAge
	bookFieldStudent
	bookFieldSubmit
)

const (
	newSessionFieldTitle = iota
	newSessionFieldCinema
	newSessionFieldHall
	newSessionFieldStart
	newSessionFieldPrice
	newSessionFieldSeats
	newSessionFieldSubmit
)

type appModel struct {
	cfg       config.Config
	client    *service.Client
	submitter *booking.Submitter

	state     appState
	lastState appState
	err       error
	notice    string

	width  int
	height int

	spinner spinner.Model

	claims model.TokenClaims
	authed bool

	loginInputs []textinput.Model
	loginFocus  int
	regInputs   []textinput.Model
	regFocus    int

	filter   model.SessionFilter
	sessions []model.Session

	sessionList list.Model
	cinemaList  list.Model
	dateList    list.Model
	orderList   list.Model

	selected  model.Session
	layout    booking.Layout
	recon     *booking.Reconciler
	cursorRow int
	cursorCol int

	bookInputs []textinput.Model
	bookFocus  int
	isStudent  bool
	submitting bool

	order  model.Order
	paying bool

	priceInput textinput.Model

	movieInput textinput.Model
	movie      *model.Movie
	movieBusy  bool

	chatInput   textinput.Model
	chatLog     []chatEntry
	chatWaiting bool

	profile     model.Profile
	profileBusy bool

	orders []model.Order

	newSessionInputs []textinput.Model
	newSessionFocus  int
	newSessionCinema int

	fetchSeq int
}

type chatEntry struct {
	fromUser bool
	text     string
}

type errMsg struct {
	err            error
	returnState    appState
	returnStateSet bool
}

type authMsg struct {
	auth   model.AuthResponse
	claims model.TokenClaims
	err    error
}

type registerMsg struct {
	email string
	err   error
}

type sessionsMsg struct {
	seq      int
	sessions []model.Session
	err      error
}

type seatRefreshMsg struct {
	seq     int
	session model.Session
	found   bool
	err     error
}

type bookMsg struct {
	order model.Order
	err   error
}

type payMsg struct {
	url string
	err error
}

type movieMsg struct {
	movie model.Movie
	err   error
}

type chatReplyMsg struct {
	reply string
	err   error
}

type profileMsg struct {
	profile model.Profile
	err     error
}

type ordersMsg struct {
	orders []model.Order
	err    error
}

type sessionDeletedMsg struct {
	id  int
	err error
}

type sessionCreatedMsg struct {
	session model.Session
	err     error
}

// New builds the application model. A stored token, when present, skips the
// login screen; the server will still reject it with 401 if it is stale.
func New(cfg config.Config) tea.Model {
	var httpClient *http.Client
	if cfg.HTTPTimeout > 0 {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	client := service.NewClient(cfg.BaseURL, httpClient)

	m := appModel{
		cfg:       cfg,
		client:    client,
		submitter: booking.NewSubmitter(client),
		state:     stateLogin,
		filter:    model.SessionFilter{Date: time.Now().Format(time.DateOnly)},
	}

	m.sessionList = newList("Sessions")
	m.cinemaList = newList("Select Cinema")
	m.dateList = newList("Select Date")
	m.orderList = newList("Orders")
	m.cinemaList.SetItems(buildCinemaItems())
	m.dateList.SetItems(buildDateItems(time.Now()))

	m.loginInputs = newLoginInputs()
	m.regInputs = newRegisterInputs()
	m.bookInputs = newBookingInputs()
	m.newSessionInputs = newSessionInputs()
	m.priceInput = newTextInput("max price, empty for no cap", 8)
	m.movieInput = newTextInput("movie title or TMDb id", 64)
	m.chatInput = newTextInput("ask about movies, sessions, discounts...", 200)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	// Resume the last browser query. A remembered date in the past would
	// only show an empty day, so it falls back to today.
	if recent, err := store.LoadRecentFilters(); err == nil && len(recent) > 0 {
		last := recent[0]
		m.filter.Cinema = last.Cinema
		m.filter.MaxPrice = last.MaxPrice
		m.filter.OnlyWithSeats = last.OnlyWithSeats
		if _, err := time.Parse(time.DateOnly, last.Date); err == nil && last.Date >= time.Now().Format(time.DateOnly) {
			m.filter.Date = last.Date
		}
	}

	if token, err := store.LoadToken(); err == nil && token != "" {
		if claims, err := model.ParseTokenClaims(token); err == nil {
			client.SetToken(token)
			m.claims = claims
			m.authed = true
			m.state = stateLoadingSessions
		}
	}

	return m
}

func (m appModel) Init() tea.Cmd {
	if m.authed {
		return tea.Batch(m.fetchSessionsCmd(m.filter), m.spinner.Tick)
	}
	return textinput.Blink
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() {
			return m, cmd
		}
		return m, nil

	case errMsg:
		return m.applyError(msg)

	case authMsg:
		if msg.err != nil {
			if sErr := userFacing(msg.err); sErr != "" {
				m.notice = sErr
				return m, nil
			}
			return m, errCmd(msg.err)
		}
		m.claims = msg.claims
		m.authed = true
		m.notice = ""
		_ = store.SaveToken(msg.auth.Token)
		if m.claims.IsAdmin() {
			m.state = stateAdmin
			return m, tea.Batch(m.fetchOrdersCmd(), m.spinner.Tick)
		}
		m.state = stateLoadingSessions
		return m, tea.Batch(m.fetchSessionsCmd(m.filter), m.spinner.Tick)

	case registerMsg:
		if msg.err != nil {
			m.notice = userFacingOr(msg.err, "registration failed")
			return m, nil
		}
		m.notice = "Account created. Please sign in."
		m.state = stateLogin
		m.loginInputs[loginFieldEmail].SetValue(msg.email)
		m.loginFocus = loginFieldPassword
		m.refocusLogin()
		return m, textinput.Blink

	case sessionsMsg:
		if msg.seq != m.fetchSeq {
			// A newer request supersedes this result; drop it.
			return m, nil
		}
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateSelectDate)
		}
		m.sessions = msg.sessions
		m.sessionList.Title = sessionListTitle(m.filter)
		m.sessionList.SetItems(buildSessionItems(msg.sessions))
		m.sessionList.Select(0)
		if remembered, ok, err := store.LoadSelectedSession(); err == nil && ok {
			for i, s := range msg.sessions {
				if s.ID == remembered.ID {
					m.sessionList.Select(i)
					break
				}
			}
		}
		m.state = stateListSessions
		if len(msg.sessions) == 0 {
			m.notice = "No sessions found. Pick another date with ctrl+d."
		} else {
			m.notice = ""
		}
		return m, nil

	case seatRefreshMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateListSessions)
		}
		if !msg.found {
			return m, errWithOptionsCmd(errors.New("session is no longer on sale"), stateListSessions)
		}
		return m.enterSeatMap(msg.session)

	case bookMsg:
		m.submitting = false
		if msg.err != nil {
			var vErr *booking.ValidationError
			var rErr *booking.RejectedError
			if errors.As(msg.err, &vErr) || errors.As(msg.err, &rErr) {
				m.notice = msg.err.Error()
				m.state = stateBookingForm
				return m, nil
			}
			return m, errWithOptionsCmd(msg.err, stateBookingForm)
		}
		m.order = msg.order
		m.notice = ""
		_ = store.ClearSelectedSession()
		m.state = stateReceipt
		return m, nil

	case payMsg:
		m.paying = false
		if msg.err != nil {
			m.notice = userFacingOr(msg.err, "payment init failed")
			return m, nil
		}
		m.notice = "Payment page opened in your browser."
		return m, openURLCmd(msg.url)

	case movieMsg:
		m.movieBusy = false
		if msg.err != nil {
			m.movie = nil
			m.notice = userFacingOr(msg.err, "movie lookup failed")
			return m, nil
		}
		movie := msg.movie
		m.movie = &movie
		m.notice = ""
		return m, nil

	case chatReplyMsg:
		m.chatWaiting = false
		if msg.err != nil {
			m.chatLog = append(m.chatLog, chatEntry{text: "Error: " + userFacingOr(msg.err, "assistant unavailable")})
			return m, nil
		}
		m.chatLog = append(m.chatLog, chatEntry{text: msg.reply})
		return m, nil

	case profileMsg:
		m.profileBusy = false
		if msg.err != nil {
			if service.IsUnauthorized(msg.err) {
				return m.handleUnauthorized()
			}
			m.notice = userFacingOr(msg.err, "profile unavailable")
			return m, nil
		}
		m.profile = msg.profile
		m.notice = ""
		return m, nil

	case ordersMsg:
		if msg.err != nil {
			if service.IsUnauthorized(msg.err) {
				return m.handleUnauthorized()
			}
			return m, errWithOptionsCmd(msg.err, stateListSessions)
		}
		m.orders = msg.orders
		m.orderList.SetItems(buildOrderItems(msg.orders))
		m.state = stateAdmin
		return m, nil

	case sessionDeletedMsg:
		if msg.err != nil {
			m.notice = userFacingOr(msg.err, "delete failed")
			return m, nil
		}
		m.notice = fmt.Sprintf("Session #%d deleted.", msg.id)
		m.state = stateLoadingSessions
		return m, tea.Batch(m.fetchSessionsCmd(m.filter), m.spinner.Tick)

	case sessionCreatedMsg:
		if msg.err != nil {
			m.notice = userFacingOr(msg.err, "create failed")
			return m, nil
		}
		m.notice = fmt.Sprintf("Session #%d created.", msg.session.ID)
		m.state = stateAdmin
		return m, tea.Batch(m.fetchOrdersCmd(), m.spinner.Tick)
	}

	return m.updateFocusedComponent(msg)
}

func (m appModel) updateFocusedComponent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case stateLogin:
		m.loginInputs[m.loginFocus], cmd = m.loginInputs[m.loginFocus].Update(msg)
	case stateRegister:
		m.regInputs[m.regFocus], cmd = m.regInputs[m.regFocus].Update(msg)
	case stateBookingForm:
		if m.bookFocus == bookFieldEmail || m.bookFieldAgeFocused() {
			m.bookInputs[m.bookFocus], cmd = m.bookInputs[m.bookFocus].Update(msg)
		}
	case stateMovieSearch:
		m.movieInput, cmd = m.movieInput.Update(msg)
	case stateChat:
		m.chatInput, cmd = m.chatInput.Update(msg)
	case stateMaxPrice:
		m.priceInput, cmd = m.priceInput.Update(msg)
	case stateListSessions:
		m.sessionList, cmd = m.sessionList.Update(msg)
	case stateSelectCinema:
		m.cinemaList, cmd = m.cinemaList.Update(msg)
	case stateSelectDate:
		m.dateList, cmd = m.dateList.Update(msg)
	case stateAdmin:
		m.orderList, cmd = m.orderList.Update(msg)
	case stateAdminNewSession:
		if idx, ok := newSessionInputIndex(m.newSessionFocus); ok {
			m.newSessionInputs[idx], cmd = m.newSessionInputs[idx].Update(msg)
		}
	}
	return m, cmd
}

func (m appModel) bookFieldAgeFocused() bool {
	return m.bookFocus == bookFieldAge
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "esc":
		next, cmd := m.goBack()
		return next, cmd, true
	case "ctrl+l":
		if m.authed {
			return m.logout()
		}
	case "ctrl+d":
		if m.authed && (m.state == stateListSessions || m.state == stateSelectCinema) {
			m.dateList.SetItems(buildDateItems(time.Now()))
			m.state = stateSelectDate
			return m, nil, true
		}
	case "ctrl+g":
		if m.authed && (m.state == stateListSessions || m.state == stateSelectDate) {
			m.state = stateSelectCinema
			return m, nil, true
		}
	case "ctrl+o":
		if m.authed && m.state == stateListSessions {
			m.filter.OnlyWithSeats = !m.filter.OnlyWithSeats
			return m.reloadSessions()
		}
	case "ctrl+b":
		if m.authed && m.state == stateListSessions {
			if m.filter.MaxPrice > 0 {
				m.priceInput.SetValue(strconv.FormatFloat(m.filter.MaxPrice, 'f', -1, 64))
			} else {
				m.priceInput.SetValue("")
			}
			m.priceInput.Focus()
			m.state = stateMaxPrice
			return m, textinput.Blink, true
		}
	case "ctrl+f":
		if m.authed && m.state != stateMovieSearch {
			m.lastState = m.state
			m.state = stateMovieSearch
			m.movieInput.Focus()
			return m, textinput.Blink, true
		}
	case "ctrl+a":
		if m.authed && m.state != stateChat {
			m.lastState = m.state
			m.state = stateChat
			m.chatInput.Focus()
			return m, textinput.Blink, true
		}
	case "ctrl+p":
		if m.authed && m.state != stateProfile {
			m.lastState = m.state
			m.state = stateProfile
			m.profileBusy = true
			return m, tea.Batch(m.fetchProfileCmd(), m.spinner.Tick), true
		}
	case "ctrl+t":
		if m.authed && m.claims.IsAdmin() && m.state != stateAdmin {
			return m, tea.Batch(m.fetchOrdersCmd(), m.spinner.Tick), true
		}
	case "ctrl+x":
		if m.authed && m.claims.IsAdmin() && m.state == stateListSessions {
			return m.deleteSelectedSession()
		}
	case "ctrl+r":
		if m.state == stateListSessions {
			return m.reloadSessions()
		}
		if m.state == stateAdmin {
			return m, tea.Batch(m.fetchOrdersCmd(), m.spinner.Tick), true
		}
	}

	switch m.state {
	case stateLogin:
		return m.handleLoginKey(msg)
	case stateRegister:
		return m.handleRegisterKey(msg)
	case stateListSessions:
		return m.handleSessionListKey(msg)
	case stateSelectDate:
		if msg.Type == tea.KeyEnter {
			item, ok := m.dateList.SelectedItem().(dateItem)
			if !ok {
				return m, nil, true
			}
			m.filter.Date = item.date.Format(time.DateOnly)
			return m.reloadSessions()
		}
	case stateSelectCinema:
		if msg.Type == tea.KeyEnter {
			item, ok := m.cinemaList.SelectedItem().(cinemaItem)
			if !ok {
				return m, nil, true
			}
			m.filter.Cinema = item.name
			return m.reloadSessions()
		}
	case stateMaxPrice:
		if msg.Type == tea.KeyEnter {
			raw := strings.TrimSpace(m.priceInput.Value())
			if raw == "" {
				m.filter.MaxPrice = 0
				return m.reloadSessions()
			}
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil || price < 0 {
				m.notice = "Price must be a non-negative number."
				return m, nil, true
			}
			m.filter.MaxPrice = price
			m.notice = ""
			return m.reloadSessions()
		}
	case stateSeatMap:
		return m.handleSeatMapKey(msg)
	case stateBookingForm:
		return m.handleBookingFormKey(msg)
	case stateReceipt:
		return m.handleReceiptKey(msg)
	case stateMovieSearch:
		if msg.Type == tea.KeyEnter && !m.movieBusy {
			query := strings.TrimSpace(m.movieInput.Value())
			if query == "" {
				return m, nil, true
			}
			m.movieBusy = true
			m.notice = ""
			return m, tea.Batch(m.lookupMovieCmd(query), m.spinner.Tick), true
		}
	case stateChat:
		if msg.Type == tea.KeyEnter && !m.chatWaiting {
			text := strings.TrimSpace(m.chatInput.Value())
			if text == "" {
				return m, nil, true
			}
			m.chatInput.SetValue("")
			m.chatLog = append(m.chatLog, chatEntry{fromUser: true, text: text})
			m.chatWaiting = true
			return m, tea.Batch(m.sendChatCmd(text), m.spinner.Tick), true
		}
	case stateAdmin:
		if msg.String() == "ctrl+n" {
			m.newSessionFocus = newSessionFieldTitle
			m.newSessionCinema = 0
			m.refocusNewSession()
			m.notice = ""
			m.state = stateAdminNewSession
			return m, textinput.Blink, true
		}
		return m, nil, false
	case stateAdminNewSession:
		return m.handleNewSessionKey(msg)
	case stateError:
		if msg.Type == tea.KeyEnter {
			m.state = m.lastState
			m.err = nil
			return m, nil, true
		}
	}
	return m, nil, false
}

func (m appModel) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "down":
		m.loginFocus = (m.loginFocus + 1) % 3
		m.refocusLogin()
		return m, textinput.Blink, true
	case "shift+tab", "up":
		m.loginFocus = (m.loginFocus + 2) % 3
		m.refocusLogin()
		return m, textinput.Blink, true
	case "ctrl+n":
		m.state = stateRegister
		m.notice = ""
		m.regFocus = regFieldEmail
		m.refocusRegister()
		return m, textinput.Blink, true
	}
	if msg.Type == tea.KeyEnter {
		if m.loginFocus != loginFieldSubmit {
			m.loginFocus++
			m.refocusLogin()
			return m, textinput.Blink, true
		}
		email := strings.TrimSpace(m.loginInputs[loginFieldEmail].Value())
		password := m.loginInputs[loginFieldPassword].Value()
		if err := validateLogin(email, password); err != nil {
			m.notice = err.Error()
			return m, nil, true
		}
		m.notice = "Signing in..."
		return m, tea.Batch(m.loginCmd(email, password), m.spinner.Tick), true
	}
	return m, nil, false
}

func (m appModel) handleRegisterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "down":
		m.regFocus = (m.regFocus + 1) % 4
		m.refocusRegister()
		return m, textinput.Blink, true
	case "shift+tab", "up":
		m.regFocus = (m.regFocus + 3) % 4
		m.refocusRegister()
		return m, textinput.Blink, true
	}
	if msg.Type == tea.KeyEnter {
		if m.regFocus != regFieldSubmit {
			m.regFocus++
			m.refocusRegister()
			return m, textinput.Blink, true
		}
		email := strings.TrimSpace(m.regInputs[regFieldEmail].Value())
		username := strings.TrimSpace(m.regInputs[regFieldUsername].Value())
		password := m.regInputs[regFieldPassword].Value()
		if err := validateRegistration(email, username, password); err != nil {
			m.notice = err.Error()
			return m, nil, true
		}
		m.notice = "Creating account..."
		return m, tea.Batch(m.registerCmd(email, username, password), m.spinner.Tick), true
	}
	return m, nil, false
}

func (m appModel) handleSessionListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if m.handleFilterInput(msg) {
		return m, nil, true
	}
	if msg.Type == tea.KeyEnter {
		item, ok := m.sessionList.SelectedItem().(sessionItem)
		if !ok {
			return m, nil, true
		}
		if len(item.session.AvailableSeats) == 0 {
			m.notice = "Sold out. Pick another session."
			return m, nil, true
		}
		_ = store.RememberSelectedSession(item.session)
		m.fetchSeq++
		m.state = stateLoadingSeats
		return m, tea.Batch(m.refreshSeatsCmd(m.fetchSeq, item.session), m.spinner.Tick), true
	}
	return m, nil, false
}

func (m appModel) handleReceiptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "p":
		if m.paying {
			return m, nil, true
		}
		m.paying = true
		m.notice = "Preparing payment..."
		return m, tea.Batch(m.initPaymentCmd(m.order.ID), m.spinner.Tick), true
	case "enter", "n":
		m.notice = ""
		return m.returnToSessions()
	}
	return m, nil, false
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	if !m.sessionList.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.sessionList.SetFilterText(m.sessionList.FilterValue() + string(msg.Runes))
		return true
	case tea.KeySpace:
		m.sessionList.SetFilterText(m.sessionList.FilterValue() + " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		value := m.sessionList.FilterValue()
		if value == "" {
			return false
		}
		runes := []rune(value)
		if len(runes) <= 1 {
			m.sessionList.ResetFilter()
			return true
		}
		m.sessionList.SetFilterText(string(runes[:len(runes)-1]))
		return true
	default:
		return false
	}
}

func (m appModel) reloadSessions() (tea.Model, tea.Cmd, bool) {
	m.fetchSeq++
	m.state = stateLoadingSessions
	_ = store.RememberFilter(store.RecentFilter{
		Date:          m.filter.Date,
		Cinema:        m.filter.Cinema,
		MaxPrice:      m.filter.MaxPrice,
		OnlyWithSeats: m.filter.OnlyWithSeats,
	})
	return m, tea.Batch(m.fetchSessionsCmd(m.filter), m.spinner.Tick), true
}

func (m appModel) returnToSessions() (tea.Model, tea.Cmd, bool) {
	m.fetchSeq++
	m.state = stateLoadingSessions
	return m, tea.Batch(m.fetchSessionsCmd(m.filter), m.spinner.Tick), true
}

func (m appModel) enterSeatMap(session model.Session) (tea.Model, tea.Cmd) {
	total := session.TotalSeats
	if total == 0 {
		total = len(session.AvailableSeats)
	}
	layout, err := booking.NewLayout(total, booking.DefaultRowWidth)
	if err != nil {
		return m, errWithOptionsCmd(err, stateListSessions)
	}

	recon := booking.NewReconciler(layout.SeatIDs())
	recon.Classify(session.AvailableSeats)
	if ignored := recon.Ignored(); len(ignored) > 0 {
		m.cfg.Debugf("ignored stale seat ids from server: %s", strings.Join(ignored, ", "))
	}

	m.selected = session
	m.layout = layout
	m.recon = recon
	m.cursorRow = 0
	m.cursorCol = 0
	m.notice = ""
	m.state = stateSeatMap
	return m, nil
}

func (m appModel) deleteSelectedSession() (tea.Model, tea.Cmd, bool) {
	item, ok := m.sessionList.SelectedItem().(sessionItem)
	if !ok {
		return m, nil, true
	}
	return m, m.deleteSessionCmd(item.session.ID), true
}

func (m appModel) logout() (tea.Model, tea.Cmd, bool) {
	m.client.ClearToken()
	_ = store.ClearToken()
	m.authed = false
	m.claims = model.TokenClaims{}
	m.notice = "Signed out."
	m.state = stateLogin
	m.loginFocus = loginFieldEmail
	m.refocusLogin()
	return m, textinput.Blink, true
}

func (m appModel) handleUnauthorized() (tea.Model, tea.Cmd) {
	m.client.ClearToken()
	_ = store.ClearToken()
	m.authed = false
	m.claims = model.TokenClaims{}
	m.notice = "Session expired. Please sign in again."
	m.state = stateLogin
	m.loginFocus = loginFieldEmail
	m.refocusLogin()
	return m, textinput.Blink
}

func (m appModel) applyError(msg errMsg) (tea.Model, tea.Cmd) {
	if service.IsUnauthorized(msg.err) {
		return m.handleUnauthorized()
	}
	m.err = msg.err
	if msg.returnStateSet {
		m.lastState = msg.returnState
	} else {
		m.lastState = recoverStateFrom(m.state)
	}
	m.state = stateError
	return m, nil
}

func (m appModel) goBack() (tea.Model, tea.Cmd) {
	switch m.state {
	case stateRegister:
		m.state = stateLogin
		m.notice = ""
		m.refocusLogin()
	case stateSelectDate, stateSelectCinema, stateMaxPrice:
		m.state = stateListSessions
	case stateSeatMap:
		m.state = stateListSessions
	case stateBookingForm:
		m.state = stateSeatMap
	case stateReceipt:
		return m.goBackFromReceipt()
	case stateMovieSearch, stateChat, stateProfile:
		m.state = m.lastState
		m.notice = ""
	case stateAdmin:
		m.state = stateLoadingSessions
		m.fetchSeq++
		return m, tea.Batch(m.fetchSessionsCmd(m.filter), m.spinner.Tick)
	case stateAdminNewSession:
		m.state = stateAdmin
		m.notice = ""
	case stateError:
		m.state = m.lastState
		m.err = nil
	case stateListSessions:
		if m.sessionList.FilterValue() != "" {
			m.sessionList.ResetFilter()
		}
	}
	return m, nil
}

func (m appModel) goBackFromReceipt() (tea.Model, tea.Cmd) {
	model, cmd, _ := m.returnToSessions()
	return model, cmd
}

func (m *appModel) refocusLogin() {
	for i := range m.loginInputs {
		if i == m.loginFocus {
			m.loginInputs[i].Focus()
		} else {
			m.loginInputs[i].Blur()
		}
	}
}

func (m *appModel) refocusRegister() {
	for i := range m.regInputs {
		if i == m.regFocus {
			m.regInputs[i].Focus()
		} else {
			m.regInputs[i].Blur()
		}
	}
}

func (m *appModel) refocusBooking() {
	for i := range m.bookInputs {
		if i == m.bookFocus {
			m.bookInputs[i].Focus()
		} else {
			m.bookInputs[i].Blur()
		}
	}
}

func (m appModel) isLoadingState() bool {
	return m.state == stateLoadingSessions ||
		m.state == stateLoadingSeats ||
		m.state == stateSubmitting ||
		m.submitting || m.paying || m.movieBusy || m.chatWaiting || m.profileBusy
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.sessionList.SetSize(m.width, h)
	m.cinemaList.SetSize(m.width, h)
	m.dateList.SetSize(m.width, h)
	m.orderList.SetSize(m.width, h)
}

func validateLogin(email string, password string) error {
	if !emailLooksValid(email) {
		return errors.New("invalid email format")
	}
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

func validateRegistration(email string, username string, password string) error {
	if !emailLooksValid(email) {
		return errors.New("invalid email format")
	}
	if len(username) < 3 {
		return errors.New("username must be at least 3 characters")
	}
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

func emailLooksValid(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(email, " \t")
}

func newLoginInputs() []textinput.Model {
	email := newTextInput("email", 64)
	email.Focus()
	password := newTextInput("password", 64)
	password.EchoMode = textinput.EchoPassword
	submit := newTextInput("", 0)
	return []textinput.Model{email, password, submit}
}

func newRegisterInputs() []textinput.Model {
	email := newTextInput("email", 64)
	email.Focus()
	username := newTextInput("username", 32)
	password := newTextInput("password (8+ characters)", 64)
	password.EchoMode = textinput.EchoPassword
	submit := newTextInput("", 0)
	return []textinput.Model{email, username, password, submit}
}

func newBookingInputs() []textinput.Model {
	email := newTextInput("email", 64)
	age := newTextInput("age", 3)
	return []textinput.Model{email, age}
}

func newTextInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if limit > 0 {
		ti.CharLimit = limit
	}
	return ti
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateLoadingSessions:
		return stateSelectDate
	case stateLoadingSeats, stateSeatMap:
		return stateListSessions
	case stateSubmitting:
		return stateBookingForm
	case stateError:
		return stateListSessions
	default:
		return state
	}
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

func errWithOptionsCmd(err error, returnState appState) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err, returnState: returnState, returnStateSet: true}
	}
}

// userFacing returns the server's own message for explicit refusals, empty
// for transport and internal failures that deserve the error screen.
func userFacing(err error) string {
	var apiErr *service.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return ""
}

func userFacingOr(err error, fallback string) string {
	if msg := userFacing(err); msg != "" {
		return msg
	}
	if err != nil {
		return err.Error()
	}
	return fallback
}

func openURLCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := openURL(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func openURL(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return fmt.Errorf("unsupported OS for opening browser: %s", runtime.GOOS)
	}
}

func (m appModel) loginCmd(email string, password string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		auth, err := m.client.Login(ctx, email, password)
		if err != nil {
			return authMsg{err: err}
		}
		claims, err := model.ParseTokenClaims(auth.Token)
		if err != nil {
			return authMsg{err: fmt.Errorf("unusable token: %w", err)}
		}
		if claims.Role == "" && auth.Role != "" {
			claims.Role = auth.Role
		}
		return authMsg{auth: auth, claims: claims}
	}
}

func (m appModel) registerCmd(email string, username string, password string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		err := m.client.Register(ctx, email, username, password)
		return registerMsg{email: email, err: err}
	}
}

func (m appModel) fetchSessionsCmd(filter model.SessionFilter) tea.Cmd {
	seq := m.fetchSeq
	return func() tea.Msg {
		if filter.Cinema == "" && filter.MaxPrice == 0 && !filter.OnlyWithSeats {
			if cached, fresh, err := store.LoadSessionCache(filter.Date); err == nil && fresh && len(cached) > 0 {
				return sessionsMsg{seq: seq, sessions: cached}
			}
		}
		ctx := context.Background()
		sessions, err := m.client.Sessions(ctx, filter)
		if err != nil {
			return sessionsMsg{seq: seq, err: err}
		}
		if filter.Cinema == "" && filter.MaxPrice == 0 && !filter.OnlyWithSeats && len(sessions) > 0 {
			_ = store.SaveSessionCache(filter.Date, sessions)
		}
		return sessionsMsg{seq: seq, sessions: sessions}
	}
}

// refreshSeatsCmd refetches availability right before the seat map renders,
// so a stale list from the browser page does not color the grid.
func (m appModel) refreshSeatsCmd(seq int, session model.Session) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		fresh, found, err := m.client.Session(ctx, m.filter.Date, session.ID)
		if err != nil {
			if service.IsNotFound(err) {
				return seatRefreshMsg{seq: seq, found: false}
			}
			return seatRefreshMsg{seq: seq, err: err}
		}
		return seatRefreshMsg{seq: seq, session: fresh, found: found}
	}
}

func (m appModel) submitBookingCmd(req model.BookingRequest) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		order, err := m.submitter.Submit(ctx, req)
		return bookMsg{order: order, err: err}
	}
}

func (m appModel) initPaymentCmd(orderID int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := m.client.InitPayment(ctx, orderID); err != nil {
			return payMsg{err: err}
		}
		return payMsg{url: m.client.PaymentPageURL(orderID)}
	}
}

func (m appModel) lookupMovieCmd(query string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if id, err := strconv.Atoi(query); err == nil && id > 0 {
			movie, err := m.client.MovieByID(ctx, id)
			return movieMsg{movie: movie, err: err}
		}
		movie, err := m.client.MovieByTitle(ctx, query)
		return movieMsg{movie: movie, err: err}
	}
}

func (m appModel) sendChatCmd(text string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		reply, err := m.client.Chat(ctx, text)
		return chatReplyMsg{reply: reply, err: err}
	}
}

func (m appModel) fetchProfileCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		profile, err := m.client.Profile(ctx)
		return profileMsg{profile: profile, err: err}
	}
}

func (m appModel) fetchOrdersCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		orders, err := m.client.Orders(ctx)
		return ordersMsg{orders: orders, err: err}
	}
}

func (m appModel) deleteSessionCmd(id int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		err := m.client.DeleteSession(ctx, id)
		return sessionDeletedMsg{id: id, err: err}
	}
}
