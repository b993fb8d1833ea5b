package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"

	"cinemago-cli/booking"
	"cinemago-cli/model"
)

type sessionItem struct {
	session model.Session
}

func (s sessionItem) Title() string {
	return fmt.Sprintf("%s • %s", formatStartTime(s.session.StartTime), s.session.MovieTitle)
}

func (s sessionItem) Description() string {
	seats := fmt.Sprintf("%d seats free", len(s.session.AvailableSeats))
	if len(s.session.AvailableSeats) == 0 {
		seats = "sold out"
	}
	hall := strings.TrimSpace(s.session.Hall)
	if hall == "" {
		hall = "Hall"
	}
	return fmt.Sprintf("%s • %s • %s • %s", s.session.CinemaName, hall, booking.FormatPrice(s.session.BasePrice), seats)
}

func (s sessionItem) FilterValue() string {
	return strings.ToLower(s.session.MovieTitle + " " + s.session.CinemaName)
}

type cinemaItem struct {
	name string
}

func (c cinemaItem) Title() string {
	if c.name == "" {
		return "All cinemas"
	}
	return c.name
}

func (c cinemaItem) Description() string {
	if c.name == "" {
		return "Sessions from every cinema"
	}
	return "Only this cinema"
}

func (c cinemaItem) FilterValue() string {
	return strings.ToLower(c.name)
}

type dateItem struct {
	date time.Time
}

func (d dateItem) Title() string {
	return d.date.Format("Mon, 02 Jan 2006")
}

func (d dateItem) Description() string {
	today := truncateDate(time.Now())
	switch {
	case d.date.Equal(today):
		return "Today"
	case d.date.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return d.date.Format("2006-01-02")
	}
}

func (d dateItem) FilterValue() string {
	return d.date.Format(time.DateOnly)
}

type orderItem struct {
	order model.Order
}

func (o orderItem) Title() string {
	return fmt.Sprintf("#%d • %s", o.order.ID, o.order.MovieTitle)
}

func (o orderItem) Description() string {
	desc := fmt.Sprintf("%s • %s", o.order.CustomerEmail, booking.FormatPrice(o.order.FinalPrice))
	if o.order.PromoCode != "" {
		desc += " • promo " + o.order.PromoCode
	}
	if o.order.BonusesEarned > 0 {
		desc += fmt.Sprintf(" • +%d bonus", o.order.BonusesEarned)
	}
	return desc
}

func (o orderItem) FilterValue() string {
	return strings.ToLower(o.order.CustomerEmail + " " + o.order.MovieTitle)
}

func buildSessionItems(sessions []model.Session) []list.Item {
	items := make([]list.Item, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, sessionItem{session: s})
	}
	return items
}

func buildCinemaItems() []list.Item {
	items := make([]list.Item, 0, len(model.Cinemas)+1)
	items = append(items, cinemaItem{})
	for _, name := range model.Cinemas {
		items = append(items, cinemaItem{name: name})
	}
	return items
}

func buildDateItems(base time.Time) []list.Item {
	start := truncateDate(base)
	items := make([]list.Item, 0, 7)
	for i := 0; i < 7; i++ {
		items = append(items, dateItem{date: start.AddDate(0, 0, i)})
	}
	return items
}

func buildOrderItems(orders []model.Order) []list.Item {
	items := make([]list.Item, 0, len(orders))
	for _, o := range orders {
		items = append(items, orderItem{order: o})
	}
	return items
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
