package calendar

import (
	"time"

	"github.com/asdclub/club-console/internal/itdate"
	"github.com/asdclub/club-console/internal/models"
)

// EventCard is the plain data object assembled on event click and handed to
// the event detail modal. Base fields come from the event payload already in
// memory; no network call happens here.
type EventCard struct {
	ID         int64
	Title      string
	Date       string // long it-IT date
	Time       string
	Categories string
	CatList    []string
	Coaches    string
	Recurrence string
	Start      time.Time
	Type       string
	Status     models.AttendanceStatus
}

const TypeTraining = "allenamento"

func CardFromEvent(ev models.TrainingEvent) EventCard {
	card := EventCard{
		ID:         ev.ID,
		Title:      ev.Title,
		Date:       itdate.FormatLong(ev.Start),
		Time:       ev.Orario,
		Categories: ev.Categories,
		CatList:    ev.CatList,
		Coaches:    ev.Coaches,
		Recurrence: ev.IsRecurrent,
		Start:      ev.Start,
		Type:       TypeTraining,
		Status:     ev.Status,
	}
	if card.Categories == "" {
		card.Categories = "Nessuna"
	}
	if card.Coaches == "" {
		card.Coaches = "Nessuno"
	}
	if card.Recurrence == "" {
		card.Recurrence = "No"
	}
	return card
}
