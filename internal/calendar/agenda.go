package calendar

import (
	"context"

	"go.uber.org/zap"

	"github.com/asdclub/club-console/internal/api"
	"github.com/asdclub/club-console/internal/models"
)

// Agenda is the trainings calendar page: the responsive view state plus the
// loaded event source. Event clicks resolve against the cached events, no
// extra fetch.
type Agenda struct {
	client *api.Client
	log    *zap.SugaredLogger
	view   *View
	events []models.TrainingEvent
}

func NewAgenda(client *api.Client, width int, log *zap.SugaredLogger) *Agenda {
	return &Agenda{client: client, log: log, view: NewView(width)}
}

func (a *Agenda) View() *View { return a.view }

func (a *Agenda) Events() []models.TrainingEvent { return a.events }

// Load replaces the event source wholesale from the server.
func (a *Agenda) Load(ctx context.Context) error {
	events, err := a.client.TrainingEvents(ctx)
	if err != nil {
		a.log.Warnw("load trainings failed", "err", err)
		return err
	}
	a.events = events
	return nil
}

// CardFor builds the detail card for a clicked event. The second return is
// false when the id is not in the loaded source.
func (a *Agenda) CardFor(id int64) (EventCard, bool) {
	for _, ev := range a.events {
		if ev.ID == id {
			return CardFromEvent(ev), true
		}
	}
	return EventCard{}, false
}

// PatchEvent updates the cached category fields of one event in place, the
// counterpart of the modal's category save.
func (a *Agenda) PatchEvent(id int64, catList []string, summary string) {
	for i := range a.events {
		if a.events[i].ID == id {
			a.events[i].CatList = catList
			a.events[i].Categories = summary
			return
		}
	}
}
