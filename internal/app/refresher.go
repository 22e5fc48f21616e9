package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/asdclub/club-console/internal/dashboard"
	"github.com/asdclub/club-console/internal/jobs"
)

// StartAgendaRefresh keeps the activities board warm: on each tick it
// re-fetches the event source for a rolling window around today, with the
// board's saved filters applied.
func StartAgendaRefresh(ctx context.Context, runner *jobs.Runner, board *dashboard.Board, every time.Duration, log *zap.SugaredLogger) {
	refresh := func(ctx context.Context) error {
		from := time.Now().AddDate(0, -1, 0)
		to := time.Now().AddDate(0, 2, 0)
		if err := board.RefetchEvents(ctx, from, to); err != nil {
			return err
		}
		log.Infow("agenda refreshed", "events", len(board.Events()))
		return nil
	}
	if err := refresh(ctx); err != nil {
		log.Warnw("initial agenda refresh failed", "err", err)
	}
	runner.Every(every, "agenda_refresh", refresh)
}
