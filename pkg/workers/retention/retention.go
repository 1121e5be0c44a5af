package retention

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/hooklinehq/hookline/pkg/models"
)

// Worker prunes old webhook delivery logs on a cron schedule. Deliveries are
// an append-only audit trail, so unbounded growth is handled here rather than
// in the write path.
type Worker struct {
	schedule string
	maxAge   time.Duration
	cron     *cron.Cron
}

func NewWorker(schedule string, maxAge time.Duration) *Worker {
	return &Worker{
		schedule: schedule,
		maxAge:   maxAge,
		cron:     cron.New(),
	}
}

func (w *Worker) Start(ctx context.Context) error {
	_, err := w.cron.AddFunc(w.schedule, w.prune)
	if err != nil {
		return err
	}

	w.cron.Start()

	<-ctx.Done()
	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
	return nil
}

func (w *Worker) prune() {
	deleted, err := models.PruneWebhookDeliveries(w.maxAge)
	if err != nil {
		log.Errorf("failed to prune webhook deliveries: %v", err)
		return
	}

	if deleted > 0 {
		log.Infof("pruned %d webhook deliveries older than %s", deleted, w.maxAge)
	}
}
