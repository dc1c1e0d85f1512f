package jobs

import (
	"context"
	"log/slog"

	"freight/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// trackingBatchLimit caps how many shipments one tick reconciles. The batch
// goes to the carrier as a single tracking lookup call.
const trackingBatchLimit = 100

// TrackingSyncJob periodically reconciles tracking data for shipments that
// were purchased or labeled but have no tracking code yet.
type TrackingSyncJob struct {
	handler    *commands.SyncTrackingCommandHandler
	uowFactory commands.ShipmentUoWFactory
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewTrackingSyncJob creates the tracking reconciliation job.
func NewTrackingSyncJob(
	handler *commands.SyncTrackingCommandHandler,
	uowFactory commands.ShipmentUoWFactory,
	logger *slog.Logger,
) *TrackingSyncJob {
	return &TrackingSyncJob{
		handler:    handler,
		uowFactory: uowFactory,
		cron:       cron.New(),
		logger:     logger.With("component", "tracking_sync_job"),
	}
}

// Start begins the tracking sync job to run every five minutes.
func (j *TrackingSyncJob) Start() error {
	_, err := j.cron.AddFunc("@every 5m", func() {
		ctx := context.Background()
		if err := j.runOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Tracking sync job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking sync job started (running every five minutes)")
	return nil
}

// Stop stops the tracking sync job.
func (j *TrackingSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Tracking sync job stopped")
}

// runOnce loads one batch of shipments awaiting tracking and reconciles them.
func (j *TrackingSyncJob) runOnce(ctx context.Context) error {
	carrierOrderIDs, err := j.awaitingCarrierOrderIDs(ctx)
	if err != nil {
		return err
	}

	if len(carrierOrderIDs) == 0 {
		return nil
	}

	cmd, err := commands.NewSyncTrackingCommand(carrierOrderIDs)
	if err != nil {
		return err
	}

	return j.handler.Handle(ctx, cmd)
}

func (j *TrackingSyncJob) awaitingCarrierOrderIDs(ctx context.Context) ([]string, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	awaiting, err := uow.ShipmentRepository().GetAwaitingTracking(ctx, trackingBatchLimit)
	if err != nil {
		return nil, err
	}

	carrierOrderIDs := make([]string, 0, len(awaiting))
	for _, s := range awaiting {
		carrierOrderIDs = append(carrierOrderIDs, s.CarrierOrderID())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return carrierOrderIDs, nil
}
