package commands

import (
	"context"
	"errors"
	"log/slog"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// SyncTrackingCommandHandler reconciles tracking data for a batch of
// shipments: one bulk carrier lookup, then a sparse merge of whatever fields
// came back into each matching shipment row.
//
// Missing or partial tracking data is expected while shipments are in transit
// to the courier, so unknown ids and absent fields are skipped, not errors.
type SyncTrackingCommandHandler struct {
	uowFactory ShipmentUoWFactory
	carrier    ports.CarrierClient
	logger     *slog.Logger
}

// NewSyncTrackingCommandHandler creates a handler for tracking reconciliation.
func NewSyncTrackingCommandHandler(
	uowFactory ShipmentUoWFactory,
	carrier ports.CarrierClient,
) SyncTrackingCommandHandler {
	return SyncTrackingCommandHandler{
		uowFactory: uowFactory,
		carrier:    carrier,
		logger:     slog.Default().With("component", "sync_tracking"),
	}
}

// Handle fetches tracking for the addressed shipments in one batch call and
// sparsely merges the results. Shipments that gain a tracking code advance to
// tracking_available once their label exists.
func (h *SyncTrackingCommandHandler) Handle(ctx context.Context, cmd SyncTrackingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	carrierOrderIDs := cmd.CarrierOrderIDs()
	if len(carrierOrderIDs) == 0 {
		resolved, err := h.carrierOrderIDsOf(ctx, cmd.OrderIDs())
		if err != nil {
			return err
		}
		carrierOrderIDs = resolved
	}

	if len(carrierOrderIDs) == 0 {
		h.logger.InfoContext(ctx, "no shipments to reconcile")
		return nil
	}

	results, err := h.carrier.Track(ctx, carrierOrderIDs)
	if err != nil {
		return err
	}

	return h.merge(ctx, results)
}

func (h *SyncTrackingCommandHandler) carrierOrderIDsOf(
	ctx context.Context,
	orderIDs []kernel.UUID,
) ([]string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	var carrierOrderIDs []string
	for _, orderID := range orderIDs {
		shipments, err := shipmentRepo.GetByOrderID(ctx, orderID)
		if err != nil {
			return nil, err
		}

		for _, s := range shipments {
			carrierOrderIDs = append(carrierOrderIDs, s.CarrierOrderID())
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return carrierOrderIDs, nil
}

func (h *SyncTrackingCommandHandler) merge(ctx context.Context, results []ports.TrackingResult) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	for _, result := range results {
		aggregate, err := shipmentRepo.GetByCarrierOrderID(ctx, result.CarrierOrderID)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				h.logger.WarnContext(ctx, "tracking for unknown shipment, skipping",
					"carrierOrderId", result.CarrierOrderID)
				continue
			}
			return err
		}

		aggregate.MergeTracking(result.Tracking)

		if err = shipmentRepo.Upsert(ctx, aggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
