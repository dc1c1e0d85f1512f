package commands

import (
	"context"
	"log/slog"

	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"
)

// PurchaseShipmentsCommandHandler checks out reserved shipments from the
// carrier cart. It is one half of the payment saga and is independently
// invocable so an operator can re-run a failed purchase without repeating
// label generation.
//
// Shipments whose persisted step already reached Purchased are excluded from
// the carrier call, so a replayed payment webhook cannot debit the carrier
// wallet twice for the same shipment.
type PurchaseShipmentsCommandHandler struct {
	uowFactory ShipmentUoWFactory
	carrier    ports.CarrierClient
	logger     *slog.Logger
}

// NewPurchaseShipmentsCommandHandler creates a handler for shipment purchase.
func NewPurchaseShipmentsCommandHandler(
	uowFactory ShipmentUoWFactory,
	carrier ports.CarrierClient,
) PurchaseShipmentsCommandHandler {
	return PurchaseShipmentsCommandHandler{
		uowFactory: uowFactory,
		carrier:    carrier,
		logger:     slog.Default().With("component", "purchase_shipments"),
	}
}

// Handle purchases the orders' unpurchased shipments and marks each returned
// carrier order as paid. A carrier failure leaves all rows at their current
// checkpoint; re-invoking the handler resumes from there.
func (h *PurchaseShipmentsCommandHandler) Handle(ctx context.Context, cmd PurchaseShipmentsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	carrierOrderIDs, err := h.pendingCarrierOrderIDs(ctx, cmd)
	if err != nil {
		return err
	}

	if len(carrierOrderIDs) == 0 {
		h.logger.InfoContext(ctx, "no unpurchased shipments, nothing to do")
		return nil
	}

	result, err := h.carrier.Purchase(ctx, carrierOrderIDs)
	if err != nil {
		return err
	}

	return h.markPaid(ctx, result.OrderIDs)
}

// pendingCarrierOrderIDs collects the carrier order ids of the orders'
// shipments that have not been purchased yet.
func (h *PurchaseShipmentsCommandHandler) pendingCarrierOrderIDs(
	ctx context.Context,
	cmd PurchaseShipmentsCommand,
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
	for _, orderID := range cmd.OrderIDs() {
		shipments, err := shipmentRepo.GetByOrderID(ctx, orderID)
		if err != nil {
			return nil, err
		}

		for _, s := range shipments {
			if s.Step() >= shipment.StepPurchased {
				h.logger.InfoContext(ctx, "shipment already purchased, skipping",
					"carrierOrderId", s.CarrierOrderID())
				continue
			}

			carrierOrderIDs = append(carrierOrderIDs, s.CarrierOrderID())
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return carrierOrderIDs, nil
}

func (h *PurchaseShipmentsCommandHandler) markPaid(ctx context.Context, carrierOrderIDs []string) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	for _, carrierOrderID := range carrierOrderIDs {
		aggregate, err := shipmentRepo.GetByCarrierOrderID(ctx, carrierOrderID)
		if err != nil {
			return err
		}

		if err = aggregate.MarkPaid(); err != nil {
			return err
		}

		if err = shipmentRepo.Upsert(ctx, aggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
