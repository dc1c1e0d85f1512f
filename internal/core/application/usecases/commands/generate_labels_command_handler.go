package commands

import (
	"context"
	"log/slog"

	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"
)

// GenerateLabelsCommandHandler requests label generation for purchased
// shipments and records the resulting label URLs. Like the purchase step it is
// independently invocable, so a failed label run can be repeated without
// purchasing again.
type GenerateLabelsCommandHandler struct {
	uowFactory ShipmentUoWFactory
	carrier    ports.CarrierClient
	logger     *slog.Logger
}

// NewGenerateLabelsCommandHandler creates a handler for label generation.
func NewGenerateLabelsCommandHandler(
	uowFactory ShipmentUoWFactory,
	carrier ports.CarrierClient,
) GenerateLabelsCommandHandler {
	return GenerateLabelsCommandHandler{
		uowFactory: uowFactory,
		carrier:    carrier,
		logger:     slog.Default().With("component", "generate_labels"),
	}
}

// Handle generates labels for the orders' purchased shipments. Shipments that
// were never purchased are skipped; shipments returned by the carrier advance
// to label_generated with their label URL attached.
func (h *GenerateLabelsCommandHandler) Handle(ctx context.Context, cmd GenerateLabelsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	carrierOrderIDs, err := h.purchasedCarrierOrderIDs(ctx, cmd)
	if err != nil {
		return err
	}

	if len(carrierOrderIDs) == 0 {
		h.logger.InfoContext(ctx, "no purchased shipments, nothing to label")
		return nil
	}

	results, err := h.carrier.GenerateLabels(ctx, carrierOrderIDs)
	if err != nil {
		return err
	}

	return h.attachLabels(ctx, results)
}

func (h *GenerateLabelsCommandHandler) purchasedCarrierOrderIDs(
	ctx context.Context,
	cmd GenerateLabelsCommand,
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
			if s.Step() < shipment.StepPurchased {
				h.logger.WarnContext(ctx, "shipment not purchased yet, skipping label",
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

func (h *GenerateLabelsCommandHandler) attachLabels(ctx context.Context, results []ports.LabelResult) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	for _, result := range results {
		if result.LabelURL == "" {
			h.logger.WarnContext(ctx, "carrier returned no label url, skipping",
				"carrierOrderId", result.CarrierOrderID, "status", result.Status)
			continue
		}

		aggregate, err := shipmentRepo.GetByCarrierOrderID(ctx, result.CarrierOrderID)
		if err != nil {
			return err
		}

		if err = aggregate.AttachLabel(result.LabelURL); err != nil {
			return err
		}

		if err = shipmentRepo.Upsert(ctx, aggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
