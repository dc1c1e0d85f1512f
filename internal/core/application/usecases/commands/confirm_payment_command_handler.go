package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
)

// ConfirmPaymentCommandHandler is the payment-triggered saga: mark the order
// paid, purchase its reserved shipments, generate labels, and opportunistically
// reconcile tracking. Purchase and label generation are in-process calls to
// their own handlers, so each half can also be re-run in isolation by an
// operator.
//
// The saga has no rollback: every intermediate checkpoint (created, paid,
// label_generated) is a legitimate resumable state, and replayed webhook
// deliveries are absorbed by the idempotent status transitions, the persisted
// per-shipment step guard and the upsert-keyed persistence.
type ConfirmPaymentCommandHandler struct {
	uowFactory      UoWFactory
	purchaseHandler *PurchaseShipmentsCommandHandler
	labelsHandler   *GenerateLabelsCommandHandler
	syncHandler     *SyncTrackingCommandHandler
	logger          *slog.Logger
}

// NewConfirmPaymentCommandHandler creates the saga handler over the three
// independently invocable step handlers.
func NewConfirmPaymentCommandHandler(
	uowFactory UoWFactory,
	purchaseHandler *PurchaseShipmentsCommandHandler,
	labelsHandler *GenerateLabelsCommandHandler,
	syncHandler *SyncTrackingCommandHandler,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory:      uowFactory,
		purchaseHandler: purchaseHandler,
		labelsHandler:   labelsHandler,
		syncHandler:     syncHandler,
		logger:          slog.Default().With("component", "confirm_payment"),
	}
}

// Handle runs the payment saga for one confirmed order. Events without an
// owner id are skipped: a shipment needs a delivery target tied to an account,
// and guest payments are fulfilled through a separate manual flow.
func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.OwnerID() == "" {
		h.logger.InfoContext(ctx, "payment event without owner id, skipping fulfillment",
			"orderId", cmd.OrderID().String())
		return nil
	}

	if err := h.confirmOrder(ctx, cmd); err != nil {
		if errors.Is(err, order.ErrPaymentWithoutReservation) {
			h.logger.ErrorContext(ctx, "payment confirmed before reservation",
				"orderId", cmd.OrderID().String())
		}
		return err
	}

	purchaseCmd, err := NewPurchaseShipmentsCommand([]kernel.UUID{cmd.OrderID()})
	if err != nil {
		return err
	}

	if err = h.purchaseHandler.Handle(ctx, purchaseCmd); err != nil {
		return err
	}

	h.syncTracking(ctx, cmd)

	labelsCmd, err := NewGenerateLabelsCommand([]kernel.UUID{cmd.OrderID()})
	if err != nil {
		return err
	}

	return h.labelsHandler.Handle(ctx, labelsCmd)
}

// confirmOrder idempotently moves the order to payment_confirmed. An order
// without a cart reference fails with order.ErrPaymentWithoutReservation.
func (h *ConfirmPaymentCommandHandler) confirmOrder(ctx context.Context, cmd ConfirmPaymentCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.ConfirmPayment(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// syncTracking opportunistically reconciles tracking for the order's
// shipments. Tracking rarely exists this early, so failures are logged and
// swallowed; the cron job converges later.
func (h *ConfirmPaymentCommandHandler) syncTracking(ctx context.Context, cmd ConfirmPaymentCommand) {
	syncCmd, err := NewSyncTrackingCommandForOrders([]kernel.UUID{cmd.OrderID()})
	if err != nil {
		h.logger.WarnContext(ctx, "tracking sync skipped", "error", err)
		return
	}

	if err = h.syncHandler.Handle(ctx, syncCmd); err != nil {
		h.logger.WarnContext(ctx, "tracking sync failed, will be retried by the job",
			"orderId", cmd.OrderID().String(),
			"error", fmt.Errorf("%w: %v", errs.ErrPartialFailure, err))
	}
}
