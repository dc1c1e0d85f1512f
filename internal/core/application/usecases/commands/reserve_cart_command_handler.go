package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"freight/internal/core/domain/model/freight"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// ReserveCartCommandHandler reserves a shipment entry with the carrier and
// persists the resulting carrier order id on the order and as a Shipment row.
//
// The reservation is safe to retry in full: failures before the carrier call
// leave no trace, and the final persistence step is an upsert keyed by the
// carrier order id, so repeating it cannot create duplicate rows.
type ReserveCartCommandHandler struct {
	uowFactory UoWFactory
	carrier    ports.CarrierClient
	catalog    ports.ProductCatalog
	resolver   services.AddressResolver
	calculator services.VolumeCalculator
	origin     freight.Address
	logger     *slog.Logger
}

// NewReserveCartCommandHandler creates a handler for cart reservation.
// The origin address is the fixed store-origin record from configuration.
func NewReserveCartCommandHandler(
	uowFactory UoWFactory,
	carrier ports.CarrierClient,
	catalog ports.ProductCatalog,
	resolver services.AddressResolver,
	calculator services.VolumeCalculator,
	origin freight.Address,
) ReserveCartCommandHandler {
	return ReserveCartCommandHandler{
		uowFactory: uowFactory,
		carrier:    carrier,
		catalog:    catalog,
		resolver:   resolver,
		calculator: calculator,
		origin:     origin,
		logger:     slog.Default().With("component", "reserve_cart"),
	}
}

// Handle reserves a carrier cart entry for the order and returns the carrier
// order id. Validation failures abort before any network call; a carrier
// failure aborts with no persistence changes; the item-metadata attachment is
// best-effort and never aborts the reservation.
func (h *ReserveCartCommandHandler) Handle(ctx context.Context, cmd ReserveCartCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	destination, err := h.resolveDestination(ctx, cmd)
	if err != nil {
		return "", err
	}

	if err = h.origin.Validate(); err != nil {
		return "", err
	}

	volume, _, err := h.calculator.Consolidate(ctx, cmd.Items(), services.ReservationFloors)
	if err != nil {
		return "", err
	}

	carrierOrderID, err := h.carrier.ReserveCart(ctx, ports.ReserveCartRequest{
		ServiceID: cmd.ServiceID(),
		From:      h.origin,
		To:        destination,
		Volume:    volume,
		Options:   cmd.Options(),
	})
	if err != nil {
		return "", err
	}

	h.attachProducts(ctx, carrierOrderID, cmd.Items())

	if err = h.persist(ctx, cmd.OrderID(), carrierOrderID); err != nil {
		return "", err
	}

	return carrierOrderID, nil
}

func (h *ReserveCartCommandHandler) resolveDestination(
	ctx context.Context,
	cmd ReserveCartCommand,
) (freight.Address, error) {
	if cmd.Destination() != nil {
		return h.resolver.ResolveStored(*cmd.Destination())
	}

	return h.resolver.Resolve(ctx, cmd.OwnerID())
}

// attachProducts adds item metadata to the reserved carrier order. Failures
// are logged and swallowed; the reservation stands without the metadata.
func (h *ReserveCartCommandHandler) attachProducts(
	ctx context.Context,
	carrierOrderID string,
	items []freight.CartItem,
) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID())
	}

	catalogProducts, err := h.catalog.GetByIDs(ctx, ids)
	if err != nil {
		h.logger.WarnContext(ctx, "skipping product attachment, catalog lookup failed",
			"carrierOrderId", carrierOrderID, "error", err)
		return
	}

	products := make([]ports.CartProduct, 0, len(items))
	for _, item := range items {
		product, ok := catalogProducts[item.ProductID()]
		if !ok {
			continue
		}

		products = append(products, ports.CartProduct{
			Name:      product.Name,
			Quantity:  item.Quantity(),
			UnitValue: product.Price,
		})
	}

	if err = h.carrier.AttachProducts(ctx, carrierOrderID, products); err != nil {
		h.logger.WarnContext(ctx, "product attachment failed, reservation kept",
			"carrierOrderId", carrierOrderID,
			"error", fmt.Errorf("%w: %v", errs.ErrPartialFailure, err))
	}
}

func (h *ReserveCartCommandHandler) persist(
	ctx context.Context,
	orderID kernel.UUID,
	carrierOrderID string,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if err = aggregate.AttachCartReference(carrierOrderID); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	newShipment, err := shipmentFor(ctx, uow.ShipmentRepository(), orderID, carrierOrderID)
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Upsert(ctx, newShipment); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// shipmentFor loads the existing shipment for a carrier order id or creates a
// fresh aggregate when the reservation is seen for the first time. Keeping the
// existing aggregate preserves its identity across retried reservations.
func shipmentFor(
	ctx context.Context,
	repo ports.ShipmentRepository,
	orderID kernel.UUID,
	carrierOrderID string,
) (*shipment.Shipment, error) {
	existing, err := repo.GetByCarrierOrderID(ctx, carrierOrderID)
	if err == nil {
		return existing, nil
	}

	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	return shipment.NewShipment(kernel.NewUUID(), orderID, carrierOrderID)
}
