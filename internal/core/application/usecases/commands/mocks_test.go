package commands_test

import (
	"context"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/freight"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Upsert(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) GetByCarrierOrderID(
	ctx context.Context, carrierOrderID string,
) (*shipment.Shipment, error) {
	args := m.Called(ctx, carrierOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByOrderID(
	ctx context.Context, orderID kernel.UUID,
) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetAwaitingTracking(
	ctx context.Context, limit int,
) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

type MockCarrierClient struct{ mock.Mock }

func (m *MockCarrierClient) CalculateRates(
	ctx context.Context, fromPostalCode, toPostalCode string, volume freight.Volume,
) ([]ports.RateOption, error) {
	args := m.Called(ctx, fromPostalCode, toPostalCode, volume)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.RateOption), args.Error(1)
}

func (m *MockCarrierClient) ReserveCart(ctx context.Context, req ports.ReserveCartRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockCarrierClient) AttachProducts(
	ctx context.Context, carrierOrderID string, products []ports.CartProduct,
) error {
	args := m.Called(ctx, carrierOrderID, products)
	return args.Error(0)
}

func (m *MockCarrierClient) Purchase(
	ctx context.Context, carrierOrderIDs []string,
) (ports.PurchaseResult, error) {
	args := m.Called(ctx, carrierOrderIDs)
	return args.Get(0).(ports.PurchaseResult), args.Error(1)
}

func (m *MockCarrierClient) GenerateLabels(
	ctx context.Context, carrierOrderIDs []string,
) ([]ports.LabelResult, error) {
	args := m.Called(ctx, carrierOrderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.LabelResult), args.Error(1)
}

func (m *MockCarrierClient) Track(
	ctx context.Context, carrierOrderIDs []string,
) ([]ports.TrackingResult, error) {
	args := m.Called(ctx, carrierOrderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.TrackingResult), args.Error(1)
}

type MockProductCatalog struct{ mock.Mock }

func (m *MockProductCatalog) GetByIDs(ctx context.Context, ids []string) (map[string]ports.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]ports.Product), args.Error(1)
}

type MockAddressBook struct{ mock.Mock }

func (m *MockAddressBook) DefaultAddress(
	ctx context.Context, ownerID kernel.UUID,
) (ports.StoredAddress, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(ports.StoredAddress), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}
