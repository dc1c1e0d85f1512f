package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGenerateLabelsCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	purchased := mustShipment(t, orderID, "A1")
	require.NoError(t, purchased.MarkPaid())

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("ShipmentRepository").Return(repo)
	repo.On("GetByOrderID", ctx, orderID).Return([]*shipment.Shipment{purchased}, nil).Once()
	repo.On("GetByCarrierOrderID", ctx, "A1").Return(purchased, nil).Once()
	repo.On("Upsert", ctx, purchased).Return(nil).Once()

	carrier := new(MockCarrierClient)
	carrier.On("GenerateLabels", ctx, []string{"A1"}).Return([]ports.LabelResult{
		{CarrierOrderID: "A1", LabelURL: "https://labels.example/a1.pdf", Status: "generated"},
	}, nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow)

	cmd, err := commands.NewGenerateLabelsCommand([]kernel.UUID{orderID})
	require.NoError(t, err)

	h := commands.NewGenerateLabelsCommandHandler(factory, carrier)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, shipment.LabelGenerated, purchased.Status())
	require.NotNil(t, purchased.LabelURL())
	assert.Equal(t, "https://labels.example/a1.pdf", *purchased.LabelURL())
}

func TestGenerateLabelsCommandHandler_Handle_SkipsUnpurchased(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	reserved := mustShipment(t, orderID, "A1")

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("ShipmentRepository").Return(repo)
	repo.On("GetByOrderID", ctx, orderID).Return([]*shipment.Shipment{reserved}, nil).Once()

	carrier := new(MockCarrierClient)
	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow)

	cmd, err := commands.NewGenerateLabelsCommand([]kernel.UUID{orderID})
	require.NoError(t, err)

	h := commands.NewGenerateLabelsCommandHandler(factory, carrier)
	require.NoError(t, h.Handle(ctx, cmd))

	carrier.AssertNotCalled(t, "GenerateLabels", mock.Anything, mock.Anything)
	assert.Equal(t, shipment.Created, reserved.Status())
}

func TestGenerateLabelsCommandHandler_Handle_MissingLabelURLIsSkipped(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	purchased := mustShipment(t, orderID, "A1")
	require.NoError(t, purchased.MarkPaid())

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("ShipmentRepository").Return(repo)
	repo.On("GetByOrderID", ctx, orderID).Return([]*shipment.Shipment{purchased}, nil).Once()

	carrier := new(MockCarrierClient)
	carrier.On("GenerateLabels", ctx, []string{"A1"}).Return([]ports.LabelResult{
		{CarrierOrderID: "A1", Status: "processing"},
	}, nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow)

	cmd, err := commands.NewGenerateLabelsCommand([]kernel.UUID{orderID})
	require.NoError(t, err)

	h := commands.NewGenerateLabelsCommandHandler(factory, carrier)
	require.NoError(t, h.Handle(ctx, cmd))

	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	assert.Equal(t, shipment.Paid, purchased.Status())
}
