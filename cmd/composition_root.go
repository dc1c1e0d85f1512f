package cmd

import (
	"log/slog"
	"net/http"
	"time"

	"freight/internal/adapters/out/carrier"
	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/addressrepo"
	"freight/internal/adapters/out/postgres/productrepo"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/freight"
	"freight/internal/core/domain/services"
	"freight/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use-case handlers.
type CompositionRoot struct {
	config        Config
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	carrierClient *carrier.Client
	origin        freight.Address
}

// NewCompositionRoot builds the shared adapters. Fails when the configured
// store origin address is not a valid reservation origin.
func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	origin, err := freight.NewAddress(
		config.OriginPostalCode,
		config.OriginStreet,
		config.OriginNumber,
		config.OriginDistrict,
		config.OriginCity,
		config.OriginState,
	)
	if err != nil {
		return CompositionRoot{}, err
	}

	carrierClient := carrier.NewClient(
		config.CarrierBaseURL,
		config.CarrierClientID,
		config.CarrierClientSecret,
		&http.Client{Timeout: 30 * time.Second},
	)

	return CompositionRoot{
		config:        config,
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		carrierClient: carrierClient,
		origin:        origin,
	}, nil
}

func (c *CompositionRoot) uowFactoryFor() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

// CreateQuoteShippingQueryHandler wires the storefront quote flow.
func (c *CompositionRoot) CreateQuoteShippingQueryHandler() queries.QuoteShippingQueryHandler {
	return queries.NewQuoteShippingQueryHandler(
		c.carrierClient,
		services.NewVolumeCalculator(productrepo.NewGormProductCatalog(c.gormDB)),
		services.NewQuoteSigner([]byte(c.config.QuoteSecret)),
		c.config.OriginPostalCode,
		c.config.FreeShippingThresholdCents,
	)
}

// CreateGetOrderShipmentsQueryHandler wires the shipment read model.
func (c *CompositionRoot) CreateGetOrderShipmentsQueryHandler() queries.GetOrderShipmentsQueryHandler {
	return queries.NewGetOrderShipmentsQueryHandler(c.gormDB)
}

// CreateReserveCartCommandHandler wires the cart reservation flow.
func (c *CompositionRoot) CreateReserveCartCommandHandler() commands.ReserveCartCommandHandler {
	return commands.NewReserveCartCommandHandler(
		c.uowFactoryFor(),
		c.carrierClient,
		productrepo.NewGormProductCatalog(c.gormDB),
		services.NewAddressResolver(addressrepo.NewGormAddressBook(c.gormDB)),
		services.NewVolumeCalculator(productrepo.NewGormProductCatalog(c.gormDB)),
		c.origin,
	)
}

// CreatePurchaseShipmentsCommandHandler wires the purchase saga step.
func (c *CompositionRoot) CreatePurchaseShipmentsCommandHandler() commands.PurchaseShipmentsCommandHandler {
	return commands.NewPurchaseShipmentsCommandHandler(c.shipmentUoWFactory(), c.carrierClient)
}

// CreateGenerateLabelsCommandHandler wires the label generation saga step.
func (c *CompositionRoot) CreateGenerateLabelsCommandHandler() commands.GenerateLabelsCommandHandler {
	return commands.NewGenerateLabelsCommandHandler(c.shipmentUoWFactory(), c.carrierClient)
}

// CreateSyncTrackingCommandHandler wires the tracking reconciliation step.
func (c *CompositionRoot) CreateSyncTrackingCommandHandler() commands.SyncTrackingCommandHandler {
	return commands.NewSyncTrackingCommandHandler(c.shipmentUoWFactory(), c.carrierClient)
}

// CreateConfirmPaymentCommandHandler wires the payment saga over its three
// step handlers.
func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	purchaseHandler := c.CreatePurchaseShipmentsCommandHandler()
	labelsHandler := c.CreateGenerateLabelsCommandHandler()
	syncHandler := c.CreateSyncTrackingCommandHandler()

	return commands.NewConfirmPaymentCommandHandler(
		c.uowFactoryFor(),
		&purchaseHandler,
		&labelsHandler,
		&syncHandler,
	)
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	syncHandler := c.CreateSyncTrackingCommandHandler()
	return jobs.NewJobManager(&syncHandler, c.shipmentUoWFactory(), slog.Default())
}

// FuncUoWFactory adapts a closure to the commands.UoWFactory interface.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// FuncShipmentUoWFactory adapts a closure to the commands.ShipmentUoWFactory
// interface.
type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}
