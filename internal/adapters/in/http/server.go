// Package http exposes the inbound HTTP surface: the storefront quote
// endpoint, the payment webhook that drives the fulfillment saga, and the
// admin operations for manually (re)running individual saga steps.
//
// Storefront responses carry generic error messages only; admin responses
// include structured debug context.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/freight"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

// maxWebhookBytes caps the webhook payload read. Stripe events are small.
const maxWebhookBytes = 64 << 10

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	quoteHandler          queries.QuoteShippingQueryHandler
	orderShipmentsHandler queries.GetOrderShipmentsQueryHandler

	reserveHandler        *commands.ReserveCartCommandHandler
	confirmPaymentHandler *commands.ConfirmPaymentCommandHandler
	purchaseHandler       *commands.PurchaseShipmentsCommandHandler
	labelsHandler         *commands.GenerateLabelsCommandHandler
	syncHandler           *commands.SyncTrackingCommandHandler

	webhookSecret string
	logger        *slog.Logger
}

// NewServer creates the HTTP server over the command and query handlers.
func NewServer(
	quoteHandler queries.QuoteShippingQueryHandler,
	orderShipmentsHandler queries.GetOrderShipmentsQueryHandler,
	reserveHandler *commands.ReserveCartCommandHandler,
	confirmPaymentHandler *commands.ConfirmPaymentCommandHandler,
	purchaseHandler *commands.PurchaseShipmentsCommandHandler,
	labelsHandler *commands.GenerateLabelsCommandHandler,
	syncHandler *commands.SyncTrackingCommandHandler,
	webhookSecret string,
) *Server {
	return &Server{
		quoteHandler:          quoteHandler,
		orderShipmentsHandler: orderShipmentsHandler,
		reserveHandler:        reserveHandler,
		confirmPaymentHandler: confirmPaymentHandler,
		purchaseHandler:       purchaseHandler,
		labelsHandler:         labelsHandler,
		syncHandler:           syncHandler,
		webhookSecret:         webhookSecret,
		logger:                slog.Default().With("component", "http"),
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.POST("/api/v1/quotes", s.QuoteShipping)
	e.POST("/api/v1/webhooks/payment", s.PaymentWebhook)

	e.POST("/api/v1/orders/:id/reserve", s.ReserveCart)
	e.GET("/api/v1/orders/:id/shipments", s.GetOrderShipments)
	e.POST("/api/v1/shipments/purchase", s.PurchaseShipments)
	e.POST("/api/v1/shipments/labels", s.GenerateLabels)
	e.POST("/api/v1/shipments/tracking", s.SyncTracking)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type cartItemBody struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func toCartItems(body []cartItemBody) ([]freight.CartItem, error) {
	items := make([]freight.CartItem, 0, len(body))
	for _, line := range body {
		item, err := freight.NewCartItem(line.ProductID, line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

type quoteRequest struct {
	OwnerID    string         `json:"ownerId"`
	PostalCode string         `json:"postalCode"`
	Items      []cartItemBody `json:"items"`
	ServiceID  *int64         `json:"serviceId"`
}

type quoteResponse struct {
	ShippingToken string `json:"shippingToken"`
	Name          string `json:"name"`
	PriceCents    int64  `json:"priceCents"`
}

// QuoteShipping handles POST /api/v1/quotes. Error bodies stay generic: the
// storefront shows them to customers and they must not leak carrier details.
func (s *Server) QuoteShipping(ctx echo.Context) error {
	var req quoteRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ownerID, err := kernel.UUIDFromString(req.OwnerID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: "Invalid quote request",
		})
	}

	items, err := toCartItems(req.Items)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: "Invalid quote request",
		})
	}

	query, err := queries.NewQuoteShippingQuery(ownerID, req.PostalCode, items, req.ServiceID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: "Invalid quote request",
		})
	}

	resp, err := s.quoteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.WarnContext(ctx.Request().Context(), "quote failed", "error", err)
		return ctx.JSON(quoteErrorStatus(err), errorBody{
			Code:    quoteErrorStatus(err),
			Message: "Shipping quote unavailable",
		})
	}

	return ctx.JSON(http.StatusOK, quoteResponse{
		ShippingToken: resp.ShippingToken,
		Name:          resp.Name,
		PriceCents:    resp.PriceCents,
	})
}

func quoteErrorStatus(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrExternalService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PaymentWebhook handles POST /api/v1/webhooks/payment. The payload must be
// signed by the payment provider; a bad signature is the only 400. Business
// skips (no owner id, unknown order, payment without reservation) return 200
// so the provider stops redelivering an event that will never succeed.
func (s *Server) PaymentWebhook(ctx echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxWebhookBytes))
	if err != nil {
		return ctx.NoContent(http.StatusBadRequest)
	}

	event, err := webhook.ConstructEvent(payload, ctx.Request().Header.Get("Stripe-Signature"), s.webhookSecret)
	if err != nil {
		s.logger.WarnContext(ctx.Request().Context(), "webhook signature rejected", "error", err)
		return ctx.NoContent(http.StatusBadRequest)
	}

	if event.Type != stripe.EventTypePaymentIntentSucceeded {
		return ctx.NoContent(http.StatusOK)
	}

	var intent stripe.PaymentIntent
	if err = json.Unmarshal(event.Data.Raw, &intent); err != nil {
		s.logger.WarnContext(ctx.Request().Context(), "webhook payload unreadable", "error", err)
		return ctx.NoContent(http.StatusOK)
	}

	orderID, err := kernel.UUIDFromString(intent.Metadata["order_id"])
	if err != nil {
		s.logger.WarnContext(ctx.Request().Context(), "payment event without usable order id",
			"paymentIntentId", intent.ID)
		return ctx.NoContent(http.StatusOK)
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID, intent.Metadata["owner_id"])
	if err != nil {
		return ctx.NoContent(http.StatusOK)
	}

	if err = s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, order.ErrPaymentWithoutReservation) || errors.Is(err, errs.ErrObjectNotFound) {
			s.logger.ErrorContext(ctx.Request().Context(), "payment event skipped",
				"orderId", orderID.String(), "error", err)
			return ctx.NoContent(http.StatusOK)
		}
		return ctx.NoContent(http.StatusInternalServerError)
	}

	return ctx.NoContent(http.StatusOK)
}

type destinationBody struct {
	PostalCode string `json:"postalCode"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
}

type reserveRequest struct {
	OwnerID     string           `json:"ownerId"`
	ServiceID   int64            `json:"serviceId"`
	Items       []cartItemBody   `json:"items"`
	Destination *destinationBody `json:"destination"`
	Options     struct {
		Receipt          bool     `json:"receipt"`
		OwnHand          bool     `json:"ownHand"`
		ReverseLogistics bool     `json:"reverseLogistics"`
		NonCommercial    bool     `json:"nonCommercial"`
		Tags             []string `json:"tags"`
	} `json:"options"`
}

// ReserveCart handles POST /api/v1/orders/:id/reserve, the admin trigger for
// a carrier cart reservation.
func (s *Server) ReserveCart(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}

	var req reserveRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ownerID, err := kernel.UUIDFromString(req.OwnerID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: "Invalid owner id: " + err.Error(),
		})
	}

	items, err := toCartItems(req.Items)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: "Invalid items: " + err.Error(),
		})
	}

	var destination *ports.StoredAddress
	if req.Destination != nil {
		destination = &ports.StoredAddress{
			PostalCode: req.Destination.PostalCode,
			Street:     req.Destination.Street,
			Number:     req.Destination.Number,
			District:   req.Destination.District,
			City:       req.Destination.City,
			State:      req.Destination.State,
		}
	}

	cmd, err := commands.NewReserveCartCommand(orderID, ownerID, req.ServiceID, items, destination,
		ports.CarrierOptions{
			Receipt:          req.Options.Receipt,
			OwnHand:          req.Options.OwnHand,
			ReverseLogistics: req.Options.ReverseLogistics,
			NonCommercial:    req.Options.NonCommercial,
			Tags:             req.Options.Tags,
		})
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: "Invalid reservation request: " + err.Error(),
		})
	}

	carrierOrderID, err := s.reserveHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.adminError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"ok":             true,
		"carrierOrderId": carrierOrderID,
	})
}

type orderIDsRequest struct {
	OrderIDs []string `json:"orderIds"`
}

func (r orderIDsRequest) toUUIDs() ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(r.OrderIDs))
	for _, raw := range r.OrderIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// PurchaseShipments handles POST /api/v1/shipments/purchase, the admin
// trigger for re-running the purchase step over reserved shipments.
func (s *Server) PurchaseShipments(ctx echo.Context) error {
	ids, ok := s.bindOrderIDs(ctx)
	if !ok {
		return nil
	}

	cmd, err := commands.NewPurchaseShipmentsCommand(ids)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: "Invalid purchase request: " + err.Error(),
		})
	}

	if err = s.purchaseHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.adminError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{"ok": true, "orderIds": orderIDStrings(ids)})
}

// GenerateLabels handles POST /api/v1/shipments/labels, the admin trigger for
// re-running label generation over purchased shipments.
func (s *Server) GenerateLabels(ctx echo.Context) error {
	ids, ok := s.bindOrderIDs(ctx)
	if !ok {
		return nil
	}

	cmd, err := commands.NewGenerateLabelsCommand(ids)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: "Invalid label request: " + err.Error(),
		})
	}

	if err = s.labelsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.adminError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{"ok": true, "orderIds": orderIDStrings(ids)})
}

// SyncTracking handles POST /api/v1/shipments/tracking, the admin trigger for
// an immediate tracking reconciliation of the given orders.
func (s *Server) SyncTracking(ctx echo.Context) error {
	ids, ok := s.bindOrderIDs(ctx)
	if !ok {
		return nil
	}

	cmd, err := commands.NewSyncTrackingCommandForOrders(ids)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: "Invalid tracking request: " + err.Error(),
		})
	}

	if err = s.syncHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.adminError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{"ok": true, "orderIds": orderIDStrings(ids)})
}

// GetOrderShipments handles GET /api/v1/orders/:id/shipments.
func (s *Server) GetOrderShipments(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}

	query, err := queries.NewGetOrderShipmentsQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}

	shipments, err := s.orderShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.adminError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipments)
}

func (s *Server) bindOrderIDs(ctx echo.Context) ([]kernel.UUID, bool) {
	var req orderIDsRequest
	if err := ctx.Bind(&req); err != nil {
		_ = ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
		return nil, false
	}

	ids, err := req.toUUIDs()
	if err != nil {
		_ = ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ids: " + err.Error(),
		})
		return nil, false
	}

	return ids, true
}

// adminError maps a use-case error to a structured admin response. Admin
// callers get the full error text for debugging.
func (s *Server) adminError(ctx echo.Context, err error) error {
	status := quoteErrorStatus(err)
	return ctx.JSON(status, errorBody{
		Code:    status,
		Message: err.Error(),
	})
}

func orderIDStrings(ids []kernel.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
