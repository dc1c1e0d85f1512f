package queries

import (
	"context"
	"fmt"

	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// freeShippingName is the display label for a zero-price quote.
const freeShippingName = "Frete Grátis"

// QuoteShippingQueryHandler issues signed shipping quotes. The price is never
// taken from the client: for a chosen service it is recomputed by calling the
// carrier's rate endpoint with the server-computed volume, and the
// free-shipping path is gated on the server-side subtotal threshold.
type QuoteShippingQueryHandler struct {
	carrier            ports.CarrierClient
	calculator         services.VolumeCalculator
	signer             services.QuoteSigner
	originPostalCode   string
	freeThresholdCents int64
}

// NewQuoteShippingQueryHandler creates a handler for shipping quotes. The
// origin postal code is the store's, and the threshold is the subtotal in
// cents from which shipping becomes free.
func NewQuoteShippingQueryHandler(
	carrier ports.CarrierClient,
	calculator services.VolumeCalculator,
	signer services.QuoteSigner,
	originPostalCode string,
	freeThresholdCents int64,
) QuoteShippingQueryHandler {
	return QuoteShippingQueryHandler{
		carrier:            carrier,
		calculator:         calculator,
		signer:             signer,
		originPostalCode:   originPostalCode,
		freeThresholdCents: freeThresholdCents,
	}
}

// Handle computes and signs a quote for the cart. Without a service id it
// grants a zero-price quote only when the subtotal meets the free-shipping
// threshold; with one it matches the carrier's recomputed rates by service id.
func (h QuoteShippingQueryHandler) Handle(
	ctx context.Context,
	query QuoteShippingQuery,
) (QuoteShippingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return QuoteShippingQueryResponse{}, err
	}

	volume, subtotal, err := h.calculator.Consolidate(ctx, query.Items(), services.RateFloors)
	if err != nil {
		return QuoteShippingQueryResponse{}, err
	}

	digest := services.ItemsDigest(query.Items())

	if query.ServiceID() == nil {
		if subtotal.Cents() < h.freeThresholdCents {
			return QuoteShippingQueryResponse{}, errs.NewValueIsInvalidErrorWithCause("serviceId",
				fmt.Errorf("subtotal below free-shipping threshold and no service chosen"))
		}

		token, signErr := h.signer.Sign(query.OwnerID().String(), nil, 0, digest, query.PostalCode())
		if signErr != nil {
			return QuoteShippingQueryResponse{}, signErr
		}

		return QuoteShippingQueryResponse{ShippingToken: token, Name: freeShippingName}, nil
	}

	rates, err := h.carrier.CalculateRates(ctx, h.originPostalCode, query.PostalCode(), volume)
	if err != nil {
		return QuoteShippingQueryResponse{}, err
	}

	for _, rate := range rates {
		if rate.ServiceID != *query.ServiceID() {
			continue
		}

		token, signErr := h.signer.Sign(
			query.OwnerID().String(), query.ServiceID(), rate.Price.Cents(), digest, query.PostalCode())
		if signErr != nil {
			return QuoteShippingQueryResponse{}, signErr
		}

		return QuoteShippingQueryResponse{
			ShippingToken: token,
			Name:          rate.Name,
			PriceCents:    rate.Price.Cents(),
		}, nil
	}

	return QuoteShippingQueryResponse{}, errs.NewObjectNotFoundError("serviceId", *query.ServiceID())
}
