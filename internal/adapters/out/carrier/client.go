// Package carrier implements the outbound gateway to the multi-courier
// shipping-aggregator REST API. It translates domain types to and from the
// aggregator's wire formats and normalizes its heterogeneous response shapes.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"freight/internal/core/domain/model/freight"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// serviceName identifies the remote in ExternalServiceError values.
const serviceName = "carrier"

// tokenSafetyMargin is subtracted from the advertised token lifetime so a
// token is never used right at its expiry edge.
const tokenSafetyMargin = 30 * time.Second

// maxResponseBytes caps how much of a carrier response is read. Label and
// tracking payloads are small; anything larger is malformed.
const maxResponseBytes = 1 << 20

// cachedToken is an explicit bearer-token cache value with its expiry.
type cachedToken struct {
	value     string
	expiresAt time.Time
}

func (t cachedToken) valid(now time.Time) bool {
	return t.value != "" && now.Before(t.expiresAt)
}

// Client talks to the shipping aggregator. It implements ports.CarrierClient.
// The OAuth bearer token is cached inside the client with its expiry and
// refreshed on demand; there is no module-scoped token state.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	now          func() time.Time

	mu    sync.Mutex
	token cachedToken
}

// NewClient creates a carrier client for the given aggregator base URL and
// OAuth client credentials. A nil httpClient falls back to a 30s-timeout
// default.
func NewClient(baseURL, clientID, clientSecret string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpClient,
		now:          time.Now,
	}
}

// CalculateRates quotes the available services for a package. Service entries
// the aggregator marks with an error (no coverage for the route) are dropped.
func (c *Client) CalculateRates(
	ctx context.Context,
	fromPostalCode, toPostalCode string,
	volume freight.Volume,
) ([]ports.RateOption, error) {
	body := map[string]any{
		"from": map[string]string{"postal_code": fromPostalCode},
		"to":   map[string]string{"postal_code": toPostalCode},
		"package": map[string]any{
			"weight": volume.WeightKg(),
			"height": volume.HeightCm(),
			"width":  volume.WidthCm(),
			"length": volume.LengthCm(),
		},
		"options": map[string]any{
			"insurance_value": volume.InsuredValue().Reais().String(),
		},
	}

	var entries []rateEntry
	if err := c.postJSON(ctx, "/api/v2/me/shipment/calculate", body, &entries); err != nil {
		return nil, err
	}

	options := make([]ports.RateOption, 0, len(entries))
	for _, entry := range entries {
		if entry.Error != "" || entry.Price == "" {
			continue
		}

		price, err := parseReais(entry.Price)
		if err != nil {
			return nil, errs.NewExternalServiceErrorWithCause(serviceName, http.StatusOK, entry.Price, err)
		}

		options = append(options, ports.RateOption{
			ServiceID:    entry.ID,
			Name:         entry.Name,
			Company:      entry.Company.Name,
			Price:        price,
			DeliveryDays: entry.DeliveryTime,
		})
	}

	return options, nil
}

// ReserveCart places a shipment entry in the aggregator cart and returns the
// carrier order id, accepting the three observed response shapes.
func (c *Client) ReserveCart(ctx context.Context, req ports.ReserveCartRequest) (string, error) {
	body := map[string]any{
		"service": req.ServiceID,
		"from":    addressBody(req.From),
		"to":      addressBody(req.To),
		"volumes": []map[string]any{{
			"weight": req.Volume.WeightKg(),
			"height": req.Volume.HeightCm(),
			"width":  req.Volume.WidthCm(),
			"length": req.Volume.LengthCm(),
		}},
		"options": map[string]any{
			"insurance_value": req.Volume.InsuredValue().Reais().String(),
			"receipt":         req.Options.Receipt,
			"own_hand":        req.Options.OwnHand,
			"reverse":         req.Options.ReverseLogistics,
			"non_commercial":  req.Options.NonCommercial,
			"tags":            req.Options.Tags,
		},
	}

	var resp reserveResponse
	if err := c.postJSON(ctx, "/api/v2/me/cart", body, &resp); err != nil {
		return "", err
	}

	carrierOrderID, ok := resp.carrierOrderID()
	if !ok {
		return "", errs.NewExternalServiceErrorWithCause(serviceName, http.StatusOK, "",
			fmt.Errorf("no order id in reservation response"))
	}

	return carrierOrderID, nil
}

// AttachProducts adds item metadata to a reserved carrier order.
func (c *Client) AttachProducts(
	ctx context.Context,
	carrierOrderID string,
	products []ports.CartProduct,
) error {
	items := make([]map[string]any, 0, len(products))
	for _, p := range products {
		items = append(items, map[string]any{
			"name":          p.Name,
			"quantity":      p.Quantity,
			"unitary_value": p.UnitValue.Reais().String(),
		})
	}

	path := fmt.Sprintf("/api/v2/me/cart/%s/products", carrierOrderID)
	return c.postJSON(ctx, path, map[string]any{"products": items}, nil)
}

// Purchase checks out the given carrier orders from the cart.
func (c *Client) Purchase(ctx context.Context, carrierOrderIDs []string) (ports.PurchaseResult, error) {
	var resp purchaseResponse
	if err := c.postJSON(ctx, "/api/v2/me/shipment/checkout",
		map[string]any{"orders": carrierOrderIDs}, &resp); err != nil {
		return ports.PurchaseResult{}, err
	}

	result := ports.PurchaseResult{Status: resp.Purchase.Status}
	for _, o := range resp.Purchase.Orders {
		if o.ID != "" {
			result.OrderIDs = append(result.OrderIDs, o.ID)
		}
	}

	return result, nil
}

// GenerateLabels requests label generation for purchased orders.
func (c *Client) GenerateLabels(ctx context.Context, carrierOrderIDs []string) ([]ports.LabelResult, error) {
	var resp struct {
		Shipments []labelEntry `json:"shipments"`
	}
	if err := c.postJSON(ctx, "/api/v2/me/shipment/generate",
		map[string]any{"orders": carrierOrderIDs}, &resp); err != nil {
		return nil, err
	}

	results := make([]ports.LabelResult, 0, len(resp.Shipments))
	for _, entry := range resp.Shipments {
		results = append(results, ports.LabelResult{
			CarrierOrderID: entry.ID,
			LabelURL:       entry.labelURL(),
			Status:         entry.Status,
		})
	}

	return results, nil
}

// Track fetches tracking data for the given orders in one batch call.
func (c *Client) Track(ctx context.Context, carrierOrderIDs []string) ([]ports.TrackingResult, error) {
	raw, err := c.post(ctx, "/api/v2/me/shipment/tracking", map[string]any{"orders": carrierOrderIDs})
	if err != nil {
		return nil, err
	}

	entries, err := decodeTrackingResponse(raw)
	if err != nil {
		return nil, errs.NewExternalServiceErrorWithCause(serviceName, http.StatusOK, string(raw), err)
	}

	results := make([]ports.TrackingResult, 0, len(entries))
	for _, entry := range entries {
		if entry.ID == "" {
			continue
		}

		results = append(results, ports.TrackingResult{
			CarrierOrderID: entry.ID,
			Tracking:       entry.tracking(),
		})
	}

	return results, nil
}

// postJSON posts the body and decodes the JSON response into out. A non-JSON
// success body surfaces as an ExternalServiceError carrying the raw text.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	raw, err := c.post(ctx, path, body)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	if err = json.Unmarshal(raw, out); err != nil {
		return errs.NewExternalServiceErrorWithCause(serviceName, http.StatusOK, string(raw), err)
	}

	return nil
}

// post sends an authenticated POST and returns the raw response body. Non-2xx
// statuses surface as ExternalServiceError with the status and the body text.
func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewExternalServiceErrorWithCause(serviceName, 0, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errs.NewExternalServiceErrorWithCause(serviceName, resp.StatusCode, "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.NewExternalServiceError(serviceName, resp.StatusCode, string(raw))
	}

	return raw, nil
}

// bearerToken returns the cached token or refreshes it through the OAuth
// client-credentials grant when missing or expired.
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token.valid(c.now()) {
		return c.token.value, nil
	}

	payload, err := json.Marshal(map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth/token", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errs.NewExternalServiceErrorWithCause(serviceName, 0, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", errs.NewExternalServiceErrorWithCause(serviceName, resp.StatusCode, "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errs.NewExternalServiceError(serviceName, resp.StatusCode, string(raw))
	}

	var tr tokenResponse
	if err = json.Unmarshal(raw, &tr); err != nil || tr.AccessToken == "" {
		return "", errs.NewExternalServiceErrorWithCause(serviceName, resp.StatusCode, string(raw), err)
	}

	c.token = cachedToken{
		value:     tr.AccessToken,
		expiresAt: c.now().Add(time.Duration(tr.ExpiresIn)*time.Second - tokenSafetyMargin),
	}

	return c.token.value, nil
}

func addressBody(a freight.Address) map[string]string {
	return map[string]string{
		"postal_code": a.PostalCode(),
		"address":     a.Street(),
		"number":      a.Number(),
		"district":    a.District(),
		"city":        a.City(),
		"state_abbr":  a.State(),
	}
}

// parseReais converts a decimal reais string from the wire into Money.
func parseReais(s string) (kernel.Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return kernel.Money{}, err
	}

	cents := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return kernel.NewMoneyFromCents(cents)
}
