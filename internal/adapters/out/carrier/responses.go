package carrier

import (
	"encoding/json"

	"freight/internal/core/domain/model/shipment"
)

// reserveResponse covers the response shapes the aggregator has been observed
// returning for a cart reservation. The order id may sit at the top level,
// under "cart", or inside an "orders" array depending on the account type and
// API revision, so extraction walks the shapes as explicit named fallbacks.
type reserveResponse struct {
	ID   string `json:"id"`
	Cart *struct {
		ID string `json:"id"`
	} `json:"cart"`
	Orders []struct {
		ID string `json:"id"`
	} `json:"orders"`
}

// carrierOrderID extracts the carrier order id, trying each accepted shape in
// order: top-level id, cart.id, orders[0].id.
func (r reserveResponse) carrierOrderID() (string, bool) {
	if r.ID != "" {
		return r.ID, true
	}

	if r.Cart != nil && r.Cart.ID != "" {
		return r.Cart.ID, true
	}

	if len(r.Orders) > 0 && r.Orders[0].ID != "" {
		return r.Orders[0].ID, true
	}

	return "", false
}

// rateEntry is one service option of the rate-calculation response. The price
// comes as a decimal string in reais.
type rateEntry struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	DeliveryTime int    `json:"delivery_time"`
	Company      struct {
		Name string `json:"name"`
	} `json:"company"`
	Error string `json:"error"`
}

// purchaseResponse is the checkout response.
type purchaseResponse struct {
	Purchase struct {
		Orders []struct {
			ID string `json:"id"`
		} `json:"orders"`
		Status string `json:"status"`
	} `json:"purchase"`
}

// labelEntry is one generated label. The URL key differs between the print
// and generate endpoints.
type labelEntry struct {
	ID       string `json:"id"`
	LabelURL string `json:"label_url"`
	URL      string `json:"url"`
	Status   string `json:"status"`
}

func (l labelEntry) labelURL() string {
	if l.LabelURL != "" {
		return l.LabelURL
	}
	return l.URL
}

// trackingEntry is one tracking record. Across response variants the same
// datum appears under different keys, so every observed key is declared and
// normalization picks the first non-empty one.
type trackingEntry struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	TrackingAlt string `json:"tracking"`
	URL         string `json:"url"`
	TrackingURL string `json:"tracking_url"`
	CarrierName string `json:"carrier"`
	Company     string `json:"company"`
}

// tracking flattens the entry into the domain's sparse shape. Absent data
// stays nil so merges never clobber known values.
func (e trackingEntry) tracking() shipment.Tracking {
	var t shipment.Tracking

	if code := firstNonEmpty(e.Code, e.TrackingAlt); code != "" {
		t.Code = &code
	}
	if url := firstNonEmpty(e.TrackingURL, e.URL); url != "" {
		t.URL = &url
	}
	if carrierName := firstNonEmpty(e.CarrierName, e.Company); carrierName != "" {
		t.Carrier = &carrierName
	}

	return t
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// decodeTrackingResponse accepts both observed tracking response shapes: an
// array of entries carrying their own ids, or an object keyed by order id.
func decodeTrackingResponse(raw []byte) ([]trackingEntry, error) {
	var asArray []trackingEntry
	if err := json.Unmarshal(raw, &asArray); err == nil {
		return asArray, nil
	}

	var asMap map[string]trackingEntry
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return nil, err
	}

	entries := make([]trackingEntry, 0, len(asMap))
	for id, entry := range asMap {
		if entry.ID == "" {
			entry.ID = id
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// tokenResponse is the OAuth client-credentials grant response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
