package license

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"metastar/models"
	"metastar/utils"

	"go.uber.org/zap"
)

// validStatuses includes "completed" so lifetime/one-time purchases keep access.
var validStatuses = map[string]bool{
	"active":          true,
	"trialing":        true,
	"paid_subscriber": true,
	"completed":       true,
}

// WhopClient implements Client against the Whop memberships API.
// Entitlement is evaluated fresh on every call so revocations propagate
// on the user's next login attempt.
type WhopClient struct {
	BaseURL   string
	APIKey    string
	CompanyID string
	// ProductID restricts entitlement to one product/experience when set.
	// When empty, any membership with a valid status grants access.
	ProductID string
	HTTP      *http.Client
}

// NewWhopClient creates a WhopClient with a bounded request timeout.
func NewWhopClient(baseURL, apiKey, companyID, productID string) *WhopClient {
	return &WhopClient{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		CompanyID: companyID,
		ProductID: productID,
		HTTP:      &http.Client{Timeout: 10 * time.Second},
	}
}

// HasEntitlement fetches all memberships for the email and reports whether at
// least one carries a valid status and matches the configured product filter.
// Transport and non-2xx failures surface as errors (fail closed).
func (c *WhopClient) HasEntitlement(ctx context.Context, email string) (bool, error) {
	q := url.Values{}
	q.Set("email", email)
	q.Set("company_id", c.CompanyID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/memberships?"+q.Encode(), nil)
	if err != nil {
		return false, fmt.Errorf("failed to build membership request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false, fmt.Errorf("membership lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		utils.GetLogger().Error("Whop API error", zap.Int("status", resp.StatusCode))
		return false, fmt.Errorf("membership lookup returned status %d", resp.StatusCode)
	}

	var list models.MembershipList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return false, fmt.Errorf("failed to decode membership response: %w", err)
	}

	for _, m := range list.Data {
		if !validStatuses[m.Status] {
			continue
		}
		if c.ProductID != "" && m.ProductID != c.ProductID && m.ExperienceID != c.ProductID {
			continue
		}
		return true, nil
	}
	return false, nil
}
