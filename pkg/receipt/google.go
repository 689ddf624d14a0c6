package receipt

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

const androidPublisherScope = "https://www.googleapis.com/auth/androidpublisher"

// purchaseState values in the androidpublisher API.
const (
	purchaseStatePurchased = 0
	purchaseStateCanceled  = 1
)

type googleProductPurchase struct {
	Kind                 string `json:"kind"`
	PurchaseTimeMillis   string `json:"purchaseTimeMillis"`
	PurchaseState        int    `json:"purchaseState"`
	ConsumptionState     int    `json:"consumptionState"`
	AcknowledgementState int    `json:"acknowledgementState"`
	OrderID              string `json:"orderId"`
}

// GoogleVerifier validates purchase tokens against the Google Play Developer
// API, authenticating with a service-account JWT assertion. Without
// credentials it runs in simulated mode.
type GoogleVerifier struct {
	packageName string
	jwtConfig   *jwt.Config
	client      *http.Client
}

// NewGoogleVerifier parses the service-account JSON once at startup. An
// unparsable credential fails fast rather than silently simulating.
func NewGoogleVerifier(packageName, credentialsJSON string, timeout time.Duration) (*GoogleVerifier, error) {
	v := &GoogleVerifier{
		packageName: packageName,
		client:      &http.Client{Timeout: timeout},
	}
	if credentialsJSON != "" {
		cfg, err := google.JWTConfigFromJSON([]byte(credentialsJSON), androidPublisherScope)
		if err != nil {
			return nil, fmt.Errorf("google play credentials: %w", err)
		}
		v.jwtConfig = cfg
	}
	return v, nil
}

func (v *GoogleVerifier) Verify(ctx context.Context, productID, token string) Result {
	if v.jwtConfig == nil {
		log.Printf("[Receipt] GOOGLE_PLAY_CREDENTIALS not configured - simulating valid result for product %s", productID)
		return Result{Valid: true, Reason: ReasonSimulated}
	}

	tok, err := v.jwtConfig.TokenSource(ctx).Token()
	if err != nil {
		log.Printf("[Receipt] Google access token error: %v", err)
		return Result{Valid: false, Reason: "failed to get Google access token"}
	}

	url := fmt.Sprintf(
		"https://androidpublisher.googleapis.com/androidpublisher/v3/applications/%s/purchases/products/%s/tokens/%s",
		v.packageName, productID, token,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{Valid: false, Reason: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	resp, err := v.client.Do(req)
	if err != nil {
		log.Printf("[Receipt] Google Play verification error: %v", err)
		return Result{Valid: false, Reason: "failed to verify receipt with Google Play"}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("[Receipt] Google Play verification failed: status %d", resp.StatusCode)
		return Result{Valid: false, Reason: "failed to verify receipt with Google Play"}
	}

	var purchase googleProductPurchase
	if err := json.NewDecoder(resp.Body).Decode(&purchase); err != nil {
		return Result{Valid: false, Reason: "malformed Google Play response"}
	}
	if purchase.PurchaseState != purchaseStatePurchased {
		return Result{Valid: false, Reason: "purchase has been canceled"}
	}
	log.Printf("[Receipt] Google Play receipt verified, order %s", purchase.OrderID)
	return Result{Valid: true}
}
