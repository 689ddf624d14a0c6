package receipt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const (
	appleProductionURL = "https://buy.itunes.apple.com/verifyReceipt"
	appleSandboxURL    = "https://sandbox.itunes.apple.com/verifyReceipt"
)

type appleVerifyRequest struct {
	ReceiptData string `json:"receipt-data"`
	Password    string `json:"password"`
}

type appleVerifyResponse struct {
	Status      int    `json:"status"`
	Environment string `json:"environment"`
}

// AppleVerifier validates receipt payloads against Apple's verifyReceipt
// endpoint. Without a shared secret it runs in simulated mode.
type AppleVerifier struct {
	bundleID     string
	sharedSecret string
	endpoint     string
	client       *http.Client
}

func NewAppleVerifier(bundleID, sharedSecret string, production bool, timeout time.Duration) *AppleVerifier {
	endpoint := appleSandboxURL
	if production {
		endpoint = appleProductionURL
	}
	return &AppleVerifier{
		bundleID:     bundleID,
		sharedSecret: sharedSecret,
		endpoint:     endpoint,
		client:       &http.Client{Timeout: timeout},
	}
}

func (v *AppleVerifier) Verify(ctx context.Context, productID, token string) Result {
	if v.sharedSecret == "" {
		log.Printf("[Receipt] APPLE_SHARED_SECRET not configured - simulating valid result for product %s", productID)
		return Result{Valid: true, Reason: ReasonSimulated}
	}

	body, _ := json.Marshal(appleVerifyRequest{ReceiptData: token, Password: v.sharedSecret})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{Valid: false, Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		log.Printf("[Receipt] Apple verification error: %v", err)
		return Result{Valid: false, Reason: "failed to verify receipt with Apple"}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("[Receipt] Apple verification HTTP error: %d", resp.StatusCode)
		return Result{Valid: false, Reason: "failed to verify receipt with Apple"}
	}

	var out appleVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{Valid: false, Reason: "malformed Apple response"}
	}
	// Status 0 = valid; anything else (21002 malformed, 21010 invalid, ...)
	// means the receipt does not stand.
	if out.Status != 0 {
		return Result{Valid: false, Reason: fmt.Sprintf("apple verification failed with status %d", out.Status)}
	}
	log.Printf("[Receipt] Apple receipt verified (%s)", out.Environment)
	return Result{Valid: true}
}
