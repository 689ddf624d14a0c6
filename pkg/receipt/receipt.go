// Package receipt verifies in-app purchase receipts against the Google Play
// and Apple App Store validation endpoints. Verification failure is an
// expected business outcome: transport errors, timeouts and non-success
// statuses all come back as Result{Valid: false} rather than an error.
package receipt

import "context"

const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
)

// ReasonSimulated tags results produced without live store credentials. It
// is only ever emitted when the matching credential is absent, so simulated
// and genuine verifications stay distinguishable in logs.
const ReasonSimulated = "simulated"

// Result is the normalized outcome of a receipt verification.
type Result struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// Verifier validates a purchase receipt for one platform's store.
type Verifier interface {
	Verify(ctx context.Context, productID, token string) Result
}

// Service dispatches verification to the platform-specific verifier. The
// platform is always an explicit tag from the client, never inferred.
type Service struct {
	google Verifier
	apple  Verifier
}

func NewService(google, apple Verifier) *Service {
	return &Service{google: google, apple: apple}
}

func (s *Service) Verify(ctx context.Context, platform, productID, token string) Result {
	switch platform {
	case PlatformAndroid:
		return s.google.Verify(ctx, productID, token)
	case PlatformIOS:
		return s.apple.Verify(ctx, productID, token)
	default:
		return Result{Valid: false, Reason: "unknown platform " + platform}
	}
}
