package receipt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppleSimulatedWithoutSecret(t *testing.T) {
	v := NewAppleVerifier("com.dramastream", "", false, time.Second)
	res := v.Verify(context.Background(), "com.dramastream.coins.100", "tok")
	assert.True(t, res.Valid)
	assert.Equal(t, ReasonSimulated, res.Reason)
}

func TestAppleVerifyAcceptsStatusZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"status":0,"environment":"Sandbox"}`))
	}))
	defer srv.Close()

	v := NewAppleVerifier("com.dramastream", "secret", false, time.Second)
	v.endpoint = srv.URL
	res := v.Verify(context.Background(), "com.dramastream.coins.100", "tok")
	assert.True(t, res.Valid)
	assert.Empty(t, res.Reason)
}

func TestAppleVerifyRejectsNonZeroStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":21010}`))
	}))
	defer srv.Close()

	v := NewAppleVerifier("com.dramastream", "secret", false, time.Second)
	v.endpoint = srv.URL
	res := v.Verify(context.Background(), "com.dramastream.coins.100", "tok")
	assert.False(t, res.Valid)
	assert.Equal(t, "apple verification failed with status 21010", res.Reason)
}

func TestAppleVerifyTransportFailureIsInvalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	v := NewAppleVerifier("com.dramastream", "secret", false, time.Second)
	v.endpoint = srv.URL
	res := v.Verify(context.Background(), "com.dramastream.coins.100", "tok")
	assert.False(t, res.Valid)
	assert.Equal(t, "failed to verify receipt with Apple", res.Reason)
}

func TestGoogleSimulatedWithoutCredentials(t *testing.T) {
	v, err := NewGoogleVerifier("com.dramastream", "", time.Second)
	require.NoError(t, err)
	res := v.Verify(context.Background(), "com.dramastream.coins.100", "tok")
	assert.True(t, res.Valid)
	assert.Equal(t, ReasonSimulated, res.Reason)
}

func TestGoogleRejectsMalformedCredentials(t *testing.T) {
	_, err := NewGoogleVerifier("com.dramastream", "{not json", time.Second)
	assert.Error(t, err)
}

func TestServiceDispatchesByPlatform(t *testing.T) {
	google, err := NewGoogleVerifier("com.dramastream", "", time.Second)
	require.NoError(t, err)
	apple := NewAppleVerifier("com.dramastream", "", false, time.Second)
	svc := NewService(google, apple)

	assert.True(t, svc.Verify(context.Background(), PlatformAndroid, "p", "t").Valid)
	assert.True(t, svc.Verify(context.Background(), PlatformIOS, "p", "t").Valid)

	res := svc.Verify(context.Background(), "windows", "p", "t")
	assert.False(t, res.Valid)
	assert.Contains(t, res.Reason, "unknown platform")
}
