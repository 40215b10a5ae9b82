package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	verify "github.com/twilio/twilio-go/rest/verify/v2"

	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/apperrors"
)

// Twilio error codes we care about. Anything else is surfaced as a generic
// gateway failure.
const (
	twilioCodeNotFound        = 20404
	twilioCodeTooManyRequests = 20429
	twilioCodeMaxSendAttempts = 60203
)

const gatewayTimeout = 10 * time.Second

// VerifyGateway starts and checks OTP challenges. The Twilio implementation
// is the real one; tests inject a fake. The provider owns challenge state:
// starting a new verification supersedes the previous one, and expiry and
// max-check policies live on the Verify service, not here.
type VerifyGateway interface {
	StartVerification(ctx context.Context, phone, channel string) (string, error)
	CheckVerification(ctx context.Context, phone, code string) (bool, error)
}

// TwilioVerify wraps the Twilio Verify v2 API.
type TwilioVerify struct {
	client     *twilio.RestClient
	serviceSID string
}

// NewTwilioVerify creates the gateway client from environment credentials.
// Missing credentials are a startup-class condition: the caller should wire
// NewDisabledGateway instead so every OTP route fails the same way.
func NewTwilioVerify() (*TwilioVerify, error) {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	serviceSid := os.Getenv("TWILIO_VERIFY_SERVICE_SID")

	if accountSid == "" || authToken == "" || serviceSid == "" {
		return nil, apperrors.ErrGatewayConfig
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})
	client.Client.SetTimeout(gatewayTimeout)

	return &TwilioVerify{
		client:     client,
		serviceSID: serviceSid,
	}, nil
}

// StartVerification asks Twilio to deliver a one-time code. Starting again
// for the same number before expiry invalidates the prior challenge.
func (t *TwilioVerify) StartVerification(ctx context.Context, phone, channel string) (string, error) {
	params := &verify.CreateVerificationParams{}
	params.SetTo(phone)
	params.SetChannel(channel)

	resp, err := t.client.VerifyV2.CreateVerification(t.serviceSID, params)
	if err != nil {
		return "", t.mapError(err)
	}

	status := "pending"
	if resp.Status != nil {
		status = *resp.Status
	}
	log.Printf("Verification started for %s: %s", phone, status)
	return status, nil
}

// CheckVerification validates a submitted code against the live challenge.
// Approved is only ever true when the provider says so.
func (t *TwilioVerify) CheckVerification(ctx context.Context, phone, code string) (bool, error) {
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(phone)
	params.SetCode(code)

	resp, err := t.client.VerifyV2.CreateVerificationCheck(t.serviceSID, params)
	if err != nil {
		return false, t.mapError(err)
	}

	return resp.Status != nil && *resp.Status == "approved", nil
}

// mapError converts Twilio failures onto the application taxonomy so
// handlers can pick distinct status codes.
func (t *TwilioVerify) mapError(err error) error {
	var restErr *twilioclient.TwilioRestError
	if errors.As(err, &restErr) {
		switch {
		case restErr.Status == 429 || restErr.Code == twilioCodeTooManyRequests || restErr.Code == twilioCodeMaxSendAttempts:
			return apperrors.ErrRateLimited
		case restErr.Status == 404 || restErr.Code == twilioCodeNotFound:
			return apperrors.ErrVerificationNotFound
		}
		return fmt.Errorf("twilio error %d: %s", restErr.Code, restErr.Message)
	}

	var urlErr *url.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &urlErr) && urlErr.Timeout()) {
		return apperrors.ErrGatewayTimeout
	}

	return fmt.Errorf("twilio request failed: %w", err)
}

// DisabledGateway stands in when Twilio credentials are absent. Every call
// fails with the configuration error until the service is restarted with
// credentials.
type DisabledGateway struct{}

// NewDisabledGateway creates the stand-in gateway.
func NewDisabledGateway() *DisabledGateway {
	return &DisabledGateway{}
}

func (d *DisabledGateway) StartVerification(ctx context.Context, phone, channel string) (string, error) {
	return "", apperrors.ErrGatewayConfig
}

func (d *DisabledGateway) CheckVerification(ctx context.Context, phone, code string) (bool, error) {
	return false, apperrors.ErrGatewayConfig
}
