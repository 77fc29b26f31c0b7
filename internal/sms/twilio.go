package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// TwilioClient sends SMS through the Twilio Messages REST API.
type TwilioClient struct {
	client     *http.Client
	accountSID string
	authToken  string
	baseURL    string
}

func NewTwilioClient(accountSID, authToken string, client *http.Client) *TwilioClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &TwilioClient{
		client:     client,
		accountSID: accountSID,
		authToken:  authToken,
		baseURL:    twilioAPIBase,
	}
}

type twilioMessageResponse struct {
	SID          string `json:"sid"`
	Status       string `json:"status"`
	ErrorCode    *int   `json:"error_code"`
	ErrorMessage string `json:"message"`
}

func (c *TwilioClient) Send(ctx context.Context, body, to, from string) (*Delivery, error) {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sms gateway: %w", err)
	}
	defer resp.Body.Close()

	var result twilioMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("sms gateway: decode response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("sms gateway: %s (status %d)", result.ErrorMessage, resp.StatusCode)
	}

	return &Delivery{
		Ref:        uuid.NewString(),
		ProviderID: result.SID,
		Status:     result.Status,
	}, nil
}
