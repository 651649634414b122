// gateway/client.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fintrack-backend/config"
)

// SendResult is the normalized outcome of one gateway send attempt. Callers
// must check Sent; a failed attempt carries the reason in Error and never a
// message id.
type SendResult struct {
	Sent      bool
	MessageID string
	Error     string
}

// InstanceState describes the gateway instance connection, as reported by the
// admin endpoints.
type InstanceState struct {
	State       string `json:"state"`
	QRCode      string `json:"qrcode,omitempty"`
	PairingCode string `json:"code,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// WhatsAppClient talks to an Evolution-compatible WhatsApp gateway. It never
// returns transport errors from SendText; every failure is folded into the
// SendResult so orchestrators have a single shape to log.
type WhatsAppClient struct {
	baseURL  string
	instance string
	apiKey   string
	http     *http.Client
}

func NewWhatsAppClient(cfg config.GatewayConfig, timeout time.Duration) *WhatsAppClient {
	return &WhatsAppClient{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		instance: cfg.Instance,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: timeout},
	}
}

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
	Delay  int    `json:"delay,omitempty"`
}

func (c *WhatsAppClient) SendText(ctx context.Context, number, text string) SendResult {
	payload, _ := json.Marshal(sendTextRequest{Number: number, Text: text})

	url := fmt.Sprintf("%s/message/sendText/%s", c.baseURL, c.instance)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return SendResult{Error: "building gateway request: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return SendResult{Error: "gateway request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return SendResult{Error: fmt.Sprintf("gateway returned %s: %s", resp.Status, string(raw))}
	}

	// The gateway nests the id under "key" in newer versions and returns a
	// flat "messageId" in older ones.
	var body struct {
		Key struct {
			ID string `json:"id"`
		} `json:"key"`
		MessageID string `json:"messageId"`
	}
	_ = json.Unmarshal(raw, &body)

	id := body.Key.ID
	if id == "" {
		id = body.MessageID
	}
	return SendResult{Sent: true, MessageID: id}
}

// ConnectionState fetches the current instance state from the gateway.
func (c *WhatsAppClient) ConnectionState(ctx context.Context) (*InstanceState, error) {
	url := fmt.Sprintf("%s/instance/connectionState/%s", c.baseURL, c.instance)
	return c.getState(ctx, url)
}

// Connect asks the gateway to (re)connect the instance; a disconnected
// instance answers with a QR or pairing code for the operator.
func (c *WhatsAppClient) Connect(ctx context.Context) (*InstanceState, error) {
	url := fmt.Sprintf("%s/instance/connect/%s", c.baseURL, c.instance)
	return c.getState(ctx, url)
}

func (c *WhatsAppClient) getState(ctx context.Context, url string) (*InstanceState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway returned %s: %s", resp.Status, string(raw))
	}

	// Flat shape first, nested "instance" shape as fallback.
	var state InstanceState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	if state.State == "" {
		var nested struct {
			Instance InstanceState `json:"instance"`
		}
		if err := json.Unmarshal(raw, &nested); err == nil {
			state = nested.Instance
		}
	}
	return &state, nil
}
