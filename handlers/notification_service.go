package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/pkg/billing"
)

// WhatsAppNotifier posts messages to a WhatsApp gateway. Delivery is
// best effort; callers treat failures as warnings.
type WhatsAppNotifier struct {
	gatewayURL string
	apiKey     string
	client     *http.Client
}

func NewWhatsAppNotifier(gatewayURL, apiKey string) *WhatsAppNotifier {
	return &WhatsAppNotifier{
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *WhatsAppNotifier) Send(phone, message string) error {
	payload, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
	})
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, n.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.apiKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification to %s: %w", phone, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification gateway returned %d", resp.StatusCode)
	}
	return nil
}

// NoopNotifier drops messages. Used when no gateway is configured and in
// tests that do not care about notifications.
type NoopNotifier struct{}

func (NoopNotifier) Send(phone, message string) error { return nil }

// NewNotifierFromEnv returns a WhatsApp notifier when the gateway is
// configured, a no-op otherwise.
func NewNotifierFromEnv() billing.Notifier {
	url := os.Getenv("WHATSAPP_GATEWAY_URL")
	if url == "" {
		log.Println("⚠️  WHATSAPP_GATEWAY_URL not set, notifications disabled")
		return NoopNotifier{}
	}
	return NewWhatsAppNotifier(url, os.Getenv("WHATSAPP_API_KEY"))
}
