// gateway/dispatcher.go
package gateway

import (
	"context"
	"strings"
)

// Channels recorded on notification log entries.
const (
	ChannelWhatsApp = "whatsapp"
	ChannelSMS      = "sms"
)

// Dispatcher routes an outbound message to WhatsApp or the SMS fallback.
// Numbers in E.164 form (leading +) go to WhatsApp; anything else goes to
// SMS when Twilio is configured.
type Dispatcher struct {
	WhatsApp *WhatsAppClient
	SMS      *SMSClient
}

func (d *Dispatcher) Send(ctx context.Context, number, text string) (string, SendResult) {
	if !strings.HasPrefix(number, "+") && d.SMS != nil {
		return ChannelSMS, d.SMS.SendText(ctx, number, text)
	}
	return ChannelWhatsApp, d.WhatsApp.SendText(ctx, strings.TrimPrefix(number, "+"), text)
}
