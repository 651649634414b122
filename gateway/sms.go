// gateway/sms.go
package gateway

import (
	"context"

	"fintrack-backend/config"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSClient sends plain SMS through Twilio, used when a recipient's number is
// not reachable over WhatsApp.
type SMSClient struct {
	client *twilio.RestClient
	from   string
}

func NewSMSClient(cfg config.TwilioConfig) *SMSClient {
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil
	}
	return &SMSClient{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		from: cfg.PhoneNumber,
	}
}

func (s *SMSClient) SendText(ctx context.Context, number, text string) SendResult {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(number)
	params.SetFrom(s.from)
	params.SetBody(text)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return SendResult{Error: err.Error()}
	}

	result := SendResult{Sent: true}
	if resp.Sid != nil {
		result.MessageID = *resp.Sid
	}
	return result
}
