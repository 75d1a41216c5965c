package email

import (
	"context"

	"street-eats/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESV2Sender emails order receipts through AWS SES v2.
type SESV2Sender struct {
	client    *sesv2.Client
	fromEmail string
	toEmail   string
}

// NewSESV2Sender creates a sender for Amazon SES. Credentials are loaded
// from the environment.
func NewSESV2Sender(ctx context.Context, region, fromEmail, toEmail string) (*SESV2Sender, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESV2Sender{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		toEmail:   toEmail,
	}, nil
}

// SendOrderReceipt sends the plain-text and HTML receipt for an order to the
// configured operations mailbox.
func (s *SESV2Sender) SendOrderReceipt(ctx context.Context, order *models.Order) error {
	subject, plainText, html := BuildOrderReceipt(order)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: &s.fromEmail,
		Destination: &types.Destination{
			ToAddresses: []string{s.toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    &subject,
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    &plainText,
						Charset: aws.String("UTF-8"),
					},
					Html: &types.Content{
						Data:    &html,
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	_, err := s.client.SendEmail(ctx, input)
	return err
}
