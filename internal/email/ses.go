package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/charmbracelet/log"
)

type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESSender delivers mail through AWS SESv2.
type SESSender struct {
	client sesAPI
	sender string
}

// NewSESSender initializes an SES client using static credentials and region.
func NewSESSender(ctx context.Context, accessKeyID, secretAccessKey, region, sender string) (*SESSender, error) {
	if accessKeyID == "" || secretAccessKey == "" || region == "" {
		return nil, fmt.Errorf("ses credentials and region are required")
	}
	if sender == "" {
		return nil, fmt.Errorf("ses sender is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return newSESSenderWithAPI(sesv2.NewFromConfig(awsCfg), sender), nil
}

func newSESSenderWithAPI(client sesAPI, sender string) *SESSender {
	return &SESSender{client: client, sender: sender}
}

// Send delivers a simple text email.
func (s *SESSender) Send(ctx context.Context, recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("recipient is required")
	}

	input := &sesv2.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{recipient},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
		FromEmailAddress: aws.String(s.sender),
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		log.Error("Failed to send SES email", "error", err, "recipient", recipient, "subject", subject)
		return fmt.Errorf("failed to send ses email: %w", err)
	}
	log.Debug("Sent SES email", "recipient", recipient, "subject", subject)
	return nil
}
