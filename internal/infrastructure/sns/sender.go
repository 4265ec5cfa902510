package sns

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/go-api-signup/internal/config"
	"github.com/go-api-signup/internal/infrastructure/dynamo"
)

// SMSSender sends SMS messages via AWS SNS.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// publisher is the part of the SNS client the sender uses.
type publisher interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type sender struct {
	client publisher
}

func NewSender(ctx context.Context, cfg *config.Config) (SMSSender, error) {
	awsCfg, err := dynamo.LoadAWSConfig(ctx, cfg, cfg.SNSRegion)
	if err != nil {
		return nil, err
	}
	client := sns.NewFromConfig(awsCfg, func(o *sns.Options) {
		if cfg.AWSEndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		}
	})
	return &sender{client: client}, nil
}

func (s *sender) SendSMS(ctx context.Context, to, message string) error {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {DataType: aws.String("String"), StringValue: aws.String("Transactional")},
		},
	})
	return err
}
