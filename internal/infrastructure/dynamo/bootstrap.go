package dynamo

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-api-signup/internal/config"
	"go.uber.org/zap"
)

// Bootstrap creates the verification table and its TTL if they don't already exist.
// Safe to call on every startup.
func Bootstrap(ctx context.Context, client *dynamodb.Client, tables config.DynamoTables, log *zap.Logger) {
	createTable(ctx, client, log, &dynamodb.CreateTableInput{
		TableName:   aws.String(tables.UserVerifications),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("user_id"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("type"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("user_id"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("type"), KeyType: types.KeyTypeRange},
		},
	})
	enableTTL(ctx, client, log, tables.UserVerifications, "expires_at")
}

func createTable(ctx context.Context, client *dynamodb.Client, log *zap.Logger, input *dynamodb.CreateTableInput) {
	_, err := client.CreateTable(ctx, input)
	if err != nil {
		// ResourceInUseException means the table already exists.
		var riue *types.ResourceInUseException
		if !errors.As(err, &riue) {
			log.Warn("could not create table", zap.String("table", *input.TableName), zap.Error(err))
		}
		return
	}
	log.Info("created table", zap.String("table", *input.TableName))
}

func enableTTL(ctx context.Context, client *dynamodb.Client, log *zap.Logger, tableName, ttlAttr string) {
	_, err := client.UpdateTimeToLive(ctx, &dynamodb.UpdateTimeToLiveInput{
		TableName: aws.String(tableName),
		TimeToLiveSpecification: &types.TimeToLiveSpecification{
			Enabled:       aws.Bool(true),
			AttributeName: aws.String(ttlAttr),
		},
	})
	if err != nil {
		log.Warn("could not enable TTL", zap.String("table", tableName), zap.Error(err))
	}
}
