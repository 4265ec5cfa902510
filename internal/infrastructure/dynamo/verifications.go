package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-api-signup/internal/domain"
)

// API is the part of the DynamoDB client the repository uses.
type API interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// VerificationRepo manages OTP codes for pending accounts.
// PK: user_id, SK: type
type VerificationRepo struct {
	client    API
	tableName string
}

func NewVerificationRepo(client API, tableName string) *VerificationRepo {
	return &VerificationRepo{client: client, tableName: tableName}
}

func (r *VerificationRepo) Put(ctx context.Context, v *domain.UserVerification) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal verification: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put verification: %w", err)
	}
	return nil
}

func (r *VerificationRepo) Get(ctx context.Context, userID, verType string) (*domain.UserVerification, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            compositeKey("user_id", userID, "type", verType),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get verification: %w", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("verification not found: %w", domain.ErrNotFound)
	}
	var v domain.UserVerification
	if err := attributevalue.UnmarshalMap(out.Item, &v); err != nil {
		return nil, fmt.Errorf("unmarshal verification: %w", err)
	}
	return &v, nil
}

func (r *VerificationRepo) Delete(ctx context.Context, userID, verType string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("user_id", userID, "type", verType),
	})
	return err
}
