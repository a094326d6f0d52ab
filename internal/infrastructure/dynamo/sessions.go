package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-auth-api/internal/domain"
)

// SessionRepo provides typed DynamoDB operations for the sessions table.
// The bearer token is the partition key; account_id-index supports the
// bulk-revocation queries.
type SessionRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSessionRepo(client *dynamodb.Client, tableName string) *SessionRepo {
	return &SessionRepo{client: client, tableName: tableName}
}

func (r *SessionRepo) Put(ctx context.Context, s *domain.Session) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *SessionRepo) Get(ctx context.Context, token string) (*domain.Session, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("token", token),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("session not found: %w", domain.ErrNotFound)
	}
	var s domain.Session
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes a session. DynamoDB DeleteItem succeeds on a missing key,
// so logging out an already-revoked token is a no-op.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("token", token),
	})
	return err
}

// DeleteAllByAccount revokes every session belonging to the account.
func (r *SessionRepo) DeleteAllByAccount(ctx context.Context, accountID string) error {
	return r.deleteByAccount(ctx, accountID, "")
}

// DeleteAllByAccountExcept revokes every session belonging to the account
// except the one identified by keepToken.
func (r *SessionRepo) DeleteAllByAccountExcept(ctx context.Context, accountID, keepToken string) error {
	return r.deleteByAccount(ctx, accountID, keepToken)
}

func (r *SessionRepo) deleteByAccount(ctx context.Context, accountID, keepToken string) error {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("account_id-index"),
		KeyConditionExpression: aws.String("account_id = :aid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":aid": &types.AttributeValueMemberS{Value: accountID},
		},
	})
	if err != nil {
		return err
	}
	var sessions []domain.Session
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &sessions); err != nil {
		return err
	}
	for _, s := range sessions {
		if keepToken != "" && s.Token == keepToken {
			continue
		}
		if err := r.Delete(ctx, s.Token); err != nil {
			return fmt.Errorf("delete session %s: %w", s.Token, err)
		}
	}
	return nil
}
