package cloud

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var (
	ErrAlertExists   = errors.New("alert already recorded")
	ErrAlertNotFound = errors.New("alert not found")
)

// Alert is the DynamoDB item for a raised prediction alert, keyed by alertId.
type Alert struct {
	AlertID        string  `dynamodbav:"alertId" json:"alert_id"`
	PredictionID   string  `dynamodbav:"predictionId" json:"prediction_id"`
	Module         string  `dynamodbav:"module" json:"module"`
	Severity       string  `dynamodbav:"severity" json:"severity"`
	Title          string  `dynamodbav:"title" json:"title"`
	Message        string  `dynamodbav:"message" json:"message"`
	Confidence     float64 `dynamodbav:"confidence" json:"confidence"`
	CreatedAt      int64   `dynamodbav:"createdAt" json:"created_at"`
	Acknowledged   bool    `dynamodbav:"acknowledged" json:"acknowledged"`
	AcknowledgedAt int64   `dynamodbav:"acknowledgedAt,omitempty" json:"acknowledged_at,omitempty"`
}

type DynamoDBClient struct {
	svc   *dynamodb.Client
	table string
}

func NewDynamoDBClient(ctx context.Context, region, table string) (*DynamoDBClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &DynamoDBClient{svc: dynamodb.NewFromConfig(cfg), table: table}, nil
}

// PutAlert writes the alert only if its id is new; a repeat returns ErrAlertExists.
func (c *DynamoDBClient) PutAlert(ctx context.Context, a Alert) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}
	_, err = c.svc.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(c.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(alertId)"),
	})
	var cond *types.ConditionalCheckFailedException
	if errors.As(err, &cond) {
		return ErrAlertExists
	}
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

// ListAlerts scans the table, optionally filtered by module, and returns at
// most limit items.
func (c *DynamoDBClient) ListAlerts(ctx context.Context, module string, limit int) ([]Alert, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(c.table)}
	if module != "" {
		in.FilterExpression = aws.String("#m = :m")
		in.ExpressionAttributeNames = map[string]string{"#m": "module"}
		in.ExpressionAttributeValues = map[string]types.AttributeValue{
			":m": &types.AttributeValueMemberS{Value: module},
		}
	}
	var alerts []Alert
	p := dynamodb.NewScanPaginator(c.svc, in)
	for p.HasMorePages() && (limit <= 0 || len(alerts) < limit) {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alerts: %w", err)
		}
		var batch []Alert
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal alerts: %w", err)
		}
		alerts = append(alerts, batch...)
	}
	if limit > 0 && len(alerts) > limit {
		alerts = alerts[:limit]
	}
	return alerts, nil
}

func (c *DynamoDBClient) AcknowledgeAlert(ctx context.Context, alertID string) error {
	_, err := c.svc.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(c.table),
		Key: map[string]types.AttributeValue{
			"alertId": &types.AttributeValueMemberS{Value: alertID},
		},
		ConditionExpression: aws.String("attribute_exists(alertId)"),
		UpdateExpression:    aws.String("SET acknowledged = :ack, acknowledgedAt = :time"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ack":  &types.AttributeValueMemberBOOL{Value: true},
			":time": &types.AttributeValueMemberN{Value: strconv.FormatInt(time.Now().Unix(), 10)},
		},
	})
	var cond *types.ConditionalCheckFailedException
	if errors.As(err, &cond) {
		return ErrAlertNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to acknowledge alert: %w", err)
	}
	return nil
}
