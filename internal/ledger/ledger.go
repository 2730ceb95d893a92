package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"

	"assignment_service/internal/domain"
	"assignment_service/internal/errdefs"
)

func NewClient(ctx context.Context, region string) (*dynamodb.Client, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(awsCfg), nil
}

type ItemPutter interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type BounceLister interface {
	BounceList(ctx context.Context) ([]string, error)
}

// Ledger appends one delivery record per fulfillment attempt. Records are
// never updated or deleted; a redelivered event appends a second row.
type Ledger struct {
	db      ItemPutter
	table   string
	bounces BounceLister
	now     func() time.Time
}

func New(db ItemPutter, table string, bounces BounceLister) *Ledger {
	return &Ledger{db: db, table: table, bounces: bounces, now: time.Now}
}

// Record cross-checks the recipient against the full provider bounce list
// and persists the outcome under a freshly minted message id. A bounced
// recipient is forced to failure regardless of the caller-supplied status.
func (l *Ledger) Record(ctx context.Context, recipient string, status domain.DeliveryStatus) (*domain.DeliveryRecord, error) {
	bounced, err := l.bounces.BounceList(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errdefs.ErrLedger, err)
	}

	for _, address := range bounced {
		if address == recipient {
			status = domain.DeliveryFailure
			break
		}
	}

	record := &domain.DeliveryRecord{
		MessageID: uuid.NewString(),
		Recipient: recipient,
		SentAt:    l.now().UTC().Format(time.RFC3339),
		Status:    status,
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errdefs.ErrLedger, err)
	}

	_, err = l.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(l.table),
		Item:      item,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errdefs.ErrLedger, err)
	}

	return record, nil
}
