package location

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/bbernstein/lunartide/internal/models"
	"github.com/rs/zerolog/log"
)

// DynamoDBClient defines the DynamoDB operations the store needs
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// preferencesRecord is the DynamoDB item layout, keyed by profile
type preferencesRecord struct {
	Profile         string            `dynamodbav:"profile"`
	CurrentLocation *models.Location  `dynamodbav:"currentLocation,omitempty"`
	SavedLocations  []models.Location `dynamodbav:"savedLocations"`
	LastUpdated     int64             `dynamodbav:"lastUpdated"`
}

// DynamoStore keeps one preferences item per profile in a DynamoDB table
type DynamoStore struct {
	client  DynamoDBClient
	table   string
	profile string
}

func NewDynamoStore(client DynamoDBClient, table, profile string) *DynamoStore {
	return &DynamoStore{
		client:  client,
		table:   table,
		profile: profile,
	}
}

func (s *DynamoStore) Load(ctx context.Context) (*models.Preferences, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"profile": &types.AttributeValueMemberS{Value: s.profile},
		},
	}

	result, err := s.client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("getting preferences from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return emptyPreferences(), nil
	}

	var record preferencesRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("unmarshaling preferences record: %w", err)
	}

	return normalize(&models.Preferences{
		CurrentLocation: record.CurrentLocation,
		SavedLocations:  record.SavedLocations,
	}), nil
}

func (s *DynamoStore) Save(ctx context.Context, prefs *models.Preferences) error {
	prefs = normalize(prefs)
	record := preferencesRecord{
		Profile:         s.profile,
		CurrentLocation: prefs.CurrentLocation,
		SavedLocations:  prefs.SavedLocations,
		LastUpdated:     time.Now().Unix(),
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("marshaling preferences record: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("putting preferences in DynamoDB: %w", err)
	}

	log.Debug().
		Str("profile", s.profile).
		Str("table", s.table).
		Msg("Saved preferences to DynamoDB")

	return nil
}
