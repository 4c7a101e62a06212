package location

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/bbernstein/lunartide/internal/models"
	"github.com/rs/zerolog/log"
)

// S3Client defines the interface for S3 operations we need
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store keeps each profile's preferences as a JSON object
type S3Store struct {
	client     S3Client
	bucketName string
	key        string
}

func NewS3Store(client S3Client, bucketName, profile string) *S3Store {
	return &S3Store{
		client:     client,
		bucketName: bucketName,
		key:        fmt.Sprintf("preferences/%s.json", profile),
	}
}

func (s *S3Store) Load(ctx context.Context) (*models.Preferences, error) {
	if s.bucketName == "" {
		return nil, fmt.Errorf("empty bucket name")
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return emptyPreferences(), nil
		}
		return nil, fmt.Errorf("getting %s from S3: %w", s.key, err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			log.Error().Err(err).Msg("Error closing S3 object body")
		}
	}(result.Body)

	var prefs models.Preferences
	if err := json.NewDecoder(result.Body).Decode(&prefs); err != nil {
		return nil, fmt.Errorf("decoding preferences: %w", err)
	}

	return normalize(&prefs), nil
}

func (s *S3Store) Save(ctx context.Context, prefs *models.Preferences) error {
	if s.bucketName == "" {
		return fmt.Errorf("empty bucket name")
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(normalize(prefs)); err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("saving to S3: %w", err)
	}

	log.Debug().Str("key", s.key).Msg("Saved preferences to S3")
	return nil
}
