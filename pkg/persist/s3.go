package persist

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
)

// S3Client is the subset of the S3 API the store needs.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store persists snapshots as a JSON object in S3. Useful for terminals
// that roam between machines (cloud shells, jump hosts).
//
// Example:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	store := persist.NewS3Store(s3.NewFromConfig(cfg), "my-bucket", "termo/history.json")
type S3Store struct {
	client S3Client
	bucket string
	key    string
}

// NewS3Store creates a store writing to s3://bucket/key.
func NewS3Store(client S3Client, bucket, key string) *S3Store {
	return &S3Store{client: client, bucket: bucket, key: key}
}

// Save implements Store.
func (s *S3Store) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("persist: encode snapshot: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("persist: s3 upload failed: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *S3Store) Load(ctx context.Context) (*Snapshot, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("persist: s3 download failed: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("persist: read snapshot body: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("persist: decode snapshot: %w", err)
	}
	return &snap, nil
}
