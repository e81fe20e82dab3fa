// Package storage publishes generated variants to S3 and hands out short-lived
// download links.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/homecanvas/listing-media-engine/internal/variants"
)

// DefaultLinkExpiry is how long a published variant's download link stays
// valid. Agents share these links directly with sellers, so a day is the
// floor; a week invites stale listing statuses.
const DefaultLinkExpiry = 24 * time.Hour

// PublishedVariant pairs a variant name with its object key and presigned
// download URL.
type PublishedVariant struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	URL  string `json:"url"`
}

// Publisher uploads variants to one bucket. Construct with NewPublisher.
type Publisher struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	linkExpiry    time.Duration
}

// NewPublisher builds a Publisher from the ambient AWS configuration chain
// (env, shared config, instance role).
func NewPublisher(ctx context.Context, bucket string) (*Publisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &Publisher{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        bucket,
		linkExpiry:    DefaultLinkExpiry,
	}, nil
}

// Publish uploads every variant under listings/<listingID>/ and returns a
// presigned GET URL per object. A single failed upload fails the whole
// publish: a partially published variant set is worse than none, because the
// agent would share an incomplete link sheet.
func (p *Publisher) Publish(ctx context.Context, listingID string, vars []variants.Variant) ([]PublishedVariant, error) {
	published := make([]PublishedVariant, 0, len(vars))
	contentType := "image/jpeg"

	for _, v := range vars {
		key := fmt.Sprintf("listings/%s/%s.jpg", listingID, v.Name)

		_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      &p.bucket,
			Key:         &key,
			Body:        bytes.NewReader(v.Buffer),
			ContentType: &contentType,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload variant %s: %w", v.Name, err)
		}

		url, err := p.presignedURL(ctx, key)
		if err != nil {
			return nil, err
		}

		published = append(published, PublishedVariant{Name: v.Name, Key: key, URL: url})
		log.Debug().Str("key", key).Msg("Variant published")
	}

	log.Info().
		Str("listing_id", listingID).
		Int("variants", len(published)).
		Msg("Variant set published to S3")

	return published, nil
}

func (p *Publisher) presignedURL(ctx context.Context, key string) (string, error) {
	result, err := p.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &p.bucket, Key: &key,
	}, func(opts *s3.PresignOptions) {
		opts.Expires = p.linkExpiry
	})
	if err != nil {
		return "", fmt.Errorf("presign GetObject: %w", err)
	}
	return result.URL, nil
}
