package assets

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// immutableCacheControl suits fingerprinted names: the content at a
// given key never changes.
const immutableCacheControl = "public, max-age=31536000, immutable"

// s3API is the slice of the S3 client the publisher needs. Tests
// substitute a fake.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads fingerprinted assets to an S3 bucket.
type Publisher struct {
	client s3API
	bucket string
	prefix string
}

// NewPublisher creates a Publisher targeting bucket. prefix is
// prepended to every object key.
func NewPublisher(client *s3.Client, bucket, prefix string) *Publisher {
	return &Publisher{client: client, bucket: bucket, prefix: prefix}
}

// Publish uploads every fingerprinted file named by the manifest from
// dir, plus the manifest itself. It returns the number of objects
// uploaded.
func (p *Publisher) Publish(ctx context.Context, m *Manifest, dir string) (int, error) {
	uploaded := 0
	for _, source := range m.Entries() {
		hashed := m.Resolve(source)
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(hashed)))
		if err != nil {
			return uploaded, fmt.Errorf("assets: read %s: %w", hashed, err)
		}
		if err := p.put(ctx, hashed, data, immutableCacheControl); err != nil {
			return uploaded, err
		}
		uploaded++
	}

	manifestPath := filepath.Join(dir, "manifest.json")
	if data, err := os.ReadFile(manifestPath); err == nil {
		// The manifest key is stable, so it must not be cached.
		if err := p.put(ctx, "manifest.json", data, "no-cache"); err != nil {
			return uploaded, err
		}
		uploaded++
	}
	return uploaded, nil
}

func (p *Publisher) put(ctx context.Context, key string, data []byte, cacheControl string) error {
	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.bucket),
		Key:          aws.String(p.prefix + key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(cacheControl),
	})
	if err != nil {
		return fmt.Errorf("assets: upload %s: %w", key, err)
	}
	return nil
}
