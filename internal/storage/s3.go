package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const durationMetaKey = "duration"

// Object is the result of one upload to the media host.
type Object struct {
	URL      string
	Key      string
	Duration float64 // seconds; 0 when unknown
}

// Store is the media-upload collaborator: one upload, one probe, one
// best-effort delete for orphan cleanup.
type Store interface {
	Upload(ctx context.Context, key, contentType string, data []byte, meta map[string]string) (Object, error)
	Probe(ctx context.Context, key string) (float64, error)
	Delete(ctx context.Context, key string) error
}

type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	region   string
	timeout  time.Duration
}

func NewS3Store(ctx context.Context, region, bucket string, uploadTimeout time.Duration) (*S3Store, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg)
	return &S3Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		region:   region,
		timeout:  uploadTimeout,
	}, nil
}

// NewKey builds a collision-free object key under the owner's prefix.
func NewKey(ownerID, filename string) string {
	return ownerID + "/" + uuid.NewString() + filepath.Ext(filename)
}

func (s *S3Store) Upload(ctx context.Context, key, contentType string, data []byte, meta map[string]string) (Object, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		Metadata:    meta,
	})
	if err != nil {
		return Object{}, err
	}

	obj := Object{
		URL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key),
		Key: key,
	}
	if d, ok := meta[durationMetaKey]; ok {
		obj.Duration, _ = strconv.ParseFloat(d, 64)
	}
	return obj, nil
}

// Probe reads the duration metadata of a stored object, mirroring the
// "ask the media host for the probed value" fallback at publish time.
func (s *S3Store) Probe(ctx context.Context, key string) (float64, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, err
	}
	d, ok := head.Metadata[durationMetaKey]
	if !ok {
		return 0, nil
	}
	return strconv.ParseFloat(d, 64)
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Store) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}
