package backup

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// DefaultRegion is used when S3Config.Region is empty.
const DefaultRegion = "us-east-1"

// S3Config holds S3-compatible bucket settings.
type S3Config struct {
	// Bucket is required. An empty bucket disables S3 backups in the CLI.
	Bucket    string `env:"BACKUP_S3_BUCKET"`
	AccessKey string `env:"BACKUP_S3_ACCESS_KEY"`
	SecretKey string `env:"BACKUP_S3_SECRET_KEY"`

	// Endpoint targets MinIO or another S3-compatible service.
	Endpoint string `env:"BACKUP_S3_ENDPOINT"`
	Region   string `env:"BACKUP_S3_REGION" envDefault:"us-east-1"`

	// Prefix is prepended to every object key.
	Prefix string `env:"BACKUP_S3_PREFIX" envDefault:"content-backups"`

	PathStyle bool `env:"BACKUP_S3_PATH_STYLE"`
}

// S3Store uploads snapshots to a bucket under <prefix>/<name>/<timestamp>-<uuid>.bak.
type S3Store struct {
	client *s3.Client
	now    func() time.Time
	cfg    S3Config
}

// NewS3Store creates a store from cfg.
func NewS3Store(cfg S3Config) (*S3Store, error) {
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if cfg.Bucket == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, ErrInvalidConfig
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &S3Store{
		client: s3.New(s3.Options{}, opts...),
		now:    time.Now,
		cfg:    cfg,
	}, nil
}

// Save uploads data and returns the object key.
func (s *S3Store) Save(ctx context.Context, name string, data []byte) (string, error) {
	key := s.buildKey(name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/octet-stream"),
	})
	if err != nil {
		return "", wrapS3Error(err, ErrSaveFailed)
	}
	return key, nil
}

// Load downloads a snapshot.
func (s *S3Store) Load(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrNotFound)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *S3Store) buildKey(name string) string {
	file := stamp(s.now()) + "-" + uuid.NewString() + ".bak"
	parts := []string{strings.Trim(s.cfg.Prefix, "/"), baseName(name), file}
	if parts[0] == "" {
		parts = parts[1:]
	}
	return path.Join(parts...)
}

var _ Store = (*S3Store)(nil)
