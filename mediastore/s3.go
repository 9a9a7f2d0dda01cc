// Package mediastore publishes generated audio to S3.
package mediastore

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/rs/zerolog/log"
)

type S3Config struct {
	Bucket string
	Prefix string
	Region string
}

type S3Publisher struct {
	s3Svc s3iface.S3API
	cfg   S3Config
}

func NewS3Publisher(cfg S3Config) (*S3Publisher, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(cfg.Region)})
	if err != nil {
		return nil, fmt.Errorf("creating aws session: %w", err)
	}
	return NewS3PublisherWithClient(s3.New(sess), cfg), nil
}

func NewS3PublisherWithClient(client s3iface.S3API, cfg S3Config) *S3Publisher {
	return &S3Publisher{s3Svc: client, cfg: cfg}
}

// Publish uploads localPath and returns the object URL.
func (p *S3Publisher) Publish(ctx context.Context, localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	key := p.Key(localPath)
	_, err = p.s3Svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.cfg.Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String("audio/wav"),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s to s3: %w", key, err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", p.cfg.Bucket, key)
	log.Debug().Str("key", key).Msg("Uploaded audio")
	return url, nil
}

// Key is the object key for a local file: <prefix>/<file name>.
func (p *S3Publisher) Key(localPath string) string {
	name := filepath.Base(localPath)
	prefix := strings.Trim(p.cfg.Prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
