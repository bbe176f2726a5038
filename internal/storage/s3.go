package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type S3Config struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	UseSSL        bool
	PublicBaseURL string
}

type S3BlobStore struct {
	client  *s3.S3
	bucket  string
	baseURL string
}

func NewS3BlobStore(cfg S3Config) (*S3BlobStore, error) {
	s3Config := &aws.Config{
		Region:           aws.String(cfg.Region),
		DisableSSL:       aws.Bool(!cfg.UseSSL),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		s3Config.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKey != "" {
		s3Config.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, err
	}

	return &S3BlobStore{
		client:  s3.New(sess),
		bucket:  cfg.Bucket,
		baseURL: s3BaseURL(cfg),
	}, nil
}

// s3BaseURL is where objects of the bucket are publicly reachable.
func s3BaseURL(cfg S3Config) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		if !strings.Contains(endpoint, "://") {
			scheme := "https"
			if !cfg.UseSSL {
				scheme = "http"
			}
			endpoint = scheme + "://" + endpoint
		}
		return strings.TrimRight(endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

func (s *S3BlobStore) Upload(ctx context.Context, name string, content []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
		Body:   bytes.NewReader(content),
		ACL:    aws.String(s3.ObjectCannedACLPublicRead),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	_, err := s.client.PutObjectWithContext(ctx, input)
	return err
}

func (s *S3BlobStore) PublicURL(name string) string {
	return joinURL(s.baseURL, "/", name)
}
