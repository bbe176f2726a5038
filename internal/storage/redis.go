package storage

import (
	"bytes"
	"context"
	"errors"
	"io"

	goredis "github.com/redis/go-redis/v9"
	"github.com/swiftport/customs-dashboard/pkg/redis"
)

const (
	blobKeyPrefix = "blob:"
	metaKeyPrefix = "blob-meta:"
)

// RedisBlobStore keeps attachments in redis and serves them back through
// this service under /files/.
type RedisBlobStore struct {
	rdb     redis.RedisAdapter
	baseURL string
}

func NewRedisBlobStore(rdb redis.RedisAdapter, baseURL string) *RedisBlobStore {
	return &RedisBlobStore{rdb: rdb, baseURL: baseURL}
}

func (s *RedisBlobStore) Upload(ctx context.Context, name string, content []byte, contentType string) error {
	p := s.rdb.Prefix()
	_, err := s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, p+blobKeyPrefix+name, content, 0)
		pipe.HSet(ctx, p+metaKeyPrefix+name, "content_type", contentType, "size", len(content))
		return nil
	})
	return err
}

func (s *RedisBlobStore) PublicURL(name string) string {
	return joinURL(s.baseURL, "/files/", name)
}

func (s *RedisBlobStore) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	content, err := s.rdb.Get(ctx, blobKeyPrefix+name)
	if err != nil {
		if errors.Is(err, redis.NilError) {
			return nil, "", ErrBlobNotFound
		}
		return nil, "", err
	}
	meta, err := s.rdb.HGetAll(ctx, metaKeyPrefix+name)
	if err != nil {
		return nil, "", err
	}
	contentType := meta["content_type"]
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return io.NopCloser(bytes.NewReader(content)), contentType, nil
}
