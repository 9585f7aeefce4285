package issuer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var ErrDocumentNotFound = errors.New("issuer: metadata document not found")

// MetadataStore persists metadata documents and returns the URI a token
// should reference.
type MetadataStore interface {
	Put(ctx context.Context, key string, doc Document) (string, error)
	Get(ctx context.Context, key string) (Document, error)
}

// MemoryMetadataStore keeps documents in process. URIs use the memory:// scheme.
type MemoryMetadataStore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

func NewMemoryMetadataStore() *MemoryMetadataStore {
	return &MemoryMetadataStore{docs: make(map[string]Document)}
}

func (m *MemoryMetadataStore) Put(ctx context.Context, key string, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = doc
	return "memory://metadata/" + key, nil
}

func (m *MemoryMetadataStore) Get(ctx context.Context, key string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[key]
	if !ok {
		return Document{}, ErrDocumentNotFound
	}
	return doc, nil
}

// S3Config configures S3MetadataStore. Endpoint is set for MinIO and other
// S3 compatible services; leave it empty for AWS.
type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string // prefix for returned URIs; defaults to s3://bucket
}

// s3API is the subset of *s3.Client the store uses.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type S3MetadataStore struct {
	client  s3API
	bucket  string
	baseURL string
}

// NewS3MetadataStore builds a client from cfg. Static credentials are used
// when both keys are set; otherwise the default AWS credential chain applies.
func NewS3MetadataStore(ctx context.Context, cfg S3Config) (*S3MetadataStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("issuer: s3 bucket is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("issuer: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3MetadataStore(client, cfg.Bucket, cfg.PublicBaseURL), nil
}

func newS3MetadataStore(client s3API, bucket, baseURL string) *S3MetadataStore {
	if baseURL == "" {
		baseURL = "s3://" + bucket
	}
	return &S3MetadataStore{client: client, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *S3MetadataStore) Put(ctx context.Context, key string, doc Document) (string, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("issuer: put metadata %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

func (s *S3MetadataStore) Get(ctx context.Context, key string) (Document, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return Document{}, ErrDocumentNotFound
		}
		return Document{}, fmt.Errorf("issuer: get metadata %s: %w", key, err)
	}
	defer out.Body.Close()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("issuer: decode metadata %s: %w", key, err)
	}
	return doc, nil
}
