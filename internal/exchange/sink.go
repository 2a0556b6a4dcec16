package exchange

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ShayCichocki/shikabom/internal/config"
)

// Sink receives an exported document.
type Sink interface {
	Put(ctx context.Context, data []byte) error
	String() string
}

// Source yields a document to import.
type Source interface {
	Get(ctx context.Context) ([]byte, error)
	String() string
}

// S3API is the subset of the S3 client used here.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// NewS3Client builds an S3 client from the export settings. An endpoint
// and path-style addressing allow MinIO and other S3-compatible servers.
func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// ParseS3URL splits s3://bucket/key. A missing bucket falls back to
// defaultBucket.
func ParseS3URL(target, defaultBucket string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(target, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 url: %s", target)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		bucket = defaultBucket
	}
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 url needs a bucket and a key: %s", target)
	}
	return bucket, key, nil
}

// IsS3 reports whether target names an object store location.
func IsS3(target string) bool {
	return strings.HasPrefix(target, "s3://")
}

// FileSink writes to a local path, creating parent directories. The path
// "-" means the Writer (stdout by default).
type FileSink struct {
	Path   string
	Writer io.Writer
}

// Put writes data to the file.
func (f FileSink) Put(_ context.Context, data []byte) error {
	if f.Path == "-" {
		w := f.Writer
		if w == nil {
			w = os.Stdout
		}
		_, err := w.Write(data)
		return err
	}
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(f.Path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	return nil
}

// Get reads the file.
func (f FileSink) Get(_ context.Context) ([]byte, error) {
	if f.Path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return data, nil
}

func (f FileSink) String() string {
	if f.Path == "-" {
		return "stdout"
	}
	return f.Path
}

// S3Sink stores a document as one object.
type S3Sink struct {
	Client      S3API
	Bucket      string
	Key         string
	ContentType string
}

// Put uploads data.
func (s S3Sink) Put(ctx context.Context, data []byte) error {
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
		Body:   bytes.NewReader(data),
	}
	if s.ContentType != "" {
		in.ContentType = aws.String(s.ContentType)
	}
	if _, err := s.Client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("put %s: %w", s, err)
	}
	return nil
}

// Get downloads the object.
func (s S3Sink) Get(ctx context.Context) ([]byte, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s, err)
	}
	return data, nil
}

func (s S3Sink) String() string {
	return "s3://" + s.Bucket + "/" + s.Key
}

// Locator resolves export targets and import sources.
type Locator struct {
	S3 config.S3Config
	// NewClient builds the S3 client on first use. Defaults to NewS3Client.
	NewClient func(ctx context.Context, cfg config.S3Config) (S3API, error)

	client S3API
}

var errNoTarget = errors.New("no target given")

func (l *Locator) s3Client(ctx context.Context) (S3API, error) {
	if l.client != nil {
		return l.client, nil
	}
	newClient := l.NewClient
	if newClient == nil {
		newClient = func(ctx context.Context, cfg config.S3Config) (S3API, error) {
			return NewS3Client(ctx, cfg)
		}
	}
	c, err := newClient(ctx, l.S3)
	if err != nil {
		return nil, err
	}
	l.client = c
	return c, nil
}

func (l *Locator) s3Sink(ctx context.Context, target, contentType string) (S3Sink, error) {
	bucket, key, err := ParseS3URL(target, l.S3.Bucket)
	if err != nil {
		return S3Sink{}, err
	}
	c, err := l.s3Client(ctx)
	if err != nil {
		return S3Sink{}, err
	}
	return S3Sink{Client: c, Bucket: bucket, Key: key, ContentType: contentType}, nil
}

// Sink resolves target, a path, "-" or an s3:// URL.
func (l *Locator) Sink(ctx context.Context, target, contentType string) (Sink, error) {
	if target == "" {
		return nil, errNoTarget
	}
	if IsS3(target) {
		return l.s3Sink(ctx, target, contentType)
	}
	return FileSink{Path: target}, nil
}

// Source resolves target, a path, "-" or an s3:// URL.
func (l *Locator) Source(ctx context.Context, target string) (Source, error) {
	if target == "" {
		return nil, errNoTarget
	}
	if IsS3(target) {
		return l.s3Sink(ctx, target, "")
	}
	return FileSink{Path: target}, nil
}

// ContentType returns the MIME type for an export format.
func ContentType(format string) string {
	if format == FormatCSV {
		return "text/csv"
	}
	return "application/yaml"
}
