// Package fsxs3 implements fsx.FileSystem on top of Amazon S3.
package fsxs3

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Ejeanjules/capstone-project/pkg/fsx"
)

type S3FileSystem struct {
	client *s3.Client
	bucket string
	prefix string
}

var _ fsx.FileSystem = (*S3FileSystem)(nil)

// NewS3FileSystem keys every object under the given prefix inside the bucket.
func NewS3FileSystem(client *s3.Client, bucket, prefix string) *S3FileSystem {
	return &S3FileSystem{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (f *S3FileSystem) Join(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.Trim(p, "/"); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, "/")
}

func (f *S3FileSystem) key(path string) string {
	path = strings.TrimPrefix(path, "/")
	if f.prefix == "" {
		return path
	}
	return f.prefix + "/" + path
}

func (f *S3FileSystem) WriteFile(ctx context.Context, path string, data []byte) error {
	return f.WriteFileStream(ctx, path, bytes.NewReader(data))
}

func (f *S3FileSystem) WriteFileStream(ctx context.Context, path string, r io.Reader) error {
	_, err := f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(path)),
		Body:   r,
	})
	return err
}

func (f *S3FileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	stream, err := f.ReadFileStream(ctx, path)
	if err != nil {
		return nil, err
	}
	defer stream.Close()
	return io.ReadAll(stream)
}

func (f *S3FileSystem) ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(path)),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

func (f *S3FileSystem) DeleteFile(ctx context.Context, path string) error {
	_, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(path)),
	})
	return err
}
