package export

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"burger_pos/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const DefaultKeyPrefix = "closings"

// objectPutter is the slice of the S3 client the uploader needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader copies closing artifacts to a bucket under "<prefix>/<filename>".
type S3Uploader struct {
	client objectPutter
	bucket string
	prefix string
}

func NewS3Uploader(region, bucket string) (*S3Uploader, error) {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return newS3Uploader(s3.NewFromConfig(cfg), bucket), nil
}

func newS3Uploader(client objectPutter, bucket string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, prefix: DefaultKeyPrefix}
}

// Key returns the object key an artifact is stored under.
func (u *S3Uploader) Key(artifact *models.ExportArtifact) string {
	return path.Join(u.prefix, artifact.Filename)
}

func (u *S3Uploader) Upload(artifact *models.ExportArtifact) error {
	ctx := context.Background()
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(u.Key(artifact)),
		Body:        bytes.NewReader(artifact.Data),
		ContentType: aws.String(artifact.ContentType),
	})
	if err != nil {
		return fmt.Errorf("unable to upload %s to S3: %w", artifact.Filename, err)
	}
	return nil
}
