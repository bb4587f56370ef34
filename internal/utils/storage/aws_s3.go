package storage

import (
	"Aahar-Backend/internal/utils"
	"context"
	"fmt"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var (
	ErrStorageDisabled  = errors.New("object storage is not configured")
	ErrFileTypeNotAllow = errors.New("file type not allowed")
)

var DocumentTypes = []string{"jpeg", "jpg", "png", "pdf"}

var contentTypes = map[string]string{
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"png":  "image/png",
	"pdf":  "application/pdf",
}

type (
	AwsS3 interface {
		Enabled() bool
		UploadFile(ctx context.Context, file *multipart.FileHeader, folder string, allowed ...string) (string, error)
	}

	putObjectAPI interface {
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	}

	awsS3 struct {
		client putObjectAPI
		bucket string
		region string
	}
)

// NewAwsS3 builds a client from AWS_S3_* settings. Without a bucket the
// returned storage is disabled and every upload fails with ErrStorageDisabled.
func NewAwsS3() AwsS3 {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")
	if bucket == "" {
		return &awsS3{}
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		log.Errorf("load aws config: %v", err)
		return &awsS3{}
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}
}

func (a *awsS3) Enabled() bool {
	return a.client != nil
}

func (a *awsS3) UploadFile(ctx context.Context, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	if !a.Enabled() {
		return "", ErrStorageDisabled
	}

	ext, err := ValidateFileType(file.Filename, allowed...)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer src.Close()

	key := fmt.Sprintf("%s/%s.%s", strings.Trim(folder, "/"), uuid.New().String(), ext)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          src,
		ContentLength: aws.Int64(file.Size),
		ContentType:   aws.String(contentTypes[ext]),
	})
	if err != nil {
		return "", errors.Wrapf(err, "upload %s", key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, key), nil
}

// ValidateFileType returns the lowercase extension of filename when it is
// one of allowed. An empty allowed list accepts DocumentTypes.
func ValidateFileType(filename string, allowed ...string) (string, error) {
	if len(allowed) == 0 {
		allowed = DocumentTypes
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	for _, candidate := range allowed {
		if ext == candidate {
			return ext, nil
		}
	}
	return "", errors.Wrapf(ErrFileTypeNotAllow, "%q", filename)
}
