package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "github.com/SHAMIR-467/DecorationStoreWithARview-sub000/config"
)

var (
	S3Client      *s3.Client
	PresignClient *s3.PresignClient

	s3Mu sync.Mutex
)

// ErrS3NotConfigured is returned when no bucket is configured.
var ErrS3NotConfigured = errors.New("AWS_BUCKET_NAME is not set")

// InitS3 initializes the S3 client
func InitS3() error {
	s3Mu.Lock()
	defer s3Mu.Unlock()
	if S3Client != nil {
		return nil
	}
	if appConfig.AWSBucketName == "" {
		return ErrS3NotConfigured
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(appConfig.AWSRegion),
	)
	if err != nil {
		return fmt.Errorf("unable to load SDK config, %w", err)
	}

	S3Client = s3.NewFromConfig(cfg)
	PresignClient = s3.NewPresignClient(S3Client)
	log.Println("S3 Client Initialized")
	return nil
}

// UploadFileToS3 uploads a file to S3 and returns the Object Key
func UploadFileToS3(ctx context.Context, file io.Reader, objectKey string, contentType string) (string, error) {
	if err := InitS3(); err != nil {
		return "", err
	}

	_, err := S3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(appConfig.AWSBucketName),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return objectKey, nil
}

// GetPresignedURL generates a presigned GET URL for a product image or AR model key
func GetPresignedURL(ctx context.Context, objectKey string) (string, error) {
	if err := InitS3(); err != nil {
		return "", err
	}

	request, err := PresignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(appConfig.AWSBucketName),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(1*time.Hour))
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}

	return request.URL, nil
}
