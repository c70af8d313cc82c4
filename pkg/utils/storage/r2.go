package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	appconfig "homevista_backend/pkg/config"
)

// BrandingStore keeps agency branding assets (the logo the settings
// screen uploads) on R2. Property photos live on the media CDN; this
// bucket only holds back-office assets.
type BrandingStore struct {
	cfg appconfig.R2Config
}

func NewBrandingStore(cfg appconfig.R2Config) *BrandingStore {
	return &BrandingStore{cfg: cfg}
}

func (s *BrandingStore) client() (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", s.cfg.AccountID))
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return client, nil
}

// UploadLogo stores a processed logo under an agency-scoped, URL-safe key
// and returns the public CDN URL.
func (s *BrandingStore) UploadLogo(body *bytes.Buffer, contentType, agencyName, filename string) (string, error) {
	safeAgency := slug.Make(agencyName)
	if safeAgency == "" {
		safeAgency = "agency"
	}

	ext := filepath.Ext(filename)
	uniqueFilename := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.New().String(), ext)
	objectKey := filepath.Join("branding", safeAgency, uniqueFilename)

	client, err := s.client()
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(body.Bytes()),
		ContentType: aws.String(contentType),
	}

	if _, err := client.PutObject(context.TODO(), input); err != nil {
		return "", fmt.Errorf("could not upload file to R2: %v", err)
	}

	return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.cfg.CDNBase, "/"), objectKey), nil
}

// DeleteLogo removes a previously uploaded logo by its public URL.
func (s *BrandingStore) DeleteLogo(fullURL string) error {
	objectKey := strings.TrimPrefix(fullURL, strings.TrimSuffix(s.cfg.CDNBase, "/")+"/")

	client, err := s.client()
	if err != nil {
		return err
	}

	input := &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(objectKey),
	}

	if _, err := client.DeleteObject(context.TODO(), input); err != nil {
		return fmt.Errorf("could not delete file from R2: %v", err)
	}

	return nil
}
