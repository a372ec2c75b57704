package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/factuurlijk/factuurlijk/internal/config"
	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
)

const (
	defaultPresignExpiryDuration = 30 * time.Minute
)

var (
	validObjectTypes = []ObjectType{ObjectTypeInvoicePdf, ObjectTypeLogo}
)

type Service interface {
	UploadObject(ctx context.Context, object *Object) (string, error)
	GetPresignedUrl(ctx context.Context, id string, objType ObjectType) (string, error)
	GetObject(ctx context.Context, id string, objType ObjectType) ([]byte, error)
	Exists(ctx context.Context, id string, objType ObjectType) (bool, error)
}

type s3ServiceImpl struct {
	client *s3.Client
	config *config.StorageConfig
}

func NewService(cfg *config.Configuration) (Service, error) {
	if !cfg.Storage.Enabled {
		return nil, nil
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(cfg.Storage.Region),
	)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to load aws config").
			Mark(ierr.ErrHTTPClient)
	}

	return &s3ServiceImpl{
		config: &cfg.Storage,
		client: s3.NewFromConfig(awsCfg),
	}, nil
}

func (s *s3ServiceImpl) getObjectKey(id string, objType ObjectType) (string, error) {
	switch objType {
	case ObjectTypeInvoicePdf:
		if s.config.PdfBucket.KeyPrefix != "" {
			return fmt.Sprintf("%s/%s.pdf", s.config.PdfBucket.KeyPrefix, id), nil
		}
		return fmt.Sprintf("%s.pdf", id), nil
	case ObjectTypeLogo:
		if s.config.LogoBucket.KeyPrefix != "" {
			return fmt.Sprintf("%s/%s", s.config.LogoBucket.KeyPrefix, id), nil
		}
		return id, nil
	default:
		return "", ierr.NewErrorf("invalid object type: %s", objType).
			WithHintf("valid object types are: %v", validObjectTypes).
			Mark(ierr.ErrSystem)
	}
}

func (s *s3ServiceImpl) getBucket(objType ObjectType) string {
	switch objType {
	case ObjectTypeInvoicePdf:
		return s.config.PdfBucket.Bucket
	case ObjectTypeLogo:
		return s.config.LogoBucket.Bucket
	default:
		return ""
	}
}

func (s *s3ServiceImpl) getContentType(kind ObjectKind) string {
	switch kind {
	case ObjectKindPdf:
		return "application/pdf"
	case ObjectKindImage:
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

// Exists implements Service.
func (s *s3ServiceImpl) Exists(ctx context.Context, id string, objType ObjectType) (bool, error) {
	key, err := s.getObjectKey(id, objType)
	if err != nil {
		return false, err
	}

	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.getBucket(objType)),
		Key:    aws.String(key),
	})

	if err != nil {
		var nsk *types.NoSuchKey
		var nf *types.NotFound
		if errors.As(err, &nsk) || errors.As(err, &nf) {
			return false, nil
		}
		return false, ierr.WithError(err).
			WithHint("failed to check if object exists").
			WithMessagef("bucket:%s, key:%s", s.getBucket(objType), key).
			Mark(ierr.ErrHTTPClient)
	}

	return true, nil
}

// GetPresignedUrl implements Service.
func (s *s3ServiceImpl) GetPresignedUrl(ctx context.Context, id string, objType ObjectType) (string, error) {
	key, err := s.getObjectKey(id, objType)
	if err != nil {
		return "", err
	}

	presigner := s3.NewPresignClient(s.client)
	result, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.getBucket(objType)),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(defaultPresignExpiryDuration))
	if err != nil {
		return "", ierr.WithError(err).WithHint("failed to get presigned url").
			WithMessagef("bucket:%s, key:%s", s.getBucket(objType), key).
			Mark(ierr.ErrHTTPClient)
	}

	return result.URL, nil
}

// UploadObject implements Service. Returns the object key the blob was
// stored under.
func (s *s3ServiceImpl) UploadObject(ctx context.Context, object *Object) (string, error) {
	key, err := s.getObjectKey(object.ID, object.Type)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.getBucket(object.Type)),
		Key:         aws.String(key),
		Body:        bytes.NewReader(object.Data),
		ContentType: aws.String(s.getContentType(object.Kind)),
	})
	if err != nil {
		return "", ierr.WithError(err).WithHint("failed to upload object").
			WithMessagef("bucket:%s, key:%s", s.getBucket(object.Type), key).
			Mark(ierr.ErrHTTPClient)
	}

	return key, nil
}

// GetObject implements Service.
func (s *s3ServiceImpl) GetObject(ctx context.Context, id string, objType ObjectType) ([]byte, error) {
	key, err := s.getObjectKey(id, objType)
	if err != nil {
		return nil, err
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.getBucket(objType)),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to get object").
			WithMessagef("bucket:%s, key:%s", s.getBucket(objType), key).
			Mark(ierr.ErrHTTPClient)
	}

	defer result.Body.Close()

	return io.ReadAll(result.Body)
}
