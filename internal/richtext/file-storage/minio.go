package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/aisa-it/richtext/internal/richtext/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	s3config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/tus/tusd/v2/pkg/s3store"

	tusd "github.com/tus/tusd/v2/pkg/handler"
)

const tusPrefix = "tus/"

type MinioStorage struct {
	client     *minio.Client
	s3client   *s3.Client
	bucketName string
}

func (s *MinioStorage) GetTUSHandler(cfg *config.Config, baseUrl string, uploadValidator UploadValidator, postUploadHook func(event tusd.HookEvent)) (echo.HandlerFunc, error) {
	store := s3store.New(s.bucketName, s.s3client)
	store.ObjectPrefix = tusPrefix
	composer := tusd.NewStoreComposer()
	store.UseIn(composer)

	return newTUSHandler(composer, cfg, baseUrl, uploadValidator, postUploadHook)
}

func (s *MinioStorage) ClaimUpload(upload tusd.FileInfo, name uuid.UUID, contentType string, metadata *Metadata) error {
	key := upload.Storage["Key"]
	if key == "" {
		return fmt.Errorf("upload %s has no object key", upload.ID)
	}

	dst := minio.CopyDestOptions{
		Bucket:          s.bucketName,
		Object:          name.String(),
		ReplaceMetadata: true,
		UserMetadata:    map[string]string{"Content-Type": contentType},
	}
	if metadata != nil {
		dst.ReplaceTags = true
		dst.UserTags = metadata.GetMap()
	}
	if _, err := s.client.CopyObject(context.Background(), dst, minio.CopySrcOptions{Bucket: s.bucketName, Object: key}); err != nil {
		return err
	}

	if err := s.client.RemoveObject(context.Background(), s.bucketName, key, minio.RemoveObjectOptions{}); err != nil {
		slog.Warn("Remove tus upload object", "key", key, "err", err)
	}
	// служебный объект tusd с описанием загрузки
	s.client.RemoveObject(context.Background(), s.bucketName, key+".info", minio.RemoveObjectOptions{})
	return nil
}

func (s *MinioStorage) Save(data []byte, name uuid.UUID, contentType string, metadata *Metadata) error {
	return s.put(func() io.Reader { return bytes.NewReader(data) }, int64(len(data)), name, contentType, metadata)
}

func (s *MinioStorage) SaveReader(reader io.Reader, fileSize int64, name uuid.UUID, contentType string, metadata *Metadata) error {
	// поток нельзя перечитать, повторы только для Save
	_, err := s.client.PutObject(context.Background(), s.bucketName, name.String(), reader, fileSize, putOptions(contentType, metadata))
	if err != nil {
		resp := minio.ToErrorResponse(err)
		slog.Error("Upload file to minio", "name", name, "code", resp.StatusCode, "msg", resp.Message, "err", err)
	}
	return err
}

func putOptions(contentType string, metadata *Metadata) minio.PutObjectOptions {
	opts := minio.PutObjectOptions{ContentType: contentType}
	if metadata != nil {
		opts.UserTags = metadata.GetMap()
	}
	return opts
}

func (s *MinioStorage) put(body func() io.Reader, size int64, name uuid.UUID, contentType string, metadata *Metadata) error {
	var err error
	for i := range UploadTries {
		_, err = s.client.PutObject(context.Background(),
			s.bucketName,
			name.String(),
			body(),
			size,
			putOptions(contentType, metadata),
		)
		if err != nil {
			resp := minio.ToErrorResponse(err)
			slog.Error("Upload file to minio", "try", i+1, "code", resp.StatusCode, "msg", resp.Message)
			time.Sleep(time.Second * time.Duration(i+1))
			continue
		}
		break
	}
	return err
}

func (s *MinioStorage) Load(name uuid.UUID) ([]byte, error) {
	obj, err := s.LoadReader(name)
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	return io.ReadAll(obj)
}

func (s *MinioStorage) LoadReader(name uuid.UUID) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(context.Background(),
		s.bucketName,
		name.String(),
		minio.GetObjectOptions{},
	)
	if err != nil {
		return nil, minioNotFound(err)
	}
	// GetObject не обращается к хранилищу до первого чтения
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, minioNotFound(err)
	}
	return obj, nil
}

func (s *MinioStorage) Delete(name uuid.UUID) error {
	return s.client.RemoveObject(
		context.Background(),
		s.bucketName,
		name.String(),
		minio.RemoveObjectOptions{},
	)
}

func (s *MinioStorage) Exist(name uuid.UUID) (bool, error) {
	_, err := s.client.StatObject(
		context.Background(),
		s.bucketName,
		name.String(),
		minio.StatObjectOptions{},
	)
	if err != nil {
		if minioNotFound(err) == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *MinioStorage) ListRoot(fn func(info FileInfo) error) error {
	for obj := range s.client.ListObjects(context.Background(), s.bucketName, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return obj.Err
		}
		if _, err := uuid.FromString(obj.Key); err != nil {
			continue
		}
		if err := fn(FileInfo{
			Name:        obj.Key,
			Size:        obj.Size,
			ContentType: obj.ContentType,
			CreatedAt:   obj.LastModified,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *MinioStorage) Move(old string, new string) error {
	if _, err := s.client.CopyObject(context.Background(),
		minio.CopyDestOptions{
			Bucket: s.bucketName,
			Object: new,
		},
		minio.CopySrcOptions{
			Bucket: s.bucketName,
			Object: old,
		},
	); err != nil {
		return minioNotFound(err)
	}
	return s.client.RemoveObject(context.Background(), s.bucketName, old, minio.RemoveObjectOptions{})
}

func (s *MinioStorage) GetFileInfo(name uuid.UUID) (*FileInfo, error) {
	stat, err := s.client.StatObject(context.Background(), s.bucketName, name.String(), minio.StatObjectOptions{})
	if err != nil {
		return nil, minioNotFound(err)
	}

	return &FileInfo{
		Name:        name.String(),
		Size:        stat.Size,
		ContentType: stat.ContentType,
		CreatedAt:   stat.LastModified,
	}, nil
}

func minioNotFound(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrNotFound
	}
	return err
}

// NewMinioStorage подключается к S3-совместимому хранилищу и создает бакет, если его нет.
// endpoint - адрес со схемой, например http://minio:9000.
func NewMinioStorage(endpoint, region, accessKeyID, secretAccessKey, bucketName string) (FileStorage, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse s3 endpoint: %w", err)
	}
	if u.Host == "" {
		// адрес без схемы
		u = &url.URL{Scheme: "http", Host: endpoint}
	}
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(u.Host, &minio.Options{
		Creds:  miniocreds.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: u.Scheme == "https",
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	s3cfg, err := s3config.LoadDefaultConfig(context.Background(),
		s3config.WithRegion(region),
		s3config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
	)
	if err != nil {
		return nil, err
	}

	s3client := s3.NewFromConfig(s3cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(u.Scheme + "://" + u.Host)
		o.UsePathStyle = true
	})

	exists, err := client.BucketExists(context.Background(), bucketName)
	if err != nil {
		return nil, err
	}

	if !exists {
		// Create bucket if not exist
		if err := client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	return &MinioStorage{client, s3client, bucketName}, nil
}
