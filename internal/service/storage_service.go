package service

import (
	"adhyeta_backend/internal/config"
	"adhyeta_backend/pkg/logger"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageService stores uploaded paper PDFs either on local disk or in
// a minio bucket, selected by config.
type StorageService struct {
	Cfg    *config.Config
	client *minio.Client
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	s := &StorageService{Cfg: cfg}

	if cfg.Storage.Type == "minio" {
		client, err := minio.New(cfg.Storage.MinioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.MinioAccessID, cfg.Storage.MinioSecret, ""),
			Secure: cfg.Storage.MinioUseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		s.client = client

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		exists, err := client.BucketExists(ctx, cfg.Storage.MinioBucket)
		if err != nil {
			return nil, fmt.Errorf("minio bucket check: %w", err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, cfg.Storage.MinioBucket, minio.MakeBucketOptions{}); err != nil {
				return nil, fmt.Errorf("minio bucket create: %w", err)
			}
		}
	}

	return s, nil
}

// SavePaper stores the upload under a generated name and returns the
// URL to record on the catalog resource.
func (s *StorageService) SavePaper(ctx context.Context, reader io.Reader, size int64, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".pdf" {
		return "", fmt.Errorf("unsupported file type %q, only PDF is accepted", ext)
	}

	object := fmt.Sprintf("papers/%s%s", uuid.New().String(), ext)

	if s.client != nil {
		_, err := s.client.PutObject(ctx, s.Cfg.Storage.MinioBucket, object, reader, size, minio.PutObjectOptions{
			ContentType: "application/pdf",
		})
		if err != nil {
			return "", fmt.Errorf("minio upload: %w", err)
		}

		logger.Log.Info("paper stored", zap.String("object", object), zap.Int64("size", size))
		return fmt.Sprintf("/%s/%s", s.Cfg.Storage.MinioBucket, object), nil
	}

	path := filepath.Join(s.Cfg.Storage.LocalPath, object)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}

	logger.Log.Info("paper stored", zap.String("path", path), zap.Int64("size", size))
	return "/uploads/" + object, nil
}
