package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// ErrImagesDisabled is returned by uploads when MinIO is not configured.
var (
	ErrImagesDisabled   = errors.New("image storage is not configured")
	ErrUnsupportedImage = errors.New("unsupported image type")
)

const productImagePrefix = "products/"

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Images stores product pictures in a MinIO bucket.
type Images struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

func NewImages(client *minio.Client, bucket, endpoint string, useSSL bool) *Images {
	return &Images{client: client, bucket: bucket, endpoint: endpoint, useSSL: useSSL}
}

func (i *Images) Enabled() bool {
	return i != nil && i.client != nil
}

// Upload stores file under a fresh object name and returns the object name
// and its public URL.
func (i *Images) Upload(ctx context.Context, file *multipart.FileHeader) (string, string, error) {
	if !i.Enabled() {
		return "", "", ErrImagesDisabled
	}

	contentType := file.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", "", fmt.Errorf("%w %q", ErrUnsupportedImage, contentType)
	}

	f, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	object := productImagePrefix + uuid.NewString() + ext
	if _, err := i.client.PutObject(ctx, i.bucket, object, f, file.Size,
		minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return "", "", fmt.Errorf("put object: %w", err)
	}
	return object, i.PublicURL(object), nil
}

func (i *Images) PublicURL(object string) string {
	scheme := "http"
	if i.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, i.endpoint, i.bucket, object)
}

// SignedURL presigns a GET for object, which may also be a public URL
// previously returned by Upload.
func (i *Images) SignedURL(ctx context.Context, object string, ttl time.Duration) (string, error) {
	if !i.Enabled() {
		return "", ErrImagesDisabled
	}
	key := strings.TrimPrefix(object, i.PublicURL(""))
	key = path.Clean("/" + key)[1:]

	signed, err := i.client.PresignedGetObject(ctx, i.bucket, key, ttl, make(url.Values))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return signed.String(), nil
}
