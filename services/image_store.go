package services

import (
	"context"
	"fmt"
	"log"
)

// ImageStoreProvider keeps analyzed images and returns a URL the client can read.
type ImageStoreProvider interface {
	StoreImage(ctx context.Context, image *ImagePayload) (string, error)
}

// WardrobeImageStore uploads images to R2 under a content addressed key.
type WardrobeImageStore struct {
	AWS        AWSServiceProvider
	URLs       URLCacheServiceProvider
	BucketName string
}

func NewWardrobeImageStore(aws AWSServiceProvider, urls URLCacheServiceProvider, bucketName string) *WardrobeImageStore {
	return &WardrobeImageStore{AWS: aws, URLs: urls, BucketName: bucketName}
}

func WardrobeImageKey(image *ImagePayload) string {
	return fmt.Sprintf("wardrobe/%s%s", image.Hash, image.Extension())
}

func (s *WardrobeImageStore) StoreImage(ctx context.Context, image *ImagePayload) (string, error) {
	key := WardrobeImageKey(image)
	uploadURL, err := s.AWS.PresignLink(ctx, s.BucketName, key)
	if err != nil {
		return "", err
	}
	if _, err := s.AWS.UploadToPresignedURL(ctx, uploadURL, image.Data, image.MimeType); err != nil {
		return "", err
	}
	log.Printf("[Storage] Stored %s (%d bytes)", key, len(image.Data))
	return s.URLs.GetReadURL(ctx, key)
}
