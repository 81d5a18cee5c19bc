package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"

	"github.com/minio/minio-go/v7"

	"corecms_back_end/internal/database"
)

// UploadStoreLogo pousse le logo d'une boutique dans MinIO et retourne
// son URL publique. L'objet est rangé sous logos/<slug> pour qu'un nouvel
// upload remplace l'ancien.
func UploadStoreLogo(slug string, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := os.Getenv("MINIO_BUCKET")
	objectName := "logos/" + slug

	_, err = database.MinIO.PutObject(context.Background(), bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}

	url := fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), bucket, objectName)
	return url, nil
}
