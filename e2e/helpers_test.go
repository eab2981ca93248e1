package e2e_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
)

var (
	minioOnce     sync.Once
	minioEndpoint string
	minioUser     string
	minioPassword string
	minioSetupErr error
)

// getSharedMinio starts one MinIO container for the whole test run and
// returns its endpoint (host:port) and credentials.
func getSharedMinio(t *testing.T) (endpoint, user, password string) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	minioOnce.Do(func() {
		ctx := context.Background()

		container, err := tcminio.Run(ctx, "minio/minio:RELEASE.2024-01-16T16-07-38Z")
		if err != nil {
			minioSetupErr = err
			return
		}

		// The container is shared across tests; the testcontainers
		// reaper collects it after the process exits.
		connectionStr, err := container.ConnectionString(ctx)
		if err != nil {
			minioSetupErr = err
			return
		}

		minioEndpoint = strings.TrimPrefix(connectionStr, "http://")
		minioUser = container.Username
		minioPassword = container.Password
	})

	if minioSetupErr != nil {
		t.Fatalf("failed to start minio container: %v", minioSetupErr)
	}

	return minioEndpoint, minioUser, minioPassword
}

// seedBucket creates a bucket and uploads the given objects into it.
func seedBucket(t *testing.T, bucket string, objects map[string]seedObject) {
	t.Helper()

	endpoint, user, password := getSharedMinio(t)
	ctx := context.Background()

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(user, password, ""),
		Secure: false,
	})
	if err != nil {
		t.Fatalf("failed to create minio client: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		t.Fatalf("failed to check bucket: %v", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			t.Fatalf("failed to create bucket: %v", err)
		}
	}

	for key, obj := range objects {
		_, err := client.PutObject(ctx, bucket, key,
			strings.NewReader(obj.Content), int64(len(obj.Content)),
			minio.PutObjectOptions{ContentType: obj.ContentType})
		if err != nil {
			t.Fatalf("failed to upload %q: %v", key, err)
		}
	}
}

type seedObject struct {
	Content     string
	ContentType string
}
