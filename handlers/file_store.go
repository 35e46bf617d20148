package handlers

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectStore persists uploaded images and hands back a public URL plus
// the key needed to delete the object later. GCSStore backs production;
// LocalStore backs development and tests.
type ObjectStore interface {
	Upload(filename string, r io.Reader) (url string, publicID string, err error)
	Delete(publicID string) error
}

// NewObjectStoreFromEnv picks the store: a GCS bucket when
// GCS_BUCKET_NAME is set, a local directory otherwise.
func NewObjectStoreFromEnv() ObjectStore {
	if bucket := os.Getenv("GCS_BUCKET_NAME"); bucket != "" {
		store, err := NewGCSStore(bucket)
		if err != nil {
			log.Printf("❌ GCS store init failed, falling back to local storage: %v", err)
		} else {
			log.Printf("✅ Using GCS bucket %s for uploads", bucket)
			return store
		}
	}
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "./uploads"
	}
	return NewLocalStore(dir)
}

// objectKey builds a collision-free object name keeping the original
// extension so content-type sniffing keeps working.
func objectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("uploads/%s/%s%s", time.Now().Format("2006/01"), uuid.New().String(), ext)
}
