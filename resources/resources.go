package resources

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"
)

const S3Scheme = "s3://"

var ErrS3NotConfigured = errors.New("resources: s3 path given but no s3 client configured")

// Downloader is the part of the S3 client used to fetch resources.
type Downloader interface {
	Download(key string) ([]byte, error)
}

// Uploader is the part of the S3 client used to store reports.
type Uploader interface {
	Upload(data string, key string) error
}

// Store opens local files or s3://<key> objects from the configured bucket.
type Store struct {
	S3 interface {
		Downloader
		Uploader
	}
}

func IsS3(path string) bool {
	return strings.HasPrefix(path, S3Scheme)
}

func S3Key(path string) string {
	return strings.TrimPrefix(path, S3Scheme)
}

// AnyS3 reports whether any of the paths points to S3.
func AnyS3(paths ...string) bool {
	for _, p := range paths {
		if IsS3(p) {
			return true
		}
	}
	return false
}

func (store Store) Open(path string) (io.ReadCloser, error) {
	if !IsS3(path) {
		return os.Open(path)
	}
	if store.S3 == nil {
		return nil, fmt.Errorf("%w: %s", ErrS3NotConfigured, path)
	}
	data, err := store.S3.Download(S3Key(path))
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", path, err)
	}
	return ioutil.NopCloser(bytes.NewReader(data)), nil
}

func (store Store) ReadAll(path string) ([]byte, error) {
	rc, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ioutil.ReadAll(rc)
}

func (store Store) Write(path string, data []byte) error {
	if !IsS3(path) {
		return ioutil.WriteFile(path, data, 0644)
	}
	if store.S3 == nil {
		return fmt.Errorf("%w: %s", ErrS3NotConfigured, path)
	}
	return store.S3.Upload(string(data), S3Key(path))
}
