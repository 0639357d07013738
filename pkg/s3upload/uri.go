package s3upload

import (
	"errors"
	"strings"
)

// ParseURI parses an S3 URI (s3://bucket/key) into bucket and key components.
func ParseURI(uri string) (bucket, key string, err error) {
	if !strings.HasPrefix(uri, "s3://") {
		return "", "", errors.New("invalid S3 URI: must start with s3://")
	}

	path := strings.TrimPrefix(uri, "s3://")
	bucket, key, _ = strings.Cut(path, "/")
	if bucket == "" {
		return "", "", errors.New("invalid S3 URI: missing bucket name")
	}
	return bucket, key, nil
}

// ObjectKey resolves the key a report is stored under. A key that is empty
// or ends in "/" names a prefix; the report is stored beneath it as
// "<runID>.<ext>".
func ObjectKey(key, runID, ext string) string {
	if key == "" || strings.HasSuffix(key, "/") {
		return key + runID + "." + ext
	}
	return key
}
