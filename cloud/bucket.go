/*
Copyright © 2021 the nfix authors.
This file is part of nfix.

nfix is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

nfix is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with nfix.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package cloud reads and writes output files in blob storage.
package cloud

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob" // registers gs://
	_ "gocloud.dev/blob/s3blob"  // registers s3://
)

// IsBlob returns whether the given filename represents a blob.
// (i.e., if it starts with `gs://`, 's3://', or 'file://').
func IsBlob(path string) bool {
	return strings.HasPrefix(path, "gs://") || strings.HasPrefix(path, "s3://") || strings.HasPrefix(path, "file://")
}

// OpenBucket returns the blob storage bucket specified by bucketName,
// where bucketName must be in the format 'provider://name' where provider
// is the name of the storage provider and name is the name of the bucket.
// For the "file" provider, name is a directory on the local filesystem
// (e.g., for testing). "gs" is Google Cloud Storage and "s3" is AWS S3;
// credentials are taken from the environment.
func OpenBucket(ctx context.Context, bucketName string) (*blob.Bucket, error) {
	u, err := url.Parse(bucketName)
	if err != nil {
		return nil, fmt.Errorf("cloud.OpenBucket: %v", err)
	}
	switch u.Scheme {
	case "file":
		return fileblob.OpenBucket(u.Host+u.Path, nil)
	case "gs", "s3":
		return blob.OpenBucket(ctx, u.Scheme+"://"+u.Host)
	default:
		return nil, fmt.Errorf("cloud.OpenBucket: invalid provider %s", u.Scheme)
	}
}

// splitPath splits a blob path into a bucket name suitable for
// OpenBucket and a key within the bucket. For file:// paths the bucket
// is the containing directory.
func splitPath(p string) (bucketName, key string, err error) {
	u, err := url.Parse(p)
	if err != nil {
		return "", "", fmt.Errorf("cloud: parsing blob path '%s': %v", p, err)
	}
	if u.Scheme == "file" {
		full := u.Host + u.Path
		return "file://" + path.Dir(full), path.Base(full), nil
	}
	key = strings.TrimLeft(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("cloud: blob path '%s' has no key", p)
	}
	return u.Scheme + "://" + u.Host, key, nil
}

// CheckPath returns an error if path is not a valid blob location or
// its bucket cannot be opened.
func CheckPath(ctx context.Context, path string) error {
	bucketName, _, err := splitPath(path)
	if err != nil {
		return err
	}
	bucket, err := OpenBucket(ctx, bucketName)
	if err != nil {
		return err
	}
	return bucket.Close()
}
