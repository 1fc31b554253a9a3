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

package cloud

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/sirupsen/logrus"
	"gocloud.dev/blob"
)

// MaxRetries is the number of times a failed upload is retried.
var MaxRetries uint64 = 4

// readBlob reads the given blob from the given bucket.
func readBlob(ctx context.Context, bucket *blob.Bucket, key string) ([]byte, error) {
	var b bytes.Buffer
	r, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, fmt.Errorf("cloud: reading blob key %s: %v", key, err)
	}
	defer r.Close()
	if _, err = io.Copy(&b, r); err != nil {
		return nil, fmt.Errorf("cloud: reading blob key %s: %v", key, err)
	}
	return b.Bytes(), nil
}

// writeBlob copies r to the given key in the given bucket. If the copy
// fails the write is cancelled so no partial blob is left behind.
func writeBlob(ctx context.Context, bucket *blob.Bucket, key string, r io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w, err := bucket.NewWriter(ctx, key, &blob.WriterOptions{})
	if err != nil {
		return fmt.Errorf("cloud: creating writer for blob %s: %v", key, err)
	}
	if _, err = io.Copy(w, r); err != nil {
		cancel()
		w.Close()
		return fmt.Errorf("cloud: copying blob %s: %v", key, err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("cloud: writing blob %s: %v", key, err)
	}
	return nil
}

// ReadFile returns the contents of the blob at path, which must be
// in the format 'provider://bucket/key'.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	bucketName, key, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	bucket, err := OpenBucket(ctx, bucketName)
	if err != nil {
		return nil, err
	}
	defer bucket.Close()
	return readBlob(ctx, bucket, key)
}

// Upload copies the local file localPath to the blob at path, retrying
// with exponential backoff if the write fails.
func Upload(ctx context.Context, localPath, path string) error {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("cloud: opening file '%s' for upload: %v", localPath, err)
	}
	bucketName, key, err := splitPath(path)
	if err != nil {
		return err
	}
	bucket, err := OpenBucket(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("cloud: opening bucket to upload file '%s': %v", path, err)
	}
	defer bucket.Close()

	b := backoff.WithMaxRetries(backoff.WithContext(backoff.NewExponentialBackOff(), ctx), MaxRetries)
	return backoff.RetryNotify(
		func() error {
			return writeBlob(ctx, bucket, key, bytes.NewReader(data))
		},
		b,
		func(err error, d time.Duration) {
			logrus.WithFields(logrus.Fields{
				"path":  path,
				"delay": d,
			}).Warnf("%v: retrying", err)
		},
	)
}
