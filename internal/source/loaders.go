// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"cinesou/internal/catalog"
)

// maxAssetSize caps how much of a remote catalog is read.
const maxAssetSize = 16 << 20

// File loads the catalog from an XML file on disk.
type File struct {
	Path string
}

// Load implements catalog.Loader.
func (f File) Load(ctx context.Context) ([]catalog.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer fh.Close()
	return ParseXML(fh)
}

// HTTP fetches the catalog XML from a URL.
type HTTP struct {
	URL    string
	Client *http.Client
}

// Load implements catalog.Loader. Any non-2xx status is a load failure.
func (h HTTP) Load(ctx context.Context) ([]catalog.Record, error) {
	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/xml, text/xml")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}
	return ParseXML(io.LimitReader(resp.Body, maxAssetSize))
}

// ObjectGetter reads an object from a bucket. storage.Client satisfies it.
type ObjectGetter interface {
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}

// S3 loads the catalog XML from object storage.
type S3 struct {
	Objects ObjectGetter
	Bucket  string
	Key     string
}

// Load implements catalog.Loader.
func (s S3) Load(ctx context.Context) ([]catalog.Record, error) {
	if s.Objects == nil {
		return nil, fmt.Errorf("object storage not configured")
	}
	data, err := s.Objects.Download(ctx, s.Bucket, s.Key)
	if err != nil {
		return nil, err
	}
	return ParseXML(bytes.NewReader(data))
}
