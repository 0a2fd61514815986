package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Source opens the CSV stream for one import run.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// NewSource resolves raw into an HTTP, S3 or file source. downloader may be
// nil when no s3:// sources are expected.
func NewSource(raw string, downloader S3Downloader) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrNoSource
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// plain paths, including Windows drive letters
		return FileSource{Path: raw}, nil
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return HTTPSource{URL: raw, Client: &http.Client{Timeout: 5 * time.Minute}}, nil
	case "s3":
		if downloader == nil {
			return nil, fmt.Errorf("ingest: s3 source %s needs an S3 client", raw)
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, fmt.Errorf("ingest: invalid s3 uri %q", raw)
		}
		return S3Source{Bucket: u.Host, Key: key, Downloader: downloader}, nil
	case "file":
		return FileSource{Path: u.Path}, nil
	default:
		return nil, fmt.Errorf("ingest: unsupported source scheme %q", u.Scheme)
	}
}

// HTTPSource downloads the body into a temporary file before parsing, so the
// client timeout bounds the download and not the import.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", s.URL, err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", s.URL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("download %s: %w", s.URL, ErrNotFound)
		}
		return nil, fmt.Errorf("download %s: unexpected status %s", s.URL, resp.Status)
	}
	defer resp.Body.Close()

	f, err := os.CreateTemp("", "sales-*.csv")
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", s.URL, err)
	}
	tmp := &tempFile{File: f}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("download %s: %w", s.URL, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("download %s: %w", s.URL, err)
	}
	return tmp, nil
}

// tempFile removes itself on Close.
type tempFile struct {
	*os.File
}

func (f *tempFile) Close() error {
	err := f.File.Close()
	if rerr := os.Remove(f.Name()); rerr != nil && err == nil {
		err = rerr
	}
	return err
}

func (s HTTPSource) String() string { return s.URL }

type FileSource struct {
	Path string
}

func (s FileSource) Open(context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("open %s: %w", s.Path, ErrNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	return f, nil
}

func (s FileSource) String() string { return s.Path }
