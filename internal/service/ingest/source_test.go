package ingest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDownloader struct {
	body   string
	err    error
	bucket string
	key    string
}

func (f *fakeDownloader) Download(_ context.Context, w io.WriterAt, input *s3.GetObjectInput, _ ...func(*manager.Downloader)) (int64, error) {
	f.bucket = *input.Bucket
	f.key = *input.Key
	if f.err != nil {
		return 0, f.err
	}
	n, err := w.WriteAt([]byte(f.body), 0)
	return int64(n), err
}

func TestNewSource(t *testing.T) {
	dl := &fakeDownloader{}

	tests := []struct {
		raw  string
		want Source
	}{
		{raw: "https://raw.example.com/sales.csv", want: HTTPSource{URL: "https://raw.example.com/sales.csv"}},
		{raw: "s3://bucket/data/sales.csv", want: S3Source{Bucket: "bucket", Key: "data/sales.csv", Downloader: dl}},
		{raw: "file:///var/data/sales.csv", want: FileSource{Path: "/var/data/sales.csv"}},
		{raw: "/var/data/sales.csv", want: FileSource{Path: "/var/data/sales.csv"}},
		{raw: "sales.csv", want: FileSource{Path: "sales.csv"}},
		{raw: `C:\data\sales.csv`, want: FileSource{Path: `C:\data\sales.csv`}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := NewSource(tt.raw, dl)
			require.NoError(t, err)
			if h, ok := got.(HTTPSource); ok {
				assert.NotNil(t, h.Client)
				h.Client = nil
				got = h
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewSourceErrors(t *testing.T) {
	_, err := NewSource("  ", nil)
	assert.ErrorIs(t, err, ErrNoSource)

	_, err = NewSource("s3://bucket/key.csv", nil)
	assert.Error(t, err)

	_, err = NewSource("s3://bucket/", &fakeDownloader{})
	assert.Error(t, err)

	_, err = NewSource("ftp://host/sales.csv", nil)
	assert.ErrorContains(t, err, "unsupported source scheme")
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sales.csv":
			_, _ = io.WriteString(w, "Customer Name\nJane\n")
		case "/broken.csv":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	rc, err := HTTPSource{URL: srv.URL + "/sales.csv"}.Open(context.Background())
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "Customer Name\nJane\n", string(body))

	tmp, ok := rc.(*tempFile)
	require.True(t, ok)
	require.NoError(t, rc.Close())
	_, err = os.Stat(tmp.Name())
	assert.True(t, os.IsNotExist(err))

	_, err = HTTPSource{URL: srv.URL + "/missing.csv"}.Open(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = HTTPSource{URL: srv.URL + "/broken.csv"}.Open(context.Background())
	assert.ErrorContains(t, err, "unexpected status")
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte("Gender\nMale\n"), 0o600))

	rc, err := FileSource{Path: path}.Open(context.Background())
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "Gender\nMale\n", string(body))

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "nope.csv")}.Open(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestS3Source(t *testing.T) {
	dl := &fakeDownloader{body: "Brand\nAcme\n"}
	src := S3Source{Bucket: "sales-data", Key: "2023/sales.csv", Downloader: dl}

	rc, err := src.Open(context.Background())
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "Brand\nAcme\n", string(body))
	assert.Equal(t, "sales-data", dl.bucket)
	assert.Equal(t, "2023/sales.csv", dl.key)
	assert.Equal(t, "s3://sales-data/2023/sales.csv", src.String())
}

func TestS3SourceClassifiesErrors(t *testing.T) {
	missing := S3Source{Bucket: "b", Key: "k", Downloader: &fakeDownloader{
		err: &smithy.GenericAPIError{Code: "NoSuchKey", Message: "The specified key does not exist."},
	}}
	_, err := missing.Open(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "NoSuchKey")

	denied := &smithy.GenericAPIError{Code: "AccessDenied"}
	_, err = S3Source{Bucket: "b", Key: "k", Downloader: &fakeDownloader{err: denied}}.Open(context.Background())
	assert.ErrorContains(t, err, "access denied")
	var apiErr smithy.APIError
	assert.True(t, errors.As(err, &apiErr))

	boom := errors.New("connection reset")
	_, err = S3Source{Bucket: "b", Key: "k", Downloader: &fakeDownloader{err: boom}}.Open(context.Background())
	assert.ErrorIs(t, err, boom)
}
