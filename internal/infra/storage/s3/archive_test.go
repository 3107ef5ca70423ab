package s3

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
)

type fakeStore struct {
	exists     bool
	existsErr  error
	made       []string
	objects    map[string][]byte
	types      map[string]string
	existCalls int
}

func (s *fakeStore) BucketExists(_ context.Context, _ string) (bool, error) {
	s.existCalls++
	return s.exists, s.existsErr
}

func (s *fakeStore) MakeBucket(_ context.Context, bucket string, _ minio.MakeBucketOptions) error {
	s.made = append(s.made, bucket)
	return nil
}

func (s *fakeStore) PutObject(_ context.Context, bucket, key string, r io.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	if s.objects == nil {
		s.objects = map[string][]byte{}
		s.types = map[string]string{}
	}
	s.objects[bucket+"/"+key] = body
	s.types[bucket+"/"+key] = opts.ContentType
	return minio.UploadInfo{Bucket: bucket, Key: key}, nil
}

func TestArchiveStoresJSON(t *testing.T) {
	store := &fakeStore{}
	a := newArchive(store, "quotes", "https://cdn.example.com/", nil)

	url, err := a.Archive(context.Background(), "/quotes/2026/06/01/q-1.json", []byte(`{"id":"q-1"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://cdn.example.com/quotes/quotes/2026/06/01/q-1.json" {
		t.Fatalf("url = %q", url)
	}
	if string(store.objects["quotes/quotes/2026/06/01/q-1.json"]) != `{"id":"q-1"}` {
		t.Fatalf("objects = %v", store.objects)
	}
	if store.types["quotes/quotes/2026/06/01/q-1.json"] != "application/json" {
		t.Fatalf("content type = %v", store.types)
	}
	if len(store.made) != 1 {
		t.Fatalf("bucket created %d times", len(store.made))
	}

	if _, err := a.Archive(context.Background(), "q-2.json", []byte(`{}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.existCalls != 1 {
		t.Fatalf("bucket checked %d times, want 1", store.existCalls)
	}
}

func TestArchiveErrors(t *testing.T) {
	a := newArchive(&fakeStore{exists: true}, "quotes", "http://localhost:9000", nil)
	if _, err := a.Archive(context.Background(), " / ", nil); err == nil {
		t.Fatal("expected error for empty key")
	}

	boom := errors.New("access denied")
	a = newArchive(&fakeStore{existsErr: boom}, "quotes", "http://localhost:9000", nil)
	if _, err := a.Archive(context.Background(), "q.json", nil); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestParseEndpoint(t *testing.T) {
	if got := parseEndpoint("http://minio:9000"); got != "minio:9000" {
		t.Fatalf("got %q", got)
	}
	if got := parseEndpoint("minio:9000"); got != "minio:9000" {
		t.Fatalf("got %q", got)
	}
}
