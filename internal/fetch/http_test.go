package fetch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestHTTPFetcherCopyLocalFile(t *testing.T) {
	srcDir := t.TempDir()
	srcFile := filepath.Join(srcDir, "hello.tar.gz")
	if err := os.WriteFile(srcFile, []byte("archive contents"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	dest := t.TempDir()
	f := &httpFetcher{source: srcFile}
	if err := f.Fetch(context.Background(), dest); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dest, "hello.tar.gz"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "archive contents" {
		t.Errorf("copied contents = %q, want %q", got, "archive contents")
	}
}

func TestHTTPFetcherCopyLocalDir(t *testing.T) {
	srcDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(srcDir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "sub", "main.c"), []byte("int main(){}"), 0o644); err != nil {
		t.Fatal(err)
	}

	dest := t.TempDir()
	f := &httpFetcher{source: srcDir}
	if err := f.Fetch(context.Background(), dest); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dest, "sub", "main.c"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "int main(){}" {
		t.Errorf("copied contents = %q, want %q", got, "int main(){}")
	}
}

func TestHTTPFetcherUnsupportedScheme(t *testing.T) {
	f := &httpFetcher{source: "ftp://example.com/hello.tar.gz"}
	if err := f.Fetch(context.Background(), t.TempDir()); err == nil {
		t.Error("Fetch() with unsupported scheme: want error, got nil")
	}
}
