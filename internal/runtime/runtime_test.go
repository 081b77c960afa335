package runtime

import (
	"archive/tar"
	"bytes"
	"io"
	"testing"
)

func TestTarSingleFile(t *testing.T) {
	contents := []byte("FROM debian:stable-slim\n")

	r, err := tarSingleFile("Dockerfile", contents)
	if err != nil {
		t.Fatalf("tarSingleFile() error = %v", err)
	}

	tr := tar.NewReader(r)
	hdr, err := tr.Next()
	if err != nil {
		t.Fatalf("tar.Next() error = %v", err)
	}
	if hdr.Name != "Dockerfile" {
		t.Errorf("Name = %q, want Dockerfile", hdr.Name)
	}
	if hdr.Size != int64(len(contents)) {
		t.Errorf("Size = %d, want %d", hdr.Size, len(contents))
	}

	got, err := io.ReadAll(tr)
	if err != nil {
		t.Fatalf("read tar entry: %v", err)
	}
	if !bytes.Equal(got, contents) {
		t.Errorf("entry contents = %q, want %q", got, contents)
	}

	if _, err := tr.Next(); err != io.EOF {
		t.Errorf("expected single entry, got second entry or error %v", err)
	}
}
