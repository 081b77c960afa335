package assemble

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateAndExtractSingleFile(t *testing.T) {
	archive, err := createTarArchive(tarEntry{name: "./hello.txt", contents: []byte("hi there")})
	if err != nil {
		t.Fatalf("createTarArchive() error = %v", err)
	}

	dir := t.TempDir()
	path, err := extractSingleFile(archive, dir)
	if err != nil {
		t.Fatalf("extractSingleFile() error = %v", err)
	}

	if want := filepath.Join(dir, "hello.txt"); path != want {
		t.Errorf("extractSingleFile() path = %q, want %q", path, want)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "hi there" {
		t.Errorf("file contents = %q, want %q", got, "hi there")
	}
}

func TestExtractSingleFileEmptyArchive(t *testing.T) {
	archive, err := createTarArchive()
	if err != nil {
		t.Fatalf("createTarArchive() error = %v", err)
	}
	if _, err := extractSingleFile(archive, t.TempDir()); err == nil {
		t.Error("extractSingleFile() on empty archive: want error, got nil")
	}
}

func TestExtractSingleFileSkipsDirEntries(t *testing.T) {
	// A tar stream can contain a directory header before the regular
	// file we actually want; extractSingleFile should skip past it.
	var entries []tarEntry
	entries = append(entries, tarEntry{name: "x86_64/"})
	entries = append(entries, tarEntry{name: "pkg.rpm", contents: []byte("rpmdata")})
	archive, err := createTarArchive(entries...)
	if err != nil {
		t.Fatalf("createTarArchive() error = %v", err)
	}

	path, err := extractSingleFile(archive, t.TempDir())
	if err != nil {
		t.Fatalf("extractSingleFile() error = %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "rpmdata" {
		t.Errorf("contents = %q, want %q", got, "rpmdata")
	}
}
