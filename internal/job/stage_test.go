package job

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestTarDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.c"), []byte("int main(){}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "lib"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "lib", "util.c"), []byte("void util(){}"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := tarDir(&buf, dir); err != nil {
		t.Fatalf("tarDir() error = %v", err)
	}

	var names []string
	contents := map[string]string{}
	tr := tar.NewReader(&buf)
	for {
		hdr, err := tr.Next()
		if err != nil {
			break
		}
		names = append(names, hdr.Name)
		if hdr.Typeflag == tar.TypeReg {
			data, err := io.ReadAll(tr)
			if err != nil {
				t.Fatalf("read %s: %v", hdr.Name, err)
			}
			contents[hdr.Name] = string(data)
		}
	}
	sort.Strings(names)

	want := []string{"lib", "lib/util.c", "main.c"}
	if len(names) != len(want) {
		t.Fatalf("tarDir() entries = %v, want %v", names, want)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("entry %d = %q, want %q", i, names[i], n)
		}
	}

	if contents["main.c"] != "int main(){}" {
		t.Errorf("main.c contents = %q", contents["main.c"])
	}
	if contents["lib/util.c"] != "void util(){}" {
		t.Errorf("lib/util.c contents = %q", contents["lib/util.c"])
	}
}
