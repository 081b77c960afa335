package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// httpFetcher retrieves a recipe's source from an HTTP(S) URL or a plain
// local filesystem path. A download or a local file is written to a
// single file under dest named after the source's base name; a local
// directory is copied recursively into dest.
type httpFetcher struct {
	source string
}

func (f *httpFetcher) Fetch(ctx context.Context, dest string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("create destination %s: %w", dest, err)
	}

	u, err := url.Parse(f.source)
	if err != nil || u.Scheme == "" {
		return f.copyLocal(dest)
	}

	switch u.Scheme {
	case "http", "https":
		return f.download(ctx, dest, u)
	case "file":
		return f.copyLocal(dest)
	default:
		return fmt.Errorf("unsupported source scheme %q", u.Scheme)
	}
}

func (f *httpFetcher) download(ctx context.Context, dest string, u *url.URL) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", f.source, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", f.source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %s", f.source, resp.Status)
	}

	out, err := os.Create(filepath.Join(dest, filepath.Base(u.Path)))
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write downloaded source: %w", err)
	}
	return nil
}

func (f *httpFetcher) copyLocal(dest string) error {
	src := f.source
	if u, err := url.Parse(f.source); err == nil && u.Scheme == "file" {
		src = u.Path
	}

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat local source %s: %w", src, err)
	}
	if info.IsDir() {
		return copyDir(src, dest)
	}
	return copyFile(src, filepath.Join(dest, filepath.Base(src)))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}
