package fetch

import (
	"context"
	"fmt"
	"os/exec"
)

// gitFetcher retrieves a recipe's source by shelling out to the system
// git binary, mirroring recipe.GitSource's url/branch pair.
type gitFetcher struct {
	url    string
	branch string
}

func (f *gitFetcher) Fetch(ctx context.Context, dest string) error {
	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", "--branch", f.branch, f.url, dest)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git clone %s (branch %s): %w: %s", f.url, f.branch, err, out)
	}
	return nil
}
