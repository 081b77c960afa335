package scripts

import (
	"testing"

	"github.com/pkgforge/pkgforge/internal/recipe"
)

func TestStepApplies(t *testing.T) {
	debianDeb := recipe.ImageTarget{Image: "debian", Target: recipe.TargetDEB}
	fedoraRpm := recipe.ImageTarget{Image: "fedora", Target: recipe.TargetRPM}

	tests := []struct {
		name   string
		step   recipe.Step
		target recipe.ImageTarget
		want   bool
	}{
		{
			name:   "no filters",
			step:   recipe.Step{Cmd: "make"},
			target: debianDeb,
			want:   true,
		},
		{
			name:   "image allow-list matches",
			step:   recipe.Step{Cmd: "make", Images: []string{"debian", "ubuntu"}},
			target: debianDeb,
			want:   true,
		},
		{
			name:   "image allow-list excludes",
			step:   recipe.Step{Cmd: "make", Images: []string{"fedora"}},
			target: debianDeb,
			want:   false,
		},
		{
			name:   "target filter matches",
			step:   recipe.Step{Cmd: "make", Target: recipe.TargetDEB},
			target: debianDeb,
			want:   true,
		},
		{
			name:   "target filter excludes",
			step:   recipe.Step{Cmd: "make", Target: recipe.TargetRPM},
			target: debianDeb,
			want:   false,
		},
		{
			name:   "target filter overrides image exclusion",
			step:   recipe.Step{Cmd: "make", Images: []string{"fedora"}, Target: recipe.TargetDEB},
			target: debianDeb,
			want:   true,
		},
		{
			name:   "target filter overrides image exclusion but still filtered by target",
			step:   recipe.Step{Cmd: "make", Images: []string{"fedora"}, Target: recipe.TargetRPM},
			target: debianDeb,
			want:   false,
		},
		{
			name:   "image match with matching target filter",
			step:   recipe.Step{Cmd: "make", Images: []string{"fedora"}, Target: recipe.TargetRPM},
			target: fedoraRpm,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stepApplies(tt.step, tt.target); got != tt.want {
				t.Errorf("stepApplies() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubstituteDirs(t *testing.T) {
	dirs := recipe.ContainerDirs{BldDir: "/tmp/pkgforge/bld", OutDir: "/tmp/pkgforge/out"}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bld var", "$PKGER_BLD_DIR/src", "/tmp/pkgforge/bld/src"},
		{"out var", "$PKGER_OUT_DIR/usr/bin", "/tmp/pkgforge/out/usr/bin"},
		{"both vars", "$PKGER_BLD_DIR/../$PKGER_OUT_DIR", "/tmp/pkgforge/bld/..//tmp/pkgforge/out"},
		{"no vars", "/opt/custom", "/opt/custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := substituteDirs(tt.in, dirs); got != tt.want {
				t.Errorf("substituteDirs(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestErrBuildStepFailedMessage(t *testing.T) {
	err := &ErrBuildStepFailed{Phase: "build", Cmd: "make", ExitCode: 2, Stderr: "missing header"}
	want := `build step "make" exited 2: missing header`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
