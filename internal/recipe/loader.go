package recipe

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load parses a recipe from a TOML file on disk and validates the
// invariants spec.md §3 requires: non-empty name/version, a non-empty
// image list, and a required build script. This is the "external loader"
// spec.md §1 calls out — the rest of the package, and every downstream
// component, only ever sees an already-validated [Recipe].
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalid, path, err)
	}

	var raw rawRecipe
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalid, path, err)
	}

	return raw.toRecipe()
}

type rawImage struct {
	Name   string `toml:"name"`
	Target string `toml:"target"`
}

type rawStep struct {
	Cmd    string   `toml:"cmd"`
	Images []string `toml:"images"`
	Target string   `toml:"target"`
}

type rawPhase struct {
	WorkingDir string    `toml:"working_dir"`
	Shell      string    `toml:"shell"`
	Steps      []rawStep `toml:"steps"`
}

type rawDeb struct {
	Priority string `toml:"priority"`
}

type rawRpm struct {
	Release         string   `toml:"release"`
	Epoch           string   `toml:"epoch"`
	Vendor          string   `toml:"vendor"`
	Icon            string   `toml:"icon"`
	Summary         string   `toml:"summary"`
	Pre             string   `toml:"pre"`
	Post            string   `toml:"post"`
	Preun           string   `toml:"preun"`
	Postun          string   `toml:"postun"`
	ConfigNoreplace []string `toml:"config_noreplace"`
	Obsoletes       []string `toml:"obsoletes"`
}

type rawRecipe struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`
	License     string `toml:"license"`

	Images []rawImage `toml:"images"`

	Maintainer      string `toml:"maintainer"`
	Arch            string `toml:"arch"`
	Source          string `toml:"source"`
	Git             any    `toml:"git"`
	SkipDefaultDeps bool   `toml:"skip_default_deps"`
	Exclude         []string `toml:"exclude"`
	Group           string   `toml:"group"`

	BuildDepends any `toml:"build_depends"`
	Depends      any `toml:"depends"`
	Conflicts    any `toml:"conflicts"`
	Provides     any `toml:"provides"`
	Obsoletes    any `toml:"obsoletes"`

	Deb *rawDeb `toml:"deb"`
	Rpm *rawRpm `toml:"rpm"`

	ConfigureScript *rawPhase `toml:"configure"`
	BuildScript     *rawPhase `toml:"build"`
	InstallScript   *rawPhase `toml:"install"`
}

func (raw *rawRecipe) toRecipe() (*Recipe, error) {
	if raw.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if raw.Version == "" {
		return nil, fmt.Errorf("%w: version is required", ErrInvalid)
	}
	if len(raw.Images) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", ErrInvalid)
	}
	if raw.BuildScript == nil {
		return nil, fmt.Errorf("%w: build script is required", ErrInvalid)
	}

	images := make([]ImageTarget, 0, len(raw.Images))
	for _, img := range raw.Images {
		if img.Name == "" {
			return nil, fmt.Errorf("%w: image entry missing name", ErrInvalid)
		}
		images = append(images, ImageTarget{
			Image:  img.Name,
			Target: parseBuildTarget(img.Target),
		})
	}

	git, err := parseGitSource(raw.Git)
	if err != nil {
		return nil, err
	}

	buildDepends, err := parseDependencies(raw.BuildDepends)
	if err != nil {
		return nil, fmt.Errorf("build_depends: %w", err)
	}
	depends, err := parseDependencies(raw.Depends)
	if err != nil {
		return nil, fmt.Errorf("depends: %w", err)
	}
	conflicts, err := parseDependencies(raw.Conflicts)
	if err != nil {
		return nil, fmt.Errorf("conflicts: %w", err)
	}
	provides, err := parseDependencies(raw.Provides)
	if err != nil {
		return nil, fmt.Errorf("provides: %w", err)
	}
	obsoletes, err := parseDependencies(raw.Obsoletes)
	if err != nil {
		return nil, fmt.Errorf("obsoletes: %w", err)
	}

	var deb *DebMetadata
	if raw.Deb != nil {
		deb = &DebMetadata{Priority: raw.Deb.Priority}
	}

	var rpm *RpmMetadata
	if raw.Rpm != nil {
		rpm = &RpmMetadata{
			Release:         raw.Rpm.Release,
			Epoch:           raw.Rpm.Epoch,
			Vendor:          raw.Rpm.Vendor,
			Icon:            raw.Rpm.Icon,
			Summary:         raw.Rpm.Summary,
			Pre:             raw.Rpm.Pre,
			Post:            raw.Rpm.Post,
			Preun:           raw.Rpm.Preun,
			Postun:          raw.Rpm.Postun,
			ConfigNoreplace: raw.Rpm.ConfigNoreplace,
			Obsoletes:       raw.Rpm.Obsoletes,
		}
	}

	buildScript, err := raw.BuildScript.toPhase()
	if err != nil {
		return nil, fmt.Errorf("build script: %w", err)
	}

	var configureScript *Phase
	if raw.ConfigureScript != nil {
		p, err := raw.ConfigureScript.toPhase()
		if err != nil {
			return nil, fmt.Errorf("configure script: %w", err)
		}
		configureScript = &p
	}

	var installScript *Phase
	if raw.InstallScript != nil {
		p, err := raw.InstallScript.toPhase()
		if err != nil {
			return nil, fmt.Errorf("install script: %w", err)
		}
		installScript = &p
	}

	return &Recipe{
		Name:            raw.Name,
		Version:         raw.Version,
		Description:     raw.Description,
		License:         raw.License,
		Images:          images,
		Maintainer:      raw.Maintainer,
		Arch:            raw.Arch,
		Source:          raw.Source,
		Git:             git,
		SkipDefaultDeps: raw.SkipDefaultDeps,
		Exclude:         raw.Exclude,
		Group:           raw.Group,
		BuildDepends:    buildDepends,
		Depends:         depends,
		Conflicts:       conflicts,
		Provides:        provides,
		Obsoletes:       obsoletes,
		Deb:             deb,
		Rpm:             rpm,
		ConfigureScript: configureScript,
		BuildScript:     buildScript,
		InstallScript:   installScript,
	}, nil
}

func (raw *rawPhase) toPhase() (Phase, error) {
	steps := make([]Step, 0, len(raw.Steps))
	for _, s := range raw.Steps {
		if s.Cmd == "" {
			return Phase{}, fmt.Errorf("step missing cmd")
		}
		steps = append(steps, Step{
			Cmd:    s.Cmd,
			Images: s.Images,
			Target: parseBuildTarget(s.Target),
		})
	}
	return Phase{
		WorkingDir: raw.WorkingDir,
		Shell:      raw.Shell,
		Steps:      steps,
	}, nil
}

func parseBuildTarget(s string) BuildTarget {
	switch s {
	case "rpm":
		return TargetRPM
	case "deb":
		return TargetDEB
	case "gzip":
		return TargetGZIP
	default:
		return ""
	}
}

// parseGitSource accepts either a bare URL string or a table with
// "url"/"branch" keys, matching the original recipe format's
// toml::Value-typed git field (spec.md §9's GitSource redesign note).
func parseGitSource(v any) (GitSource, error) {
	if v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil, nil
		}
		return NewGitURL(t), nil
	case map[string]any:
		url, _ := t["url"].(string)
		if url == "" {
			return nil, fmt.Errorf("%w: git source missing url", ErrInvalid)
		}
		branch, _ := t["branch"].(string)
		return NewGitURLBranch(url, branch), nil
	default:
		return nil, fmt.Errorf("%w: unsupported git source value %v", ErrInvalid, v)
	}
}

// parseDependencies accepts either a flat list of package names (applying
// to every image) or a table whose "default" key is the flat list and
// whose remaining keys are per-image lists.
func parseDependencies(v any) (*Dependencies, error) {
	if v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case []any:
		return &Dependencies{Default: toStringSlice(t)}, nil
	case map[string]any:
		d := &Dependencies{PerImage: make(map[string][]string, len(t))}
		for k, val := range t {
			strs := toStringSlice(val)
			if k == "default" {
				d.Default = strs
			} else {
				d.PerImage[k] = strs
			}
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w: unsupported dependency value %v", ErrInvalid, v)
	}
}

func toStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
