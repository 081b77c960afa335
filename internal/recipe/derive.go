package recipe

import "sort"

func sortStrings(s []string) { sort.Strings(s) }

// DebArch derives the Debian architecture string from Recipe.Arch.
//
//	amd64|x86_64 -> amd64
//	x86|i386     -> i386
//	(absent)     -> all
//	otherwise    -> passthrough
func (r *Recipe) DebArch() string {
	switch r.Arch {
	case "amd64", "x86_64":
		return "amd64"
	case "x86", "i386":
		return "i386"
	case "":
		return "all"
	default:
		return r.Arch
	}
}

// RpmArch derives the RPM architecture string from Recipe.Arch.
//
//	amd64|x86_64 -> x86_64
//	x86|i386     -> x86
//	(absent)     -> noarch
//	otherwise    -> passthrough
func (r *Recipe) RpmArch() string {
	switch r.Arch {
	case "amd64", "x86_64":
		return "x86_64"
	case "x86", "i386":
		return "x86"
	case "":
		return "noarch"
	default:
		return r.Arch
	}
}

// RpmRelease returns the recipe's declared RPM release, defaulting to "0".
func (r *Recipe) RpmRelease() string {
	if r.Rpm == nil || r.Rpm.Release == "" {
		return "0"
	}
	return r.Rpm.Release
}

// RecipeTarget is the cache key identifying a specific (recipe, image,
// build target) triple. It is a plain comparable struct: usable directly
// as a map key, with componentwise equality and hashing for free.
type RecipeTarget struct {
	RecipeName  string
	Image       string
	BuildTarget BuildTarget
}

// Target builds the RecipeTarget for one of the recipe's declared images.
func (r *Recipe) Target(img ImageTarget) RecipeTarget {
	return RecipeTarget{
		RecipeName:  r.Name,
		Image:       img.Image,
		BuildTarget: img.Target,
	}
}

// ResolvedDependencies resolves all dependency buckets for one image,
// returning empty slices for declarations the recipe omits.
type ResolvedDependencies struct {
	BuildDepends []string
	Depends      []string
	Conflicts    []string
	Provides     []string
	Obsoletes    []string
}

// ResolveDependencies resolves every dependency bucket the recipe declares
// for the given image name.
func (r *Recipe) ResolveDependencies(image string) ResolvedDependencies {
	resolve := func(d *Dependencies) []string {
		if d == nil {
			return nil
		}
		return d.Resolve(image)
	}

	return ResolvedDependencies{
		BuildDepends: resolve(r.BuildDepends),
		Depends:      resolve(r.Depends),
		Conflicts:    resolve(r.Conflicts),
		Provides:     resolve(r.Provides),
		Obsoletes:    resolve(r.Obsoletes),
	}
}
