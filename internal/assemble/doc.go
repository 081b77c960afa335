// Package assemble turns a finished build container's output directory
// into a final package artifact on the host.
//
// [Assemble] dispatches on the job's build target: gzip produces a plain
// tarball of the output directory, deb stages a DEBIAN/control tree and
// runs dpkg-deb, rpm builds the standard rpmbuild tree and runs
// rpmbuild. All three download their result to hostOutputDir via the
// container session; none of them touch the image state store.
package assemble
