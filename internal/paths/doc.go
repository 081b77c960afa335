// Provides platform-appropriate default paths for the CLI.
//
// Paths follow XDG conventions on Linux and platform-native conventions
// on macOS and Windows. The application name "pkgforge" is used as the
// subdirectory under each base path.
package paths
