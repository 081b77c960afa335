// Package imagebuilder produces or reuses the container image a
// (recipe, image) pair builds inside.
//
// [EnsureImage] consults the image state store first: if a cached image
// still exists in the container runtime, was built with the same
// provisioning mode (Dockerfile vs. synthesized), and carries the same
// dependency set the recipe currently declares, it is reused as-is.
// Otherwise a fresh image is built — from a recipe-supplied Dockerfile
// when one exists, or from a minimal definition synthesized from a
// built-in OS family table — its OS is detected, its build dependencies
// are installed, and the result is committed and recorded in the state
// store.
package imagebuilder
