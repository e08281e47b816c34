// Package host defines the image editor the renamer talks to and provides
// adapters for it.
//
// # Host
//
// Host is the collaborator contract: document facts, the ordered layer
// selection, renaming, visibility and selection by identifier.
//
// # Adapters
//
//   - Memory keeps a document in memory.
//   - Manifest reads a YAML document description and writes it back on Commit.
//   - ImageDir treats a directory of images as a document, one layer per file.
//
// Open picks the adapter from OpenOptions:
//
//	h, err := host.Open(ctx, host.OpenOptions{Dir: "./assets", Select: []string{"btn-*"}})
package host
