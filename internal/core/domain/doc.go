// Package domain defines the core entities of the mdpaste paste pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ImageSource: An image found in a paste payload (file path or inline data)
//   - ContentIdentity: The SHA-256 digest naming an asset on disk
//   - WrittenAsset: A content-addressed file inside an asset directory
//   - PasteResult: The substitution text and assets produced by one paste
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
