// Package services implements the driving port interfaces.
// Services contain the paste pipeline logic and call out to driven
// ports (asset writer, payload) for all I/O.
//
// The pipeline is Extract, then Write per source, then BuildReference,
// joined into one substitution string.
package services
