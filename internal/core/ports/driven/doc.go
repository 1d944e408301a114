// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - Payload, PayloadItem: The host's paste/drop data, probed by capability
//   - AssetWriter: Content-addressed asset persistence (filesystem)
//   - Clipboard: System clipboard access for hosts without a payload
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
