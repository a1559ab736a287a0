/*
Package ports defines the driven ports (interfaces) of the fabric.

These interfaces decouple the discovery and routing services from concrete
component implementations and cache backends.

# Key Interfaces

  - Handler: a registered component able to receive dispatched intents.
  - HealthProbe: optional self-reported health; absence falls back to liveness.
  - Describable: optional self-description used to derive registration metadata.
  - HealthCache: TTL-bounded storage for health check results (memory or Redis).
*/
package ports
