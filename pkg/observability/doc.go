/*
Package observability provides Prometheus instrumentation for the fabric.

Metrics are registered against a caller-supplied prometheus.Registerer so tests
and embedded hosts can isolate their collectors; there is no init-time global
registration.
*/
package observability
