/*
Package discovery maintains the live catalog of dispatchable components and
answers scored, load-balanced lookup queries.

The Registry is an actor: a single goroutine owns the records and the
load-balancer counters, and every mutation is a closure posted to its loop.
Public methods block until the loop has processed their request, so callers see
request/response semantics without locks leaking into the API.

Health observations are cached through a ports.HealthCache (in-memory by
default, Redis optionally) with a bounded TTL; a janitor goroutine purges stale
entries in the background.
*/
package discovery
