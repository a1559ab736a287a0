/*
Package catalog is the lightweight discovery surface for capability-bearing
units, keyed by a free-text intent description and structured criteria.

Unlike pkg/discovery it knows nothing about health, scoring or load balancing:
entries are registered once (typically at process start), never mutated, and
queried by what they claim to require, provide and affect.
*/
package catalog
