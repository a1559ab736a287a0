/*
Package capability defines the authorization model of the fabric: (action, resource)
capability values and the implication lattice that orders them.

The lattice is a directed graph of action-implication edges, independent of resource.
"admin" implying "write" means admin(R) satisfies any requirement for write(R), for
every resource R. The default graph encodes admin > {write, delete} and write > read,
but new actions and edges can be added at runtime or loaded from YAML, so the action
vocabulary is data, not code.

Capabilities are plain values compared structurally. Temporal wrappers, delegation
and revocation records are pure data; their validity is checked against a
caller-supplied set of available capabilities, never against hidden state.
*/
package capability
