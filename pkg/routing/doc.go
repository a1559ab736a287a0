/*
Package routing resolves targets for intents, dispatches them with bounded
timeouts, and executes multi-intent composition strategies.

Classification is an explicit, ordered table of rules instead of string
heuristics buried in the engine: each rule pairs a predicate with a target
class, and the first matching rule wins. Discovery resolves a concrete
component for the class; the plugin pipeline supplies validation,
transformation and routing overrides.

Composition strategies split into fail-fast (sequential, pipeline) and
fail-isolated (parallel, fan_out): the former stop at the stage that failed,
the latter collect every branch outcome and never abort siblings. The retry
overlay is a synchronous blocking loop; callers that need promptness should
budget for MaxRetries * MaxDelay.
*/
package routing
