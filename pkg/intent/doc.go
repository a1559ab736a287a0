/*
Package intent defines the request value objects of the fabric.

An Intent describes a desired effect: a type tag, a payload, the capabilities the
caller must hold, and free-form metadata. Intents are values; helpers that "modify"
one return a copy. Composites group intents under a composition strategy without
owning them, so a sub-intent may be reused across composites.
*/
package intent
