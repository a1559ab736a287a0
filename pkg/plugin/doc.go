/*
Package plugin provides the extension pipeline of the fabric: an ordered, typed
chain of hooks that callers register to extend validation, transformation,
routing and composition without touching the dispatch path.

A Pipeline is an explicitly constructed object, injected into whichever router
or composer uses it. There is no ambient global pipeline; concurrent callers
each own (or share deliberately) their pipeline instance.
*/
package plugin
