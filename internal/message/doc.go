// Package message implements the commit message grammar: a subject line
// followed by four fixed sections (Context, What this enables, Changes
// (by file), Deferred) in a fixed order, separated by single blank lines.
//
// The package exposes two dual operations built on one shared Rules value:
//
//   - Formatter assembles validated structured input (model.Message) into
//     canonical text.
//   - Validator parses arbitrary text and accepts or rejects it against
//     the same grammar.
//
// The two are kept in lockstep: every message the Formatter produces is
// accepted by the Validator, and the Validator's acceptance rules define
// the only shapes the Formatter may emit. Both report failures as
// model.Violation values, first failure only.
//
// One deliberate asymmetry: the Formatter checks that path-like change
// labels reference real (or deleted) repository paths, while the Validator
// performs no path checks at all. Path existence is an authoring-time
// guard, not a property of well-formed text; tightening the Validator
// would change which hand-written messages are accepted.
package message
