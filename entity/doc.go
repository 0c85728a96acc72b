// Package entity resolves free-form card text into semantic fields: the
// person's name, their job position, the company, and a postal address.
//
// Resolution combines three signal sources. A Tagger supplies named-entity
// spans (person, organization, location); line position supplies the strong
// card conventions (name first, title under the name, company under the
// title); and shape patterns supply honorific, title, and legal-suffix
// matches. Each source emits scored candidates and the highest score wins,
// so a tagger hit outranks a positional guess but positional guesses still
// carry cards the tagger cannot read.
//
// The Tagger is fixed at construction. Pass nil to run on positional and
// shape heuristics alone.
package entity
