// Package validate checks parsed annotations against the resolved type
// they were attached to, per the applicability table of spec.md §4.G.
// It never short-circuits: every incompatible annotation and every
// missing index field is reported before Validate returns.
package validate
