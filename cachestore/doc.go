// Package cachestore implements the fingerprint-keyed disk cache of
// spec.md §4.I: atomic envelope read/write under a root directory, with
// corruption detection so a torn or foreign-version file degrades to a
// cache miss rather than a propagated error.
package cachestore
