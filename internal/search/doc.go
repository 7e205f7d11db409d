// Package search implements fuzzy multilingual station lookup.
//
// BuildIndex precomputes the searchable fields of every station once per
// dataset load: Latin name, code, the populated regional-script names,
// district and state, each normalized (NFC, case folded, whitespace
// collapsed) and weighted. A Matcher scores a query against every field by
// approximate substring alignment, keeps the best field per station and
// ranks stations by weighted score. A query of several words also matches
// when every word lands in the same field, in any order.
//
// Queries containing operator tokens use the extended syntax:
//
//	=term   field equals term
//	'term   field contains term
//	^term   field starts with term
//	term$   field ends with term
//	!term   no field contains term
//	!^term  no field starts with term
//	!term$  no field ends with term
//	a | b   either group matches
//
// Bare tokens in an extended query are fuzzy terms.
package search
