// Package diagnostic collects the warnings and errors of a generation run.
//
// Unsupported types do not fail a run: the affected wrapper becomes a stub
// and a warning naming the entry is recorded here so the caller can report
// exactly which parts of the namespace were not bound.
package diagnostic
