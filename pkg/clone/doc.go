// Package clone contains the core domain logic for jsonclone: resolving the
// asset directory, discovering JSON files that share a name prefix, planning
// the renamed copies, and writing each copy with the prefix substituted in
// both its name and its text. It is used by the CLI layer but can also be
// embedded in other tooling that needs to duplicate block/item definitions.
package clone
