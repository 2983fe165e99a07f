// Package rawconfig implements the recursive name/comment/value tree used
// for both stored configuration and its schema description.
//
// A node is a tagged variant: either a value leaf or an interior node with
// ordered, uniquely-named children. The children list is the discriminator;
// mutators refuse to produce a node carrying both, and Validate checks trees
// reconstructed from the boundary defensively.
//
// MergeDesc builds the combined value+schema tree ("cfg" and "desc" top
// level children) that every config getter returns, regardless of whether
// the source is the global config, an addon, or an input-method engine.
//
// Trees persist as TOML through MarshalTOML/UnmarshalTOML.
package rawconfig
