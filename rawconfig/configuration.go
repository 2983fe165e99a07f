package rawconfig

// Configuration is implemented by anything holding live configuration state:
// the engine's global config and configurable addons or input-method engines.
type Configuration interface {
	// Save writes the current values into the tree.
	Save(*RawConfig)
	// Describe writes the schema metadata (option names, comments, allowed
	// value descriptions) into the tree.
	Describe(*RawConfig)
	// Load applies values from the tree. Unknown names are ignored.
	Load(*RawConfig)
}

// MergeDesc builds the combined tree crossing the boundary: one root with
// two named children, "cfg" holding the current values and "desc" holding
// the schema. The merge is identical for global, per-addon and
// per-input-method configuration so the boundary representation is uniform.
func MergeDesc(conf Configuration) *RawConfig {
	top := New("")
	cfg, _ := top.Ensure("cfg")
	conf.Save(cfg)
	desc, _ := top.Ensure("desc")
	conf.Describe(desc)
	return top
}
