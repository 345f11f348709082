// Package factory provides a small generic registry used to instantiate
// objects from configuration. Each entry maps a type name to a constructor;
// callers ask for an instance by name and hand over a raw settings map which
// the constructor decodes into its own typed struct.
//
// Re-registering a name replaces the previous constructor and logs a warning.
// Asking for an unknown name logs a warning and returns an error wrapping
// ErrNotFound.
//
// Example usage:
//
//	reg := factory.NewRegistry[io.Reader](log)
//	_ = reg.Register("file", func(conf map[string]any) (io.Reader, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return os.Open(c.Path)
//	})
//	r, err := reg.Create(factory.ModuleConfig{Type: "file", Conf: map[string]any{"path": "foo"}})
package factory
