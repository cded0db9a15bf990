// Package factory provides the generic registry used to build pluggable
// components from a type name and a map of raw settings. It backs both the
// metrics sinks listed in configuration and the artifact kinds understood by
// the artifact loader.
//
// Example usage:
//
//	reg := factory.NewRegistry[prediction.TargetTransformer]()
//	reg.Register("standard", func(conf map[string]any) (prediction.TargetTransformer, error) {
//	    var c struct {
//	        Mean  float64 `json:"mean"`
//	        Scale float64 `json:"scale"`
//	    }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return newStandard(c.Mean, c.Scale), nil
//	})
//	t, err := reg.Create(factory.ModuleConfig{Type: "standard", Conf: conf})
package factory
