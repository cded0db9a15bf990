// Package features defines the eleven vehicle and driver attributes a premium
// prediction is computed from. Parse validates a decoded JSON object at the
// request boundary and returns a Vector that can be viewed either in the
// canonical column order or keyed by column name.
package features
