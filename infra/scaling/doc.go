// Package scaling implements the fitted column transformers and target
// transformers used by the scaled pipeline. Parameters are exported by the
// training pipeline and follow scikit-learn conventions: a zero scale is
// treated as one, and min-max scaling maps [data_min, data_max] onto
// feature_range.
package scaling
