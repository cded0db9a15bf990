// Package prediction turns a validated feature vector into a premium. A
// Pipeline is assembled once from immutable artifacts and may be shared by
// any number of concurrent requests.
//
// Two pipelines exist and a process runs exactly one of them. The raw
// pipeline feeds the features to the regressor in canonical order. The scaled
// pipeline passes the named features through a column transformer, runs the
// regressor on the scaled vector and maps the result back to the premium unit
// with the inverse of the target transformer.
package prediction
