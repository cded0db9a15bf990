// Package model implements the regressor artifact kinds: single decision
// trees, random forests, gradient boosted trees and linear models. Importing
// the package registers every kind with the artifact loader.
package model
