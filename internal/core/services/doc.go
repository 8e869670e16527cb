// Package services implements the validation core: the terminology
// extractor, the cross-reference validator, the corpus-level content
// rules, and the engine that runs them as a fixed pipeline.
package services
