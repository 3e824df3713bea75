// Package services implements the core pipeline: content fingerprinting,
// per-institute version assignment and the document processor that ties
// fingerprinting, parsing, check execution and persistence together.
package services
