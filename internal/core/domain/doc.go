// Package domain contains the core value types of the quality-control
// pipeline: document references, fingerprints, version records, check
// outcomes and the sentinel errors shared across layers. It has no
// dependencies on adapters or services.
package domain
