// Package types defines the Lead entity, the pipeline stages, the Store
// interface, backend configuration and the standard errors shared by the
// leadboard packages.
package types
