// Package openapi exposes the contracts used to derive a submission field
// set from an OpenAPI operation. Loaders fetch documents from files, fs.FS
// entries or URLs; parsers turn them into Operation wrappers. The
// kin-openapi backed implementations live under internal/openapi and are
// constructed through the top-level formsubmit package.
package openapi
