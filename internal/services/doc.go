// Package services holds the shared error vocabulary for components that talk
// to external collaborators (the render service, the settings store). Sentinel
// markers let callers classify a failure without string matching.
package services
