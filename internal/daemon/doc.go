// Package daemon wires the preview engine into a long-running process: a
// flock-enforced singleton hosting one session, an HTTP API for status,
// transport, settings adoption and render submission, and the resources those
// need (settings store, render client).
package daemon
