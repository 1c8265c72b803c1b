// Package process manages the lifetime of external tool processes: it puts
// each one in its own process group and kills the whole group on
// cancellation.
package process
