// Package temporal decides which calendar day the user is "in" for planning
// and reflection, and how loudly the UI should ask for a reflection.
//
// The pipeline runs in one direction:
//
//	ClockSource + Config -> Resolve -> ScanUnreflected -> Classify -> PresentationFor / MessageFor
//
// Only Resolve and ScanUnreflected touch storage, through a Lookup that turns
// collaborator faults into absence and reports them to an Observer. Service
// owns the mutable Config and is the surface the CLI and HTTP server use.
//
// Core code never calls time.Now directly; a Clock is injected so tests can
// pin the instant.
package temporal
