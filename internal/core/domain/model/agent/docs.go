// Package agent holds the Agent entity: a delivery person who authenticates
// against the service and is assigned packages.
//
// Agents are created out-of-band (see the admin CLI) and are only read by the
// core. The password hash is opaque and never leaves the domain layer except
// through the password verifier.
package agent
