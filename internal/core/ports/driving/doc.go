// Package driving defines the inbound ports (primary/driving ports) that
// expose pipeline use cases to the CLI and any future API layer.
package driving
