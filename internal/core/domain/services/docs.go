// Package services contains stateless domain services that coordinate
// multiple aggregates: the command-effect table applied when robots report
// execution, and the handoff authenticator that signs and verifies
// proof-of-pickup tokens.
package services
