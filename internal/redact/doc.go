// Package redact masks likely secrets in file text before it leaves the
// machine.
//
// Detection is heuristic. Each rule is a named regular expression covering a
// common secret shape: key assignments, cloud access keys, bearer tokens,
// JWTs, private key headers, credentialed connection URLs and
// provider-specific tokens. Every match is replaced with [REDACTED].
package redact
