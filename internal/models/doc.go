// Package models defines the records kept by the session service.
//
// The bill itself lives in package billing; a Session only ties a Bill to
// the client that owns it. Sessions are never shared and live only as long
// as the process and their TTL allow.
package models
