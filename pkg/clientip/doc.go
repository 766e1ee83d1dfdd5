// Package clientip resolves the address of the client behind the request.
//
// Forwarding headers are honored only when the resolver is told to trust
// them; otherwise the TCP peer address is used, so clients cannot pick their
// own address by sending a header.
package clientip
