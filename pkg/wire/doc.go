// Package wire converts between wire bodies and the generic trees the object
// model is built from: XML for the SOAP dialect, JSON for REST. It also holds
// the request envelope and endpoint helpers both dialects share.
package wire
