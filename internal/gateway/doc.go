// Package gateway is the only I/O boundary towards the portfolio REST API.
//
// # Overview
//
// Client describes every remote operation; HTTPClient implements it over
// HTTP/JSON. Requests are never retried or cached here: callers decide what a
// failure means for their own state.
//
// # Error Handling
//
// Failures are mapped onto the sentinels of package common so callers can
// match them with errors.Is:
//
//   - common.ErrNetwork: the request could not be completed (dial, timeout,
//     cancelled context).
//   - common.ErrServer: non-2xx status, carried as *common.ServerError with the
//     API's "error" or "message" field when present.
//   - common.ErrDecode: a 2xx response whose body is not the expected JSON.
//
// # Authentication
//
// When a TokenSource is configured, its token is sent as a bearer
// Authorization header on every request. Every request also carries a fresh
// X-Request-ID.
package gateway
