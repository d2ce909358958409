// Package history queries a sunrise/sunset backend for the stored daily
// records of a location over a date range. Failures are reported as one of
// StatusError (the server answered with an error), NoResponseError (the
// request went out but nothing came back) or a plain error for anything that
// went wrong locally.
package history
