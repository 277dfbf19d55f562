// Package server is a reference backend for the submission controller. It
// accepts comments on POST /api, validates them, and answers failures with
// a {"error": "..."} body, which is exactly the contract the controller
// surfaces to users. It also serves a host page exposing the elements the
// browser adapter expects, so the whole round trip can be exercised
// locally and in tests.
package server
