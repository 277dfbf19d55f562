// Package dom adapts a browser document to view.View and view.Trigger when
// compiled for js/wasm. Fields are addressed as "#<name>" and read or written
// through their value property; the status slot's textContent and the
// submit control's click events complete the contract. Elements are looked
// up on every access so the adapter never caches stale nodes.
package dom
