// Package submit implements the form submission controller. A Controller is
// bound once to a trigger; every time the trigger fires it reads the current
// value of each declared field from its view, POSTs them as a JSON object to
// a single endpoint, and then either clears the form (success) or writes the
// server's error message into the view's status slot (failure).
//
// Submissions never overlap: while one request is outstanding further
// triggers are skipped, so the status slot always reflects the submission
// that was actually sent.
package submit
