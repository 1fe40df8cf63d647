// Package transform rewrites the strings inside decoded request values,
// typically from a Sanitize method run before validation.
//
//	func (u *User) Sanitize() {
//	    transform.TrimSpace(u)
//	}
package transform
