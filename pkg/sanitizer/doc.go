// Package sanitizer cleans untrusted string input before it is stored
// or rendered.
//
// [StripHTML] reduces markup to plain text and [SanitizeHTML] keeps a
// small safe formatting subset; both are backed by bluemonday policies.
// [SanitizeStruct] applies these (plus trim and lower) to struct fields
// by `sanitize` tag, which is how the request context scrubs bound
// payloads before validation:
//
//	type createCommentRequest struct {
//	    Author string `json:"author" sanitize:"trim,strip"`
//	    Body   string `json:"body"   sanitize:"html"`
//	}
package sanitizer
