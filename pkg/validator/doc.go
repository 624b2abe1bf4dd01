// Package validator checks request input with composable field rules.
//
// Rules are plain values built by constructors like [RequiredString] and
// [MinNum]; [Apply] evaluates a set of them and returns every failure at
// once as a [ValidationErrors]:
//
//	err := validator.Apply(
//	    validator.RequiredString("email", form.Email),
//	    validator.MinLenString("password", form.Password, 8),
//	)
//
// The error collects one [ValidationError] per failed rule, so a form
// with three bad fields reports all three in a single round trip.
//
// # Request Types
//
// Types implement [Validatable] to declare their rules next to their
// fields; the request context runs [ValidateStruct] automatically after
// binding:
//
//	type createUserRequest struct {
//	    Email string `json:"email"`
//	    Name  string `json:"name"`
//	}
//
//	func (r createUserRequest) Validate() error {
//	    return validator.Apply(
//	        validator.RequiredString("email", r.Email),
//	        validator.MaxLenString("name", r.Name, 100),
//	    )
//	}
//
// # Inspecting Failures
//
// [IsValidationError] distinguishes field failures from infrastructure
// errors, and [ExtractValidationErrors] recovers the typed list:
//
//	if validator.IsValidationError(err) {
//	    ve := validator.ExtractValidationErrors(err)
//	    for _, msg := range ve.Get("email") {
//	        // "is required", ...
//	    }
//	}
//
// # Translation
//
// Every failure carries a stable TranslationKey ("validation.required",
// "validation.min_length", ...) plus the values the message interpolates.
// [ValidationErrors.Translate] rewrites the English defaults in place
// with any rendering function, which keeps the package free of locale
// handling.
package validator
