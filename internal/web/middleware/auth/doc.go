// Package auth provides the bearer token gate for the web application.
//
// Every request path is classified, in this order:
//   - the authentication namespace below the API prefix (login, signup) is public
//   - the root path is public
//   - the asset prefix is public
//   - everything else below the API prefix is protected
//   - all other paths are not gated
//
// Protected requests need an "Authorization: Bearer <token>" header carrying
// a token that verifies. A missing or malformed header is answered with 401
// "Unauthorized", a failed verification with 401 "Invalid or expired token".
// On success the claims are stored in fiber.Locals under LocalsClaims.
//
// The gate only checks that the caller is authenticated. Page routes are not
// gated here, and any client side redirect for pages is not access control.
//
// Usage:
//
//	app.Use(authmiddleware.New(authmiddleware.Config{
//		Verifier:    tokens,
//		APIPrefix:   cfg.Webserver.APIPrefix,
//		AssetPrefix: cfg.Webserver.AssetPrefix,
//	}))
package auth
