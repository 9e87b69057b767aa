// Package auth implements the authentication boundary of the console.
//
// # Credentials
//
// LocalProvider stores users in the local database. Passwords are hashed by a
// PasswordHasher, bcrypt with cost 10 by default or Argon2id. Verification
// recognises both formats.
//
// # Tokens
//
// TokenIssuer mints HS256 signed JWTs carrying the user id and email, valid
// for TokenLifetime (7 days). A valid token is the only credential checked
// on protected API routes. Tokens carry no permissions and nothing here
// decides whether a user may perform a given action.
//
// Example usage:
//
//	hasher, _ := auth.NewPasswordHasher(auth.HashBcrypt, 10)
//	tokens, _ := auth.NewTokenIssuer([]byte(cfg.Auth.JWTSecret))
//	local, _ := auth.NewLocalProvider(db, hasher, tokens)
//
//	token, user, err := local.Login(ctx, "ops@example.com", "secret")
//	claims, err := tokens.Verify(token)
package auth
