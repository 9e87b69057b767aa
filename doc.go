// Package main provides the entry point of rbac-console, a role based access
// control administration backend. It serves a JSON API built with Fiber for
// managing permissions, roles and their assignment to users, guarded by an
// email/password login that issues signed bearer tokens. Data is kept with
// gorm in MySQL, PostgreSQL or SQLite.
//
// Usage:
//
//	JWT_SECRET=... rbac-console start --config ./etc/
//	rbac-console migrate
//	rbac-console config dump --json
package main
