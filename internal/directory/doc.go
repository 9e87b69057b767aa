// Package directory manages permissions, roles and their associations.
//
// Roles receive permissions by union: assigning [A, B] and then [B, C] to a
// role leaves it with {A, B, C}. Users receive roles by replacement: assigning
// [X, Y] and then [Z] to a user leaves only {Z}. The two behave differently on
// purpose and callers depend on both.
//
// Deleting a permission or a role removes every association row referencing
// it in the same transaction. Unknown ids are reported as not found and never
// produce dangling associations.
//
// Nothing in this package decides whether a user may perform an action.
// UserPermissions is a read-only view of what the roles of a user grant.
package directory
