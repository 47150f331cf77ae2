// Package securelogin provides an identity and permission subsystem: user
// registration gated by one-time email codes, password login with JWT
// issuance, and role based authorization backed by Bun repositories.
//
// Lifecycle:
//   - Registration creates an unverified user, assigns a default role, and
//     emails a short-lived numeric code. Only the most recently issued code
//     for a user is accepted, earlier codes fail deterministically, and a
//     code that verified an account is consumed and never accepted again.
//   - Verification flips the user to verified. Login refuses unverified
//     accounts, and a verified account with a valid token is what the
//     authorization gate considers authenticated.
//
// Permissions:
//   - The permission catalog is a static, declaration-ordered registry of
//     codes grouped by feature area. PermissionService reconciles the
//     catalog into the database additively and serves grouped listings.
//   - AuthorizationGate wraps routes with an explicit Requirement value:
//     anonymous routes bypass every check, protected routes demand a
//     verified principal, and permission-bearing routes additionally demand
//     every listed code.
//
// Flows return a uniform Result envelope for expected failures (duplicate
// email, stale code, wrong password) and reserve Go errors for
// infrastructure faults, so HTTP handlers can map outcomes to 200/400 and
// faults to 500 without inspecting messages.
package securelogin
