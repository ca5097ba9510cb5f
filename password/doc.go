// Package password provides the default PasswordHasher implementation:
// salted bcrypt with a configurable cost. The core treats hashing as an
// opaque capability, so embedders with a different policy implement the
// root-package interface instead.
package password
