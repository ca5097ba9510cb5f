// Package authcore is a token-based authentication and role-authorization
// core for request-handling services. It issues, validates, refreshes, and
// revokes opaque session tokens, and answers two questions for every
// incoming request: who is this, if anyone, and is this caller allowed to
// invoke this operation.
//
// The package is the public surface. It exposes [Service], [Builder],
// [Config], the sentinel error set, and the caller-context helpers. The
// session table lives in the session subpackage; HTTP integration lives in
// middleware and web.
//
// # Architecture boundaries
//
// authcore does not parse requests, route them, or serialize responses;
// that is the dispatch layer's job (see middleware). Credential storage is
// behind [UserDirectory] and password hashing behind [PasswordHasher];
// both are capabilities the embedder supplies. Sessions live in volatile
// process memory: a restart invalidates every session.
//
// # Concurrency
//
// Service methods are safe for concurrent use after [Builder.Build]. The
// session store's lock is never held across UserDirectory or
// PasswordHasher calls, so slow credential backends cannot stall token
// validation.
package authcore
