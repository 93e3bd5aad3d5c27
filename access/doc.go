// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package access maps authenticated identities to permitted operations.

Each route declares the Capability it needs; a role resolves to a
capability set:

	user:  polls:read, polls:submit, results:read
	admin: everything a user has, plus results:read_all,
	       polls:manage, accounts:manage

The authentication middleware stores an Identity in the request context:

	id, ok := access.FromContext(r.Context())
	if id.Can(access.ManagePolls) { ... }
*/
package access
