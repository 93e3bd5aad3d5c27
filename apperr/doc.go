// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apperr defines the error taxonomy surfaced to API callers.

Every error a handler returns falls into one kind:

	KindValidation      → 400  malformed or inconsistent input
	KindUnauthenticated → 401  missing or invalid token
	KindForbidden       → 403  capability not granted
	KindNotFound        → 404  missing or hidden resource
	KindConflict        → 409  uniqueness violation
	KindInternal        → 500  infrastructure failure

Match kinds with errors.Is:

	if errors.Is(err, apperr.ErrNotFound) { ... }

Errors from other packages map to KindInternal.
*/
package apperr
