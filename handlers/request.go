// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-survey/access"
	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/validation"
)

// normalizer is implemented by requests whose fields must be brought into
// their stored form before validation
type normalizer interface {
	Normalize()
}

// decodeRequest parses the JSON body into v and checks its validate tags
func decodeRequest(r *http.Request, v interface{}) error {
	if err := middleware.ParseJSONBody(r, v); err != nil {
		return apperr.Validation("Invalid JSON")
	}
	if n, ok := v.(normalizer); ok {
		n.Normalize()
	}
	return validation.Struct(v)
}

// identity returns the caller put in the context by the authenticator
func identity(r *http.Request) (access.Identity, error) {
	id, ok := access.FromContext(r.Context())
	if !ok {
		return access.Identity{}, apperr.Unauthenticated("Authentication credentials were not provided")
	}
	return id, nil
}
