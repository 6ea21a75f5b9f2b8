// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package policy holds the access-control decisions for articles and
// categories. The functions are pure: they look at an identity and a
// record and answer yes or no, leaving logging and redirects to callers.
package policy

import "letterpress/internal/models"

// CanModify reports whether the user may edit, delete, publish or pause
// the article: they wrote it, or they are an admin.
func CanModify(a *models.Article, id models.Identity) bool {
	if a == nil {
		return false
	}
	return a.AuthorID == id.ID || id.Role == models.RoleAdmin
}

// Allowed reports whether the role is one of the required roles. An empty
// requirement list means the endpoint is open to any authenticated user.
func Allowed(role models.Role, required ...models.Role) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}
