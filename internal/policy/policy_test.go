package policy

import (
	"testing"

	"letterpress/internal/models"
)

func TestCanModify(t *testing.T) {
	article := &models.Article{ID: 7, AuthorID: 42}

	tests := []struct {
		name string
		id   models.Identity
		want bool
	}{
		{"owner", models.Identity{ID: 42, Role: models.RoleAuthor}, true},
		{"admin non-owner", models.Identity{ID: 1, Role: models.RoleAdmin}, true},
		{"other author", models.Identity{ID: 9, Role: models.RoleAuthor}, false},
		{"admin owner", models.Identity{ID: 42, Role: models.RoleAdmin}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModify(article, tt.id); got != tt.want {
				t.Errorf("CanModify: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanModifyNilArticle(t *testing.T) {
	if CanModify(nil, models.Identity{ID: 1, Role: models.RoleAdmin}) {
		t.Error("nil article must never be modifiable")
	}
}

func TestAllowed(t *testing.T) {
	if !Allowed(models.RoleAuthor, models.RoleAuthor, models.RoleAdmin) {
		t.Error("author should reach authoring endpoints")
	}
	if Allowed(models.RoleAuthor, models.RoleAdmin) {
		t.Error("author should not reach admin-only endpoints")
	}
	if !Allowed(models.RoleAuthor) {
		t.Error("empty requirement list should allow any role")
	}
}
