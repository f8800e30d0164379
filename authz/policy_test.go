package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type ownedBy uint

func (o ownedBy) OwnerID() uint { return uint(o) }

func TestCan(t *testing.T) {
	anon := Anonymous()
	owner := Actor{UserID: 1, Name: "Ann"}
	other := Actor{UserID: 2, Name: "Bob"}
	admin := Actor{UserID: 3, Name: "Root", IsAdmin: true}
	target := ownedBy(1)

	cases := []struct {
		name   string
		actor  Actor
		action Action
		target Owned
		want   bool
	}{
		{"anonymous can view", anon, ViewContent, nil, true},
		{"anonymous can comment", anon, PostComment, nil, true},
		{"anonymous cannot create", anon, CreateArticle, nil, false},
		{"anonymous cannot edit", anon, EditArticle, target, false},
		{"anonymous cannot delete", anon, DeleteArticle, target, false},
		{"user can create", owner, CreateArticle, nil, true},
		{"owner can edit own", owner, EditArticle, target, true},
		{"owner can delete own", owner, DeleteArticle, target, true},
		{"other cannot edit", other, EditArticle, target, false},
		{"other cannot delete", other, DeleteArticle, target, false},
		{"admin can edit any", admin, EditArticle, target, true},
		{"admin can delete any", admin, DeleteArticle, target, true},
		{"edit without target denied", owner, EditArticle, nil, false},
		{"unknown action denied", owner, Action(99), nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Can(tc.actor, tc.action, tc.target))
		})
	}
}

func TestAuthenticated(t *testing.T) {
	assert.False(t, Anonymous().Authenticated())
	assert.True(t, Actor{UserID: 7}.Authenticated())
}
