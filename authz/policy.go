package authz

// Actor is the identity attempting an operation. The zero value is the
// anonymous visitor. It is threaded explicitly through every use-case call
// rather than read from ambient request state.
type Actor struct {
	UserID  uint
	Name    string
	IsAdmin bool
}

// Anonymous returns the unauthenticated actor.
func Anonymous() Actor { return Actor{} }

// Authenticated reports whether the actor carries a logged-in identity.
func (a Actor) Authenticated() bool { return a.UserID != 0 }

// Action enumerates the operations the policy decides on.
type Action int

const (
	CreateArticle Action = iota
	EditArticle
	DeleteArticle
	PostComment
	ViewContent
)

// Owned is anything with an owning user, i.e. an authorization target.
type Owned interface {
	OwnerID() uint
}

// Can decides whether actor may perform action on target. Target may be nil
// for actions that are not bound to an existing record (CreateArticle,
// PostComment, ViewContent).
func Can(actor Actor, action Action, target Owned) bool {
	switch action {
	case PostComment, ViewContent:
		return true
	case CreateArticle:
		return actor.Authenticated()
	case EditArticle, DeleteArticle:
		if !actor.Authenticated() || target == nil {
			return false
		}
		return actor.IsAdmin || actor.UserID == target.OwnerID()
	default:
		return false
	}
}
