package domain

// User is the caller identity resolved by an Authorizer.
type User struct {
	// ID is the subject of the credential. It is empty for
	// anonymous callers.
	ID string
	// Scopes are the privileges granted to the credential.
	Scopes []string
	// Claims holds any additional attributes carried by the credential.
	Claims map[string]interface{}
}

// Anonymous reports whether the user was resolved without a credential.
func (u User) Anonymous() bool {
	return u.ID == ""
}

// HasScope reports whether the user was granted the named scope.
func (u User) HasScope(scope string) bool {
	for _, s := range u.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// AnonymousUser represents a caller that presented no credential.
var AnonymousUser = User{}
