// Package access holds the static operator allow-list. The list is
// fixed at process start; there is no runtime mutation.
package access

// Gate answers allow/deny for a user ID.
type Gate struct {
	allowed map[int64]struct{}
}

// NewGate builds a Gate from the configured operator IDs.
func NewGate(userIDs []int64) *Gate {
	allowed := make(map[int64]struct{}, len(userIDs))
	for _, id := range userIDs {
		allowed[id] = struct{}{}
	}
	return &Gate{allowed: allowed}
}

// Allowed reports whether userID is on the allow-list.
func (g *Gate) Allowed(userID int64) bool {
	_, ok := g.allowed[userID]
	return ok
}

// Members returns the allow-list, in no particular order. The digest
// scheduler uses it as its recipient set.
func (g *Gate) Members() []int64 {
	members := make([]int64, 0, len(g.allowed))
	for id := range g.allowed {
		members = append(members, id)
	}
	return members
}
