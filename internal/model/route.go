package model

import (
	"fmt"
	"strings"
)

// Route actions.
const (
	ActionList    = "list"
	ActionDetails = "details"
	ActionEdit    = "edit"
	ActionCreate  = "create"
)

// Route is a parsed navigation target such as /apps/invoice/details/3.
type Route struct {
	Resource string
	Action   string
	ID       string
}

// ParseRoute splits an /apps/<resource>/<action>[/<id>] target. The
// customer-list alias maps to the plain list action.
func ParseRoute(target string) (Route, error) {
	parts := strings.Split(strings.Trim(target, "/"), "/")
	if len(parts) < 3 || parts[0] != "apps" || parts[1] == "" {
		return Route{}, fmt.Errorf("unknown route %q", target)
	}

	r := Route{Resource: parts[1], Action: parts[2]}
	if r.Action == r.Resource+"-list" {
		r.Action = ActionList
	}
	switch r.Action {
	case ActionList, ActionCreate:
		if len(parts) != 3 {
			return Route{}, fmt.Errorf("unknown route %q", target)
		}
	case ActionDetails, ActionEdit:
		if len(parts) != 4 || parts[3] == "" {
			return Route{}, fmt.Errorf("route %q needs a record id", target)
		}
		r.ID = parts[3]
	default:
		return Route{}, fmt.Errorf("unknown route %q", target)
	}

	return r, nil
}

// RecordRoute builds the route of a record action.
func RecordRoute(resource, action, id string) string {
	return fmt.Sprintf("/apps/%s/%s/%s", resource, action, id)
}

// String returns the canonical target.
func (r Route) String() string {
	if r.ID == "" {
		return fmt.Sprintf("/apps/%s/%s", r.Resource, r.Action)
	}
	return RecordRoute(r.Resource, r.Action, r.ID)
}
