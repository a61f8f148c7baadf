package authz

// Package authz decides whether a principal may perform an action on a
// resource. Rules are evaluated in a fixed order: authentication gate,
// ownership override, role grant, read default. The first rule that
// claims the request wins.

type Permission string

const (
	PermView   Permission = "view"
	PermCreate Permission = "create"
	PermEdit   Permission = "edit"
	PermDelete Permission = "delete"
)

type Role string

const (
	RoleViewer Role = "Viewer"
	RoleEditor Role = "Editor"
	RoleAdmin  Role = "Admin"
)

func ValidRole(r string) bool {
	switch Role(r) {
	case RoleViewer, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

type Kind string

const (
	KindAuthor       Kind = "author"
	KindBook         Kind = "book"
	KindLibrary      Kind = "library"
	KindPost         Kind = "post"
	KindComment      Kind = "comment"
	KindUser         Kind = "user"
	KindNotification Kind = "notification"
)

type Principal struct {
	UserID        string
	Role          Role
	Authenticated bool
}

type Resource struct {
	Kind Kind
	// OwnerID is set for object-level checks on user-owned resources;
	// empty for type-level actions such as create or list.
	OwnerID string
}

type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// rolePerms maps each role to its coarse-grained grants. A missing entry
// means deny.
var rolePerms = map[Role]map[Permission]bool{
	RoleViewer: {
		PermView: true,
	},
	RoleEditor: {
		PermView:   true,
		PermCreate: true,
		PermEdit:   true,
	},
	RoleAdmin: {
		PermView:   true,
		PermCreate: true,
		PermEdit:   true,
		PermDelete: true,
	},
}

// ownedKinds are the resource kinds where mutation is restricted to the
// owner regardless of role grants. Admins keep their override.
var ownedKinds = map[Kind]bool{
	KindPost:         true,
	KindComment:      true,
	KindUser:         true,
	KindNotification: true,
}

// gatedKinds require authentication even for reads.
var gatedKinds = map[Kind]bool{
	KindUser:         true,
	KindNotification: true,
}

// Rule examines a request and either decides it (decided=true) or passes
// it on to the next rule.
type Rule func(p Principal, perm Permission, res Resource) (d Decision, decided bool)

var rules = []Rule{
	authenticationRule,
	ownershipRule,
	ownedCreateRule,
	roleRule,
	readDefaultRule,
}

// Check runs the rule chain and returns the first decision made.
func Check(p Principal, perm Permission, res Resource) Decision {
	for _, rule := range rules {
		if d, decided := rule(p, perm, res); decided {
			return d
		}
	}
	return Deny("no rule permitted the action")
}

// authenticationRule denies anonymous principals every write and any read
// of a gated resource kind. Authenticated principals pass through.
func authenticationRule(p Principal, perm Permission, res Resource) (Decision, bool) {
	if p.Authenticated {
		return Decision{}, false
	}
	if perm != PermView {
		return Deny("authentication required"), true
	}
	if gatedKinds[res.Kind] {
		return Deny("authentication required"), true
	}
	// anonymous read of an ungated resource
	return Allow(), true
}

// ownershipRule restricts edit and delete of user-owned resources to the
// owner. A non-owner is denied even when the role grants the permission;
// only Admin overrides.
func ownershipRule(p Principal, perm Permission, res Resource) (Decision, bool) {
	if perm != PermEdit && perm != PermDelete {
		return Decision{}, false
	}
	if !ownedKinds[res.Kind] || res.OwnerID == "" {
		return Decision{}, false
	}
	if p.UserID == res.OwnerID {
		return Allow(), true
	}
	if p.Role == RoleAdmin {
		return Allow(), true
	}
	return Deny("only the owner may modify this resource"), true
}

// ownedCreateRule lets any authenticated principal create resources they
// will own themselves (posts, comments). Catalog resources stay behind
// role grants.
func ownedCreateRule(p Principal, perm Permission, res Resource) (Decision, bool) {
	if perm == PermCreate && ownedKinds[res.Kind] {
		return Allow(), true
	}
	return Decision{}, false
}

// roleRule grants writes according to the role's permission set.
func roleRule(p Principal, perm Permission, res Resource) (Decision, bool) {
	if perm == PermView {
		return Decision{}, false
	}
	if rolePerms[p.Role][perm] {
		return Allow(), true
	}
	return Deny("role does not grant " + string(perm)), true
}

// readDefaultRule allows any remaining read.
func readDefaultRule(p Principal, perm Permission, res Resource) (Decision, bool) {
	if perm == PermView {
		return Allow(), true
	}
	return Decision{}, false
}
