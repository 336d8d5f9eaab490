package orgscope

import (
	"context"

	"go-salescrm/internal/user"

	"github.com/google/uuid"
)

// maxTraversalDepth bounds the supervisor-graph walk. Supervisor links are
// not validated for acyclicity anywhere, so the walk must terminate on its
// own even when the data contains a cycle.
const maxTraversalDepth = 10

// Actor is the authenticated identity scope resolution runs for; the fields
// come straight from the auth token claims.
type Actor struct {
	ID           uuid.UUID
	Role         string
	DepartmentID *uuid.UUID
}

// Directory is the subset of the user repository the resolver reads.
type Directory interface {
	FindIDsByDepartment(ctx context.Context, departmentID uuid.UUID) ([]uuid.UUID, error)
	FindIDsBySupervisorIn(ctx context.Context, supervisorIDs []uuid.UUID) ([]uuid.UUID, error)
}

//go:generate mockgen -source=resolver.go -destination=mock/resolver_mock.go -package=mock
type Resolver interface {
	ResolveScope(ctx context.Context, actor Actor) (Scope, error)
}

type resolver struct {
	dir Directory
}

func NewResolver(dir Directory) Resolver {
	return &resolver{dir: dir}
}

// ResolveScope computes which users' records the actor may see.
//
//   - ADMIN sees everything.
//   - MANAGER sees every user in their own department (themselves included);
//     a manager without a department sees only themselves.
//   - SUPERVISOR sees themselves plus all transitive reports, resolved by
//     breadth-first traversal of the supervisor graph.
//   - Everyone else (EMPLOYEE, HR, FINANCE, unknown roles) sees only
//     themselves.
//
// Any directory failure is returned as-is: the resolver must never widen
// scope when a lookup fails.
func (r *resolver) ResolveScope(ctx context.Context, actor Actor) (Scope, error) {
	switch actor.Role {
	case user.RoleAdmin:
		return Unrestricted(), nil

	case user.RoleManager:
		if actor.DepartmentID == nil {
			return Restricted([]uuid.UUID{actor.ID}), nil
		}
		ids, err := r.dir.FindIDsByDepartment(ctx, *actor.DepartmentID)
		if err != nil {
			return Scope{}, err
		}
		return Restricted(ids), nil

	case user.RoleSupervisor:
		ids, err := r.resolveSubordinates(ctx, actor.ID)
		if err != nil {
			return Scope{}, err
		}
		return Restricted(ids), nil

	default:
		return Restricted([]uuid.UUID{actor.ID}), nil
	}
}

// resolveSubordinates walks the supervisor graph level by level. The visited
// set keeps cyclic supervisor data from looping; the walk also stops when a
// level contributes nothing new or the depth bound is reached.
func (r *resolver) resolveSubordinates(ctx context.Context, root uuid.UUID) ([]uuid.UUID, error) {
	visible := []uuid.UUID{root}
	visited := map[uuid.UUID]struct{}{root: {}}
	frontier := []uuid.UUID{root}

	for depth := 0; depth < maxTraversalDepth && len(frontier) > 0; depth++ {
		reports, err := r.dir.FindIDsBySupervisorIn(ctx, frontier)
		if err != nil {
			return nil, err
		}

		next := make([]uuid.UUID, 0, len(reports))
		for _, id := range reports {
			if _, seen := visited[id]; seen {
				continue
			}
			visited[id] = struct{}{}
			next = append(next, id)
		}

		if len(next) == 0 {
			break
		}

		visible = append(visible, next...)
		frontier = next
	}

	return visible, nil
}
