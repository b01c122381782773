package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/agrovia/farm-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

// RoleRepository handles role and permission reference data
type RoleRepository struct {
	db *DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// GetByID retrieves a role by ID
func (r *RoleRepository) GetByID(ctx context.Context, id int) (*domain.Role, error) {
	return r.get(ctx, "id = $1", id)
}

// GetByName retrieves a role by name
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.get(ctx, "name = $1", name)
}

func (r *RoleRepository) get(ctx context.Context, where string, arg any) (*domain.Role, error) {
	query := fmt.Sprintf(`SELECT id, name FROM roles WHERE %s`, where)

	var role domain.Role
	err := r.db.conn(ctx).QueryRow(ctx, query, arg).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	return &role, nil
}

// List retrieves all roles with their permissions
func (r *RoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	query := `
		SELECT r.id, r.name, p.id, p.name, p.description
		FROM roles r
		LEFT JOIN role_permissions rp ON r.id = rp.role_id
		LEFT JOIN permissions p ON rp.permission_id = p.id
		ORDER BY r.id, p.id
	`

	rows, err := r.db.conn(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var (
			roleID   int
			roleName string
			permID   *int
			permName *string
			permDesc *string
		)
		if err := rows.Scan(&roleID, &roleName, &permID, &permName, &permDesc); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}

		if len(roles) == 0 || roles[len(roles)-1].ID != roleID {
			roles = append(roles, domain.Role{ID: roleID, Name: roleName})
		}
		if permID != nil {
			last := &roles[len(roles)-1]
			last.Permissions = append(last.Permissions, domain.Permission{
				ID:          *permID,
				Name:        *permName,
				Description: *permDesc,
			})
		}
	}

	return roles, rows.Err()
}

// HasPermission checks whether a role carries a named permission
func (r *RoleRepository) HasPermission(ctx context.Context, roleID int, permission string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM role_permissions rp
			INNER JOIN permissions p ON rp.permission_id = p.id
			WHERE rp.role_id = $1 AND LOWER(p.name) = LOWER($2)
		)
	`

	var has bool
	if err := r.db.conn(ctx).QueryRow(ctx, query, roleID, permission).Scan(&has); err != nil {
		return false, fmt.Errorf("failed to check permission: %w", err)
	}

	return has, nil
}
