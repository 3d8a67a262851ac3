package repository

import (
	"context"
	"database/sql"

	"github.com/pandhuwib/go-blog-api/internal/model"
)

const userRoleColumns = "id, user_role_name, user_role_description, created_at, updated_at"

type UserRoleRepo struct{ DB *sql.DB }

func NewUserRoleRepo(db *sql.DB) *UserRoleRepo { return &UserRoleRepo{DB: db} }

func scanUserRole(row rowScanner) (model.UserRole, error) {
	var ur model.UserRole
	err := row.Scan(&ur.ID, &ur.UserRoleName, &ur.UserRoleDescription, &ur.CreatedAt, &ur.UpdatedAt)
	return ur, err
}

func (r *UserRoleRepo) FindAll(ctx context.Context) ([]model.UserRole, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userRoleColumns+" FROM user_roles ORDER BY id")
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var roles []model.UserRole
	for rows.Next() {
		ur, err := scanUserRole(rows)
		if err != nil {
			return nil, classify(err)
		}
		roles = append(roles, ur)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return roles, nil
}

func (r *UserRoleRepo) FindByID(ctx context.Context, id int) (model.UserRole, error) {
	ur, err := scanUserRole(r.DB.QueryRowContext(ctx,
		"SELECT "+userRoleColumns+" FROM user_roles WHERE id = ?", id))
	if err != nil {
		return model.UserRole{}, classify(err)
	}
	return ur, nil
}

func (r *UserRoleRepo) ExistsByID(ctx context.Context, id int) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(1) FROM user_roles WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, classify(err)
	}
	return n > 0, nil
}

// Create inserts a role and reads it back inside one transaction.
func (r *UserRoleRepo) Create(ctx context.Context, data model.UserRoleData) (model.UserRole, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.UserRole{}, classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO user_roles (user_role_name, user_role_description) VALUES (?,?)",
		data.UserRoleName, data.UserRoleDescription)
	if err != nil {
		return model.UserRole{}, classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.UserRole{}, classify(err)
	}

	ur, err := scanUserRole(tx.QueryRowContext(ctx,
		"SELECT "+userRoleColumns+" FROM user_roles WHERE id = ?", id))
	if err != nil {
		return model.UserRole{}, classify(err)
	}
	if err := tx.Commit(); err != nil {
		return model.UserRole{}, classify(err)
	}
	return ur, nil
}

// Update mutates a role and reads it back inside one transaction.
func (r *UserRoleRepo) Update(ctx context.Context, id int, data model.UserRoleData) (model.UserRole, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.UserRole{}, classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"UPDATE user_roles SET user_role_name = ?, user_role_description = ? WHERE id = ?",
		data.UserRoleName, data.UserRoleDescription, id); err != nil {
		return model.UserRole{}, classify(err)
	}

	ur, err := scanUserRole(tx.QueryRowContext(ctx,
		"SELECT "+userRoleColumns+" FROM user_roles WHERE id = ?", id))
	if err != nil {
		return model.UserRole{}, classify(err)
	}
	if err := tx.Commit(); err != nil {
		return model.UserRole{}, classify(err)
	}
	return ur, nil
}

// Delete removes a role. Roles still referenced by users are blocked by the
// foreign key and classified as a conflict.
func (r *UserRoleRepo) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM user_roles WHERE id = ?", id)
	if err != nil {
		return classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classify(err)
	}
	if n == 0 {
		return classify(sql.ErrNoRows)
	}
	return nil
}
