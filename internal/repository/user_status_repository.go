package repository

import (
	"context"
	"database/sql"

	"github.com/pandhuwib/go-blog-api/internal/model"
)

const userStatusColumns = "id, user_status_name, user_status_description, created_at, updated_at"

type UserStatusRepo struct{ DB *sql.DB }

func NewUserStatusRepo(db *sql.DB) *UserStatusRepo { return &UserStatusRepo{DB: db} }

func scanUserStatus(row rowScanner) (model.UserStatus, error) {
	var us model.UserStatus
	err := row.Scan(&us.ID, &us.UserStatusName, &us.UserStatusDescription, &us.CreatedAt, &us.UpdatedAt)
	return us, err
}

func (r *UserStatusRepo) FindAll(ctx context.Context) ([]model.UserStatus, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userStatusColumns+" FROM user_statuses ORDER BY id")
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var statuses []model.UserStatus
	for rows.Next() {
		us, err := scanUserStatus(rows)
		if err != nil {
			return nil, classify(err)
		}
		statuses = append(statuses, us)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return statuses, nil
}

func (r *UserStatusRepo) FindByID(ctx context.Context, id int) (model.UserStatus, error) {
	us, err := scanUserStatus(r.DB.QueryRowContext(ctx,
		"SELECT "+userStatusColumns+" FROM user_statuses WHERE id = ?", id))
	if err != nil {
		return model.UserStatus{}, classify(err)
	}
	return us, nil
}

func (r *UserStatusRepo) ExistsByID(ctx context.Context, id int) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(1) FROM user_statuses WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, classify(err)
	}
	return n > 0, nil
}

func (r *UserStatusRepo) Create(ctx context.Context, data model.UserStatusData) (model.UserStatus, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.UserStatus{}, classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO user_statuses (user_status_name, user_status_description) VALUES (?,?)",
		data.UserStatusName, data.UserStatusDescription)
	if err != nil {
		return model.UserStatus{}, classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.UserStatus{}, classify(err)
	}

	us, err := scanUserStatus(tx.QueryRowContext(ctx,
		"SELECT "+userStatusColumns+" FROM user_statuses WHERE id = ?", id))
	if err != nil {
		return model.UserStatus{}, classify(err)
	}
	if err := tx.Commit(); err != nil {
		return model.UserStatus{}, classify(err)
	}
	return us, nil
}

func (r *UserStatusRepo) Update(ctx context.Context, id int, data model.UserStatusData) (model.UserStatus, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.UserStatus{}, classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"UPDATE user_statuses SET user_status_name = ?, user_status_description = ? WHERE id = ?",
		data.UserStatusName, data.UserStatusDescription, id); err != nil {
		return model.UserStatus{}, classify(err)
	}

	us, err := scanUserStatus(tx.QueryRowContext(ctx,
		"SELECT "+userStatusColumns+" FROM user_statuses WHERE id = ?", id))
	if err != nil {
		return model.UserStatus{}, classify(err)
	}
	if err := tx.Commit(); err != nil {
		return model.UserStatus{}, classify(err)
	}
	return us, nil
}

func (r *UserStatusRepo) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM user_statuses WHERE id = ?", id)
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
