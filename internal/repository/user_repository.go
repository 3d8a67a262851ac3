package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pandhuwib/go-blog-api/internal/model"
)

const userColumns = "id, user_role_id, user_status_id, username, password, name, photo, email, created_at, updated_at"

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// rowScanner covers *sql.Row and *sql.Rows so the same scan helper works
// inside and outside transactions.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.UserRoleID, &u.UserStatusID, &u.Username, &u.Password,
		&u.Name, &u.Photo, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// FindAll returns every user together with their posts.
func (r *UserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, classify(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	posts, err := r.postsByUser(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Posts = posts[users[i].ID]
	}
	return users, nil
}

// FindByID returns one user together with their posts.
func (r *UserRepo) FindByID(ctx context.Context, id int) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err != nil {
		return model.User{}, classify(err)
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, title, body, created_at, updated_at FROM posts WHERE user_id = ? ORDER BY id", id)
	if err != nil {
		return model.User{}, classify(err)
	}
	defer rows.Close()
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Body, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return model.User{}, classify(err)
		}
		u.Posts = append(u.Posts, p)
	}
	if err := rows.Err(); err != nil {
		return model.User{}, classify(err)
	}
	return u, nil
}

// FindByUsername fetches a user by exact username. Used by login.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ? LIMIT 1", username))
	if err != nil {
		return model.User{}, classify(err)
	}
	return u, nil
}

// ExistsByID reports whether a user row with the given id exists.
func (r *UserRepo) ExistsByID(ctx context.Context, id int) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(1) FROM users WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, classify(err)
	}
	return n > 0, nil
}

// UsernameTaken reports whether another user (excluding excludeID) already
// holds the username. Pass excludeID 0 on create.
func (r *UserRepo) UsernameTaken(ctx context.Context, username string, excludeID int) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM users WHERE username = ? AND id <> ?", username, excludeID).Scan(&n)
	if err != nil {
		return false, classify(err)
	}
	return n > 0, nil
}

// EmailTaken reports whether another user (excluding excludeID) already
// holds the email.
func (r *UserRepo) EmailTaken(ctx context.Context, email string, excludeID int) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM users WHERE email = ? AND id <> ?", email, excludeID).Scan(&n)
	if err != nil {
		return false, classify(err)
	}
	return n > 0, nil
}

// Create inserts a user and reads the stored row back inside the same
// transaction, so the response reflects exactly what was committed.
func (r *UserRepo) Create(ctx context.Context, data model.UserData) (model.User, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.User{}, classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (user_role_id, user_status_id, username, password, name, photo, email) VALUES (?,?,?,?,?,?,?)",
		data.UserRoleID, data.UserStatusID, data.Username, data.Password, data.Name, data.Photo, data.Email)
	if err != nil {
		return model.User{}, classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, classify(err)
	}

	u, err := scanUser(tx.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err != nil {
		return model.User{}, classify(err)
	}
	if err := tx.Commit(); err != nil {
		return model.User{}, classify(err)
	}
	return u, nil
}

// Update mutates a user and reads the stored row back inside the same
// transaction. An empty Password or a nil Photo leaves that column alone.
func (r *UserRepo) Update(ctx context.Context, id int, data model.UserData) (model.User, error) {
	sets := []string{"user_role_id = ?", "user_status_id = ?", "username = ?", "name = ?", "email = ?"}
	args := []any{data.UserRoleID, data.UserStatusID, data.Username, data.Name, data.Email}
	if data.Password != "" {
		sets = append(sets, "password = ?")
		args = append(args, data.Password)
	}
	if data.Photo != nil {
		sets = append(sets, "photo = ?")
		args = append(args, data.Photo)
	}
	args = append(args, id)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.User{}, classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return model.User{}, classify(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.User{}, classify(err)
	} else if n == 0 {
		// Distinguish "row missing" from "nothing changed".
		var exists int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM users WHERE id = ?", id).Scan(&exists); err != nil {
			return model.User{}, classify(err)
		}
		if exists == 0 {
			return model.User{}, classify(sql.ErrNoRows)
		}
	}

	u, err := scanUser(tx.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err != nil {
		return model.User{}, classify(err)
	}
	if err := tx.Commit(); err != nil {
		return model.User{}, classify(err)
	}
	return u, nil
}

// Delete removes a user. Deleting an author still referenced by posts is
// blocked by the foreign key and classified as a conflict.
func (r *UserRepo) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
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

// postsByUser loads all posts grouped by author in one query.
func (r *UserRepo) postsByUser(ctx context.Context) (map[int][]model.Post, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, title, body, created_at, updated_at FROM posts ORDER BY id")
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	grouped := make(map[int][]model.Post)
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Body, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, classify(err)
		}
		grouped[p.UserID] = append(grouped[p.UserID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return grouped, nil
}
