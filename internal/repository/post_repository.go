package repository

import (
	"context"
	"database/sql"

	"github.com/pandhuwib/go-blog-api/internal/model"
)

const postColumns = "id, user_id, title, body, created_at, updated_at"

type PostRepo struct{ DB *sql.DB }

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{DB: db} }

func scanPost(row rowScanner) (model.Post, error) {
	var p model.Post
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Body, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// FindAll returns every post joined with its author and the author's role
// and status. The author's password is scanned but never serialized.
func (r *PostRepo) FindAll(ctx context.Context) ([]model.Post, error) {
	const q = `SELECT
		p.id, p.user_id, p.title, p.body, p.created_at, p.updated_at,
		u.id, u.user_role_id, u.user_status_id, u.username, u.password, u.name, u.photo, u.email, u.created_at, u.updated_at,
		r.id, r.user_role_name, r.user_role_description, r.created_at, r.updated_at,
		s.id, s.user_status_name, s.user_status_description, s.created_at, s.updated_at
	FROM posts p
	JOIN users u ON u.id = p.user_id
	JOIN user_roles r ON r.id = u.user_role_id
	JOIN user_statuses s ON s.id = u.user_status_id
	ORDER BY p.id`

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		var u model.User
		var role model.UserRole
		var status model.UserStatus
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Title, &p.Body, &p.CreatedAt, &p.UpdatedAt,
			&u.ID, &u.UserRoleID, &u.UserStatusID, &u.Username, &u.Password,
			&u.Name, &u.Photo, &u.Email, &u.CreatedAt, &u.UpdatedAt,
			&role.ID, &role.UserRoleName, &role.UserRoleDescription, &role.CreatedAt, &role.UpdatedAt,
			&status.ID, &status.UserStatusName, &status.UserStatusDescription, &status.CreatedAt, &status.UpdatedAt,
		); err != nil {
			return nil, classify(err)
		}
		u.UserRole = &role
		u.UserStatus = &status
		p.User = &u
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return posts, nil
}

func (r *PostRepo) FindByID(ctx context.Context, id int) (model.Post, error) {
	p, err := scanPost(r.DB.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE id = ?", id))
	if err != nil {
		return model.Post{}, classify(err)
	}
	return p, nil
}

func (r *PostRepo) ExistsByID(ctx context.Context, id int) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(1) FROM posts WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, classify(err)
	}
	return n > 0, nil
}

// Create inserts a post and reads it back inside one transaction.
func (r *PostRepo) Create(ctx context.Context, data model.PostData) (model.Post, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Post{}, classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO posts (user_id, title, body) VALUES (?,?,?)",
		data.UserID, data.Title, data.Body)
	if err != nil {
		return model.Post{}, classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Post{}, classify(err)
	}

	p, err := scanPost(tx.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE id = ?", id))
	if err != nil {
		return model.Post{}, classify(err)
	}
	if err := tx.Commit(); err != nil {
		return model.Post{}, classify(err)
	}
	return p, nil
}

// Update mutates title/body and reads the row back inside one transaction.
// The owning user never changes after creation.
func (r *PostRepo) Update(ctx context.Context, id int, data model.PostData) (model.Post, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Post{}, classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"UPDATE posts SET title = ?, body = ? WHERE id = ?",
		data.Title, data.Body, id); err != nil {
		return model.Post{}, classify(err)
	}

	p, err := scanPost(tx.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE id = ?", id))
	if err != nil {
		return model.Post{}, classify(err)
	}
	if err := tx.Commit(); err != nil {
		return model.Post{}, classify(err)
	}
	return p, nil
}

func (r *PostRepo) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
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
