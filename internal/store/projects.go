package store

import (
	"context"
	"time"

	"folio-go/internal/model"
)

const projectColumns = "id, name, link, description, created_at"

// CreateProjectParams holds the fields required to create a project.
type CreateProjectParams struct {
	Name        string
	Link        string
	Description string
	CreatedAt   time.Time
}

// CreateProject inserts a new project and returns the stored record.
func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (model.Project, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO projects (name, link, description, created_at) VALUES (?, ?, ?, ?)`,
		arg.Name, arg.Link, arg.Description, arg.CreatedAt,
	)
	if err != nil {
		return model.Project{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Project{}, err
	}

	return model.Project{
		ID:          id,
		Name:        arg.Name,
		Link:        arg.Link,
		Description: arg.Description,
		CreatedAt:   arg.CreatedAt,
	}, nil
}

// ListProjects returns all projects in insertion order.
func (q *Queries) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Link, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// DeleteProjectByID deletes the project with the given id.
// Deleting a nonexistent id is a no-op.
func (q *Queries) DeleteProjectByID(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	return err
}

// DeleteProjectByName deletes the oldest project with the given name.
// When several projects share a name only the first match goes away;
// deleting a nonexistent name is a no-op.
func (q *Queries) DeleteProjectByName(ctx context.Context, name string) error {
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id = (SELECT MIN(id) FROM projects WHERE name = ?)`, name)
	return err
}
