package store

import (
	"context"
	"time"

	"folio-go/internal/model"
)

const contactColumns = "id, name, email, message, created_at"

// CreateContactParams holds the fields required to create a contact message.
type CreateContactParams struct {
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

// CreateContact inserts a new contact message and returns the stored record.
func (q *Queries) CreateContact(ctx context.Context, arg CreateContactParams) (model.Contact, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO contacts (name, email, message, created_at) VALUES (?, ?, ?, ?)`,
		arg.Name, arg.Email, arg.Message, arg.CreatedAt,
	)
	if err != nil {
		return model.Contact{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Contact{}, err
	}

	return model.Contact{
		ID:        id,
		Name:      arg.Name,
		Email:     arg.Email,
		Message:   arg.Message,
		CreatedAt: arg.CreatedAt,
	}, nil
}

// ListContacts returns all contact messages, most recent first.
func (q *Queries) ListContacts(ctx context.Context) ([]model.Contact, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contacts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// DeleteContactByID deletes the contact message with the given id.
// Deleting a nonexistent id is a no-op.
func (q *Queries) DeleteContactByID(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	return err
}
