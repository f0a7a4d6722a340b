package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rolodexhq/rolodex/api/internal/dto"
	"github.com/rolodexhq/rolodex/api/internal/entity"
	"github.com/rolodexhq/rolodex/api/internal/service/importer"
)

// ErrContactNotFound is returned when no contact matches the lookup criteria.
var ErrContactNotFound = errors.New("contact not found")

// exportRowCap bounds unpaginated reads (rows_per_page=-1 and CSV export).
const exportRowCap = 10000

// ContactsRepository describes persistence operations for contacts. Every
// operation is scoped to exactly one owner.
type ContactsRepository interface {
	List(ctx context.Context, userID uuid.UUID, filter dto.ContactFilter) ([]entity.Contact, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Contact, error)
	Create(ctx context.Context, contact *entity.Contact) error
	Update(ctx context.Context, contact *entity.Contact) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error)
	ListIdentityKeys(ctx context.Context, userID uuid.UUID) (importer.IdentityKeys, error)
	InsertBatch(ctx context.Context, userID uuid.UUID, batch []importer.Candidate) error
}

// PGXContactsRepository implements ContactsRepository using pgx.
type PGXContactsRepository struct {
	pool pgxPool
}

// NewPGXContactsRepository wires a pgx backed repository.
func NewPGXContactsRepository(pool *pgxpool.Pool) *PGXContactsRepository {
	return &PGXContactsRepository{pool: pool}
}

const contactColumns = `id, user_id, full_name, email, phone, company, job_title, linkedin_url, photo_url, source, tags, created_at, updated_at`

// sortColumns whitelists ORDER BY targets; anything else falls back to tags.
var sortColumns = map[string]string{
	"full_name": "full_name",
	"company":   "company",
	"tags":      "tags",
	"source":    "source",
}

// List retrieves the owner's contacts matching the filter.
func (r *PGXContactsRepository) List(ctx context.Context, userID uuid.UUID, filter dto.ContactFilter) ([]entity.Contact, error) {
	query := strings.Builder{}
	query.WriteString("SELECT " + contactColumns + " FROM contacts")

	clauses := []string{"user_id = $1"}
	args := []any{userID}
	idx := 2

	if filter.Q != "" {
		pattern := fmt.Sprintf("%%%s%%", filter.Q)
		clauses = append(clauses, fmt.Sprintf("(full_name ILIKE $%d OR email ILIKE $%d OR company ILIKE $%d)", idx, idx+1, idx+2))
		args = append(args, pattern, pattern, pattern)
		idx += 3
	}
	if filter.Tag != "" {
		clauses = append(clauses, fmt.Sprintf("$%d = ANY(tags)", idx))
		args = append(args, filter.Tag)
		idx++
	}
	if filter.Source != "" {
		clauses = append(clauses, fmt.Sprintf("source = $%d", idx))
		args = append(args, filter.Source)
		idx++
	}

	query.WriteString(" WHERE ")
	query.WriteString(strings.Join(clauses, " AND "))

	column, ok := sortColumns[filter.SortColumn]
	if !ok {
		column = "tags"
	}
	direction := "ASC"
	if strings.EqualFold(filter.SortDirection, "desc") {
		direction = "DESC"
	}
	query.WriteString(fmt.Sprintf(" ORDER BY %s %s NULLS LAST, full_name ASC", column, direction))

	if filter.PerPage == entity.RowsPerPageAll {
		query.WriteString(fmt.Sprintf(" LIMIT %d", exportRowCap))
	} else {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		perPage := filter.PerPage
		if perPage <= 0 {
			perPage = 50
		}
		offset := (page - 1) * perPage
		query.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1))
		args = append(args, perPage, offset)
	}

	rows, err := r.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	return scanContacts(rows)
}

// FindByID returns a single contact owned by the user.
func (r *PGXContactsRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Contact, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1 AND user_id = $2`, id, userID)

	contact, err := scanContact(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("query contact by id: %w", err)
	}
	return contact, nil
}

// Create inserts a contact and fills in its generated id and timestamps.
func (r *PGXContactsRepository) Create(ctx context.Context, contact *entity.Contact) error {
	if contact == nil {
		return fmt.Errorf("contact payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO contacts (user_id, full_name, email, phone, company, job_title, linkedin_url, photo_url, source, tags)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at, updated_at
    `,
		contact.UserID,
		contact.FullName,
		contact.Email,
		contact.Phone,
		contact.Company,
		contact.JobTitle,
		contact.LinkedInURL,
		contact.PhotoURL,
		contact.Source,
		tagsOrEmpty(contact.Tags),
	)

	if err := row.Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// Update rewrites the mutable fields of a contact owned by the user.
func (r *PGXContactsRepository) Update(ctx context.Context, contact *entity.Contact) error {
	if contact == nil {
		return fmt.Errorf("contact payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        UPDATE contacts SET
            full_name = $1,
            email = $2,
            phone = $3,
            company = $4,
            job_title = $5,
            linkedin_url = $6,
            photo_url = $7,
            tags = $8,
            updated_at = NOW()
        WHERE id = $9 AND user_id = $10
        RETURNING updated_at
    `,
		contact.FullName,
		contact.Email,
		contact.Phone,
		contact.Company,
		contact.JobTitle,
		contact.LinkedInURL,
		contact.PhotoURL,
		tagsOrEmpty(contact.Tags),
		contact.ID,
		contact.UserID,
	)

	if err := row.Scan(&contact.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrContactNotFound
		}
		return fmt.Errorf("update contact: %w", err)
	}
	return nil
}

// Delete removes a single contact owned by the user.
func (r *PGXContactsRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

// DeleteMany removes the given contacts owned by the user and reports how
// many rows were actually deleted.
func (r *PGXContactsRepository) DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE user_id = $1 AND id = ANY($2)`, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("delete contacts: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

// ListIdentityKeys collects the dedup keys derivable from the owner's
// current contacts. Computed fresh at the start of every import run.
func (r *PGXContactsRepository) ListIdentityKeys(ctx context.Context, userID uuid.UUID) (importer.IdentityKeys, error) {
	rows, err := r.pool.Query(ctx, `SELECT email, linkedin_url FROM contacts WHERE user_id = $1`, userID)
	if err != nil {
		return importer.IdentityKeys{}, fmt.Errorf("list identity keys: %w", err)
	}
	defer rows.Close()

	keys := importer.NewIdentityKeys()
	for rows.Next() {
		var email, linkedinURL sql.NullString
		if err := rows.Scan(&email, &linkedinURL); err != nil {
			return importer.IdentityKeys{}, fmt.Errorf("scan identity key row: %w", err)
		}
		if email.Valid {
			keys.AddEmail(email.String)
		}
		if linkedinURL.Valid {
			keys.AddLinkedInURL(linkedinURL.String)
		}
	}
	if err := rows.Err(); err != nil {
		return importer.IdentityKeys{}, fmt.Errorf("iterate identity keys: %w", err)
	}
	return keys, nil
}

// InsertBatch writes one import batch inside a transaction so a failure
// loses the batch cleanly rather than leaving it half-written.
func (r *PGXContactsRepository) InsertBatch(ctx context.Context, userID uuid.UUID, batch []importer.Candidate) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("start insert batch tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, candidate := range batch {
		_, err := tx.Exec(ctx, `
            INSERT INTO contacts (user_id, full_name, email, phone, company, job_title, linkedin_url, photo_url, source, tags)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        `,
			userID,
			candidate.FullName,
			candidate.Email,
			candidate.Phone,
			candidate.Company,
			candidate.JobTitle,
			candidate.LinkedInURL,
			candidate.PhotoURL,
			candidate.Source,
			tagsOrEmpty(candidate.Tags),
		)
		if err != nil {
			return fmt.Errorf("insert contact %q: %w", candidate.FullName, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit insert batch tx: %w", err)
	}
	return nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func scanContact(row pgx.Row) (*entity.Contact, error) {
	var (
		c           entity.Contact
		email       sql.NullString
		phone       sql.NullString
		company     sql.NullString
		jobTitle    sql.NullString
		linkedinURL sql.NullString
		photoURL    sql.NullString
		source      string
		tags        []string
	)

	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.FullName,
		&email,
		&phone,
		&company,
		&jobTitle,
		&linkedinURL,
		&photoURL,
		&source,
		&tags,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Email = nullStringToPtr(email)
	c.Phone = nullStringToPtr(phone)
	c.Company = nullStringToPtr(company)
	c.JobTitle = nullStringToPtr(jobTitle)
	c.LinkedInURL = nullStringToPtr(linkedinURL)
	c.PhotoURL = nullStringToPtr(photoURL)
	c.Source = entity.Source(source)
	if tags == nil {
		tags = []string{}
	}
	c.Tags = tags

	return &c, nil
}

func scanContacts(rows pgx.Rows) ([]entity.Contact, error) {
	var contacts []entity.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, *contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return contacts, nil
}

func nullStringToPtr(value sql.NullString) *string {
	if value.Valid {
		val := value.String
		return &val
	}
	return nil
}
