package expenseimporter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type Tag struct {
	bun.BaseModel `bun:"table:tags,alias:tg"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,unique"`
}

type TransactionTag struct {
	bun.BaseModel `bun:"table:transactiontags,alias:tt"`

	TransactionID int64 `bun:"transaction_id,pk"`
	TagID         int64 `bun:"tag_id,pk"`
}

type Category struct {
	bun.BaseModel `bun:"table:category,alias:c"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,unique:category_name_type"`
	Type string `bun:"type,unique:category_name_type"`
}

type Payee struct {
	bun.BaseModel `bun:"table:payee,alias:p"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,unique"`
}

type Upload struct {
	bun.BaseModel `bun:"table:uploads,alias:u"`

	ID         int64     `bun:"id,pk,autoincrement"`
	UploadedAt time.Time `bun:"uploaded_at,unique"`
}

// Store is the storage surface the importer runs against. Every operation is
// idempotent: repeated calls with identical input converge on the same
// persisted state, which is what makes whole-file re-runs safe.
type Store interface {
	Migrate(ctx context.Context) error

	// UpsertTransaction inserts the record or, on a natural-key conflict,
	// overwrites its mutable fields. It returns the row id either way.
	UpsertTransaction(ctx context.Context, record *Transaction) (int64, error)

	// UpsertTag inserts the tag if absent and returns its id, fetching the
	// existing row's id when the insert was a no-op.
	UpsertTag(ctx context.Context, name string) (int64, error)

	// UpsertCategory inserts the (name, type) pair if absent. The returned
	// id is 0 when the pair already existed; callers must tolerate that.
	UpsertCategory(ctx context.Context, name, categoryType string) (int64, error)

	// UpsertPayee inserts the payee if absent and returns its id, fetching
	// the existing row's id when the insert was a no-op.
	UpsertPayee(ctx context.Context, name string) (int64, error)

	// LinkTransactionTags associates a transaction with tags, inserting only
	// the pairs that do not exist yet.
	LinkTransactionTags(ctx context.Context, transactionID int64, tagIDs []int64) error

	// LastUploadDate returns the most recent watermark entry. The bool is
	// false when no prior run exists.
	LastUploadDate(ctx context.Context) (time.Time, bool, error)

	// RecordUpload appends a watermark entry; an identical timestamp is a
	// no-op.
	RecordUpload(ctx context.Context, uploadedAt time.Time) error
}

// SQLStore implements Store on a bun handle. The same implementation serves
// the postgres and sqlite backends, both dialects speak
// INSERT ... ON CONFLICT; only the connection helpers differ.
type SQLStore struct {
	db    *bun.DB
	table string
}

func NewSQLStore(db *bun.DB, transactionsTable string) *SQLStore {
	if transactionsTable == "" {
		transactionsTable = "transactions"
	}

	return &SQLStore{db: db, table: transactionsTable}
}

// Migrate creates the tables the importer writes to if they do not exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*Transaction)(nil)).
		ModelTableExpr("?", bun.Ident(s.table)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("error creating table %s: %w", s.table, err)
	}

	for _, model := range []interface{}{
		(*Tag)(nil),
		(*TransactionTag)(nil),
		(*Category)(nil),
		(*Payee)(nil),
		(*Upload)(nil),
	} {
		_, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx)
		if err != nil {
			return fmt.Errorf("error creating table for %T: %w", model, err)
		}
	}

	return nil
}

func (s *SQLStore) UpsertTransaction(ctx context.Context, record *Transaction) (int64, error) {
	_, err := s.db.NewInsert().
		Model(record).
		ModelTableExpr("?", bun.Ident(s.table)).
		On("CONFLICT (date_iso, account, category, subcategory, type, person_company) DO UPDATE").
		Set("amount = EXCLUDED.amount").
		Set("currency = EXCLUDED.currency").
		Set("converted_amount_inr = EXCLUDED.converted_amount_inr").
		Set("description = EXCLUDED.description").
		Returning("id").
		Exec(ctx)
	if err != nil {
		return 0, &UpsertError{Entity: "transaction", Err: err}
	}

	return record.ID, nil
}

func (s *SQLStore) UpsertTag(ctx context.Context, name string) (int64, error) {
	tag := &Tag{Name: name}

	_, err := s.db.NewInsert().
		Model(tag).
		On("CONFLICT (name) DO NOTHING").
		Returning("id").
		Exec(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, &UpsertError{Entity: "tag", Err: err}
	}

	if tag.ID != 0 {
		return tag.ID, nil
	}

	// The insert was a no-op, fetch the existing row.
	err = s.db.NewSelect().Model(tag).Where("name = ?", name).Limit(1).Scan(ctx)
	if err != nil {
		return 0, &UpsertError{Entity: "tag", Err: err}
	}

	return tag.ID, nil
}

func (s *SQLStore) UpsertCategory(ctx context.Context, name, categoryType string) (int64, error) {
	category := &Category{Name: name, Type: categoryType}

	_, err := s.db.NewInsert().
		Model(category).
		On("CONFLICT (name, type) DO NOTHING").
		Returning("id").
		Exec(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, &UpsertError{Entity: "category", Err: err}
	}

	// The id stays 0 when the pair already existed.
	return category.ID, nil
}

func (s *SQLStore) UpsertPayee(ctx context.Context, name string) (int64, error) {
	payee := &Payee{Name: name}

	_, err := s.db.NewInsert().
		Model(payee).
		On("CONFLICT (name) DO NOTHING").
		Returning("id").
		Exec(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, &UpsertError{Entity: "payee", Err: err}
	}

	if payee.ID != 0 {
		return payee.ID, nil
	}

	err = s.db.NewSelect().Model(payee).Where("name = ?", name).Limit(1).Scan(ctx)
	if err != nil {
		return 0, &UpsertError{Entity: "payee", Err: err}
	}

	return payee.ID, nil
}

func (s *SQLStore) LinkTransactionTags(ctx context.Context, transactionID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	links := make([]TransactionTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, TransactionTag{TransactionID: transactionID, TagID: tagID})
	}

	_, err := s.db.NewInsert().
		Model(&links).
		On("CONFLICT (transaction_id, tag_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return &UpsertError{Entity: "transaction tags", Err: err}
	}

	return nil
}

func (s *SQLStore) LastUploadDate(ctx context.Context) (time.Time, bool, error) {
	upload := new(Upload)

	err := s.db.NewSelect().
		Model(upload).
		Order("uploaded_at DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}

	if err != nil {
		return time.Time{}, false, &WatermarkError{Op: "read", Err: err}
	}

	return upload.UploadedAt, true, nil
}

func (s *SQLStore) RecordUpload(ctx context.Context, uploadedAt time.Time) error {
	upload := &Upload{UploadedAt: uploadedAt}

	_, err := s.db.NewInsert().
		Model(upload).
		On("CONFLICT (uploaded_at) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return &WatermarkError{Op: "write", Err: err}
	}

	return nil
}
