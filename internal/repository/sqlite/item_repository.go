package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/pharmaflash/internal/logger"
	"github.com/vytor/pharmaflash/internal/models"
	"github.com/vytor/pharmaflash/internal/repository"
)

type itemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new ItemRepository implementation
func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

// itemColumns are the editable columns, in the order itemValues returns them.
var itemColumns = []string{
	"name", "smiles", "formula", "description", "image_url", "cas_number",
	"molecular_weight", "pubchem_cid", "drug_category", "primary_function",
	"drug_class", "route_of_administration", "target_receptor", "onset_time",
	"peak_time", "duration", "metabolism", "excretion", "side_effects",
	"molecule_type", "body_effect", "use_in_flashcards",
}

func itemValues(it models.StudyItem) []any {
	return []any{
		it.Name, it.Smiles, it.Formula, it.Description, it.ImageURL, it.CASNumber,
		it.MolecularWeight, it.PubChemCID, it.DrugCategory, it.PrimaryFunction,
		it.DrugClass, it.RouteOfAdministration, it.TargetReceptor, it.OnsetTime,
		it.PeakTime, it.Duration, it.Metabolism, it.Excretion, it.SideEffects,
		it.MoleculeType, it.BodyEffect, it.UseInFlashcards,
	}
}

func selectItems() squirrel.SelectBuilder {
	cols := []string{"i.id", "i.topic_id"}
	for _, c := range itemColumns {
		cols = append(cols, "i."+c)
	}
	cols = append(cols, "i.created_at", "i.updated_at")
	return sqlBuilder.Select(cols...).
		From("items i").
		Join("topics t ON t.id = i.topic_id").
		Join("chapters c ON c.id = t.chapter_id")
}

func scanItem(row rowScanner) (*models.StudyItem, error) {
	var it models.StudyItem
	err := row.Scan(
		&it.ID, &it.TopicID,
		&it.Name, &it.Smiles, &it.Formula, &it.Description, &it.ImageURL, &it.CASNumber,
		&it.MolecularWeight, &it.PubChemCID, &it.DrugCategory, &it.PrimaryFunction,
		&it.DrugClass, &it.RouteOfAdministration, &it.TargetReceptor, &it.OnsetTime,
		&it.PeakTime, &it.Duration, &it.Metabolism, &it.Excretion, &it.SideEffects,
		&it.MoleculeType, &it.BodyEffect, &it.UseInFlashcards,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func applyItemFilter(b squirrel.SelectBuilder, f models.ItemFilter) squirrel.SelectBuilder {
	b = b.Where(squirrel.Eq{"c.profile_id": f.ProfileID})
	if f.ChapterID != 0 {
		b = b.Where(squirrel.Eq{"c.id": f.ChapterID})
	}
	if f.TopicID != 0 {
		b = b.Where(squirrel.Eq{"i.topic_id": f.TopicID})
	}
	if f.HasImage {
		b = b.Where("TRIM(i.image_url) <> ''")
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		b = b.Where(squirrel.Like{"LOWER(i.name)": "%" + strings.ToLower(s) + "%"})
	}
	return b
}

func (r *itemRepository) Insert(ctx context.Context, it models.StudyItem) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("inserting item: topic_id=%d, name=%s", it.TopicID, it.Name)

	query, args, err := sqlBuilder.Insert("items").
		Columns(append([]string{"topic_id"}, itemColumns...)...).
		Values(append([]any{it.TopicID}, itemValues(it)...)...).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to insert item: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get item id: %v", err)
		return 0, err
	}
	log.Debug("item inserted: id=%d", id)
	return id, nil
}

func (r *itemRepository) Get(ctx context.Context, id, profileID int64) (*models.StudyItem, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("getting item: id=%d, profile_id=%d", id, profileID)

	query, args, err := selectItems().
		Where(squirrel.Eq{"i.id": id, "c.profile_id": profileID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	it, err := scanItem(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("item not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get item: %v", err)
		return nil, err
	}
	return it, nil
}

func (r *itemRepository) List(ctx context.Context, f models.ItemFilter) ([]models.StudyItem, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("listing items: profile_id=%d, chapter_id=%d, topic_id=%d, search=%q", f.ProfileID, f.ChapterID, f.TopicID, f.Search)

	query := applyItemFilter(selectItems(), f).OrderBy("i.created_at ASC", "i.id ASC")
	if f.Limit > 0 {
		query = query.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		if f.Limit <= 0 {
			query = query.Limit(uint64(1<<63 - 1))
		}
		query = query.Offset(uint64(f.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list items: %v", err)
		return nil, err
	}
	defer rows.Close()

	var items []models.StudyItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			log.Error("failed to scan item row: %v", err)
			return nil, err
		}
		items = append(items, *it)
	}
	log.Debug("found %d items", len(items))
	return items, rows.Err()
}

// Count ignores the filter's Limit and Offset.
func (r *itemRepository) Count(ctx context.Context, f models.ItemFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")

	query, args, err := applyItemFilter(
		sqlBuilder.Select("COUNT(*)").
			From("items i").
			Join("topics t ON t.id = i.topic_id").
			Join("chapters c ON c.id = t.chapter_id"),
		f,
	).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		log.Error("failed to count items: %v", err)
		return 0, err
	}
	return n, nil
}

// Update rewrites every editable column of the item. The item must belong to
// a topic of the same profile as the existing row; callers check ownership.
func (r *itemRepository) Update(ctx context.Context, it models.StudyItem) error {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("updating item: id=%d", it.ID)

	b := sqlBuilder.Update("items").
		Set("topic_id", it.TopicID).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP"))
	for i, v := range itemValues(it) {
		b = b.Set(itemColumns[i], v)
	}
	query, args, err := b.Where(squirrel.Eq{"id": it.ID}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update item: %v", err)
		return err
	}
	return affectedOne(res)
}

// fillableColumns are the metadata columns an autofill may write.
var fillableColumns = map[string]bool{
	"formula": true, "smiles": true, "molecular_weight": true, "pubchem_cid": true, "image_url": true,
}

// FillEmpty sets the given metadata columns in one statement. A column that
// already holds a non-blank value keeps it, so edits saved while a lookup was
// in flight survive.
func (r *itemRepository) FillEmpty(ctx context.Context, id, profileID int64, values map[string]string) error {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	if len(values) == 0 {
		return nil
	}

	cols := make([]string, 0, len(values))
	for col := range values {
		if !fillableColumns[col] {
			return fmt.Errorf("column %q cannot be autofilled", col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)
	log.Debug("filling item: id=%d columns=%s", id, strings.Join(cols, ","))

	b := sqlBuilder.Update("items").
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP"))
	for _, col := range cols {
		b = b.Set(col, squirrel.Expr("CASE WHEN TRIM("+col+") = '' THEN ? ELSE "+col+" END", values[col]))
	}
	query, args, err := b.
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("topic_id IN (SELECT t.id FROM topics t JOIN chapters c ON c.id = t.chapter_id WHERE c.profile_id = ?)", profileID)).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to fill item: %v", err)
		return err
	}
	return affectedOne(res)
}

func (r *itemRepository) Delete(ctx context.Context, id, profileID int64) error {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("deleting item: id=%d", id)

	res, err := r.db.ExecContext(ctx, `
DELETE FROM items
WHERE id = ? AND topic_id IN (
	SELECT t.id FROM topics t JOIN chapters c ON c.id = t.chapter_id WHERE c.profile_id = ?
)`, id, profileID)
	if err != nil {
		log.Error("failed to delete item: %v", err)
		return err
	}
	return affectedOne(res)
}
