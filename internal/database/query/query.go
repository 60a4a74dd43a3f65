// Package query builds the dynamic read queries shared by the postgres and sqlite stores.
package query

import (
	sq "github.com/Masterminds/squirrel"
)

// Builder renders queries for one placeholder dialect
type Builder struct {
	sb sq.StatementBuilderType
	// seqColumn orders users by insertion for leaderboard ties
	seqColumn string
}

// Postgres returns a builder using $n placeholders
func Postgres() Builder {
	return Builder{sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar), seqColumn: "user_seq"}
}

// SQLite returns a builder using ? placeholders
func SQLite() Builder {
	return Builder{sb: sq.StatementBuilder.PlaceholderFormat(sq.Question), seqColumn: "rowid"}
}

// userColumns matches the scan order of scanUser in both stores
var userColumns = []string{
	"user_id",
	"username",
	"pulls",
	"coins",
	"COALESCE(last_daily, '')",
	"COALESCE(last_weekly, '')",
	"created_at",
}

// ListItems selects the whole catalog ordered by name
func (b Builder) ListItems() (string, []interface{}, error) {
	return b.sb.
		Select("item_name", "rarity", "description", "image").
		From("items").
		OrderBy("item_key ASC").
		ToSql()
}

// GetItem selects one item by lookup key
func (b Builder) GetItem(key string) (string, []interface{}, error) {
	return b.sb.
		Select("item_name", "rarity", "description", "image").
		From("items").
		Where(sq.Eq{"item_key": key}).
		ToSql()
}

// UpdateItemField sets one text column of an item
func (b Builder) UpdateItemField(key, column, value string) (string, []interface{}, error) {
	return b.sb.
		Update("items").
		Set(column, value).
		Where(sq.Eq{"item_key": key}).
		ToSql()
}

// GetUser selects one user row
func (b Builder) GetUser(userID string) (string, []interface{}, error) {
	return b.sb.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// ListUsers pages through users in creation order
func (b Builder) ListUsers(limit, offset int) (string, []interface{}, error) {
	q := b.sb.
		Select(userColumns...).
		From("users").
		OrderBy(b.seqColumn + " ASC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if offset > 0 {
		q = q.Offset(uint64(offset))
	}
	return q.ToSql()
}

// Leaderboard selects the top users by pulls, ties broken by creation order
func (b Builder) Leaderboard(limit int) (string, []interface{}, error) {
	q := b.sb.
		Select("user_id", "username", "pulls").
		From("users").
		OrderBy("pulls DESC", b.seqColumn+" ASC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	return q.ToSql()
}

// Inventory selects a user's inventory ordered by item name
func (b Builder) Inventory(userID string) (string, []interface{}, error) {
	return b.sb.
		Select("item_name", "rarity", "amount").
		From("inventory").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("item_key ASC").
		ToSql()
}

// Achievements selects a user's grants in grant order
func (b Builder) Achievements(userID string) (string, []interface{}, error) {
	return b.sb.
		Select("achievement", "granted_at").
		From("achievements").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("granted_at ASC", "achievement ASC").
		ToSql()
}

// Count counts rows in a table
func (b Builder) Count(table string) (string, []interface{}, error) {
	return b.sb.Select("COUNT(*)").From(table).ToSql()
}
