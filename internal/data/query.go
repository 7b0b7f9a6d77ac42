package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/taskul/jobly/internal/data/database"
	"github.com/taskul/jobly/internal/data/pgxutil"
	"github.com/taskul/jobly/internal/domain/model"
)

// queryRows runs query and collects every row into T by column name.
func queryRows[T any](ctx context.Context, db *sql.DB, query string, args ...any) ([]*T, error) {
	var out []T
	if err := pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[T])
		return err
	}); err != nil {
		return nil, err
	}
	res := make([]*T, len(out))
	for i := range out {
		res[i] = &out[i]
	}
	return res, nil
}

// queryRow runs query and collects exactly one row into T. Zero rows yields pgx.ErrNoRows.
func queryRow[T any](ctx context.Context, db *sql.DB, query string, args ...any) (*T, error) {
	var out T
	if err := pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
		return err
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// scanOne runs query and scans the single returned row into dest.
func scanOne(ctx context.Context, db *sql.DB, query string, args []any, dest ...any) error {
	return pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(dest...)
	})
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func toAssignments(fvs []model.FieldValue) []database.Assignment {
	out := make([]database.Assignment, len(fvs))
	for i, fv := range fvs {
		out[i] = database.Assignment{Field: fv.Field, Value: fv.Value}
	}
	return out
}
