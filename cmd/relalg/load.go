package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonlawlor/relalg"
	"github.com/jonlawlor/relalg/att"
	"github.com/jonlawlor/relalg/internal/config"
	"github.com/jonlawlor/relalg/internal/logger"
	"github.com/jonlawlor/relalg/source"
	"go.uber.org/zap"
)

var samples = []string{"suppliers", "parts", "orders"}

// load returns the relation with the given name: a sample, or else a
// configured source.
func load(ctx context.Context, cfg *config.Config, name string) (rel.Relation, error) {
	if t, ok := rel.Sample(name); ok {
		return t, nil
	}
	sc, ok := cfg.Source(name)
	if !ok {
		return nil, fmt.Errorf("unknown relation %q", name)
	}

	start := time.Now()
	t, err := loadSource(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", name, err)
	}
	if len(sc.Schema) > 0 {
		if t, err = conform(t, sc.Schema); err != nil {
			return nil, fmt.Errorf("source %q: %w", name, err)
		}
	}
	logger.Get().Info("loaded source",
		zap.String("name", name),
		zap.String("kind", sc.Kind),
		zap.Int("rows", t.Card()),
		zap.Duration("took", time.Since(start)))
	return t, nil
}

func loadSource(ctx context.Context, sc config.SourceConfig) (*rel.Table, error) {
	switch sc.Kind {
	case "json":
		f, err := os.Open(sc.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return source.DecodeJSON(f)
	case "arrow":
		f, err := os.Open(sc.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return source.ReadArrow(f)
	case "postgres":
		pool, err := pgxpool.New(ctx, sc.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to create connection pool: %w", err)
		}
		defer pool.Close()
		return source.QueryPgx(ctx, pool, sc.Query)
	case "mysql":
		db, err := sql.Open("mysql", sc.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
		}
		defer db.Close()
		return source.Query(ctx, db, sc.Query)
	}
	return nil, fmt.Errorf("unknown source kind %q", sc.Kind)
}

// conform projects a loaded table onto the declared columns and casts each
// column to its declared kind.
func conform(t *rel.Table, cols []config.ColumnConfig) (*rel.Table, error) {
	refs := make([]att.ColRef, len(cols))
	s := make(att.Schema, len(cols))
	for j, c := range cols {
		k, ok := att.ParseDataType(c.Kind)
		if !ok {
			return nil, fmt.Errorf("column %s: unknown kind %q", c.Name, c.Kind)
		}
		refs[j] = att.Name(c.Name)
		s[j] = att.Field{Name: c.Name, Kind: k}
	}
	rows, err := rel.Rows(t.Project(refs...))
	if err != nil {
		return nil, err
	}
	b := source.NewBuilder(s)
	for _, row := range rows {
		if err := b.Add(row); err != nil {
			return nil, err
		}
	}
	return b.Table(), nil
}
