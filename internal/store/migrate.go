package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/flashquiz/ent/schema"
)

// migrate creates or upgrades the journal tables described by ent/schema.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, journalTables()...)
}

// journalTables builds the migration tables from the ent schema
// definitions, mixin fields first, with an auto-increment id primary key.
func journalTables() []*schema.Table {
	defs := entschema.EventTables()
	tables := make([]*schema.Table, 0, len(defs))
	for _, def := range defs {
		tables = append(tables, tableFor(def.Name, def.Schema))
	}
	return tables
}

func tableFor(name string, s ent.Interface) *schema.Table {
	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	columns := []*schema.Column{{Name: "id", Type: field.TypeInt, Increment: true}}
	byName := make(map[string]*schema.Column, len(fields))
	for _, f := range fields {
		d := f.Descriptor()
		col := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional || d.Nillable,
		}
		columns = append(columns, col)
		byName[d.Name] = col
	}

	table := &schema.Table{
		Name:       name,
		Columns:    columns,
		PrimaryKey: []*schema.Column{columns[0]},
	}
	for _, idx := range indexes {
		d := idx.Descriptor()
		cols := make([]*schema.Column, 0, len(d.Fields))
		for _, fname := range d.Fields {
			if col, ok := byName[fname]; ok {
				cols = append(cols, col)
			}
		}
		table.Indexes = append(table.Indexes, &schema.Index{
			Name:    strings.TrimSuffix(name, "s") + "_" + strings.Join(d.Fields, "_"),
			Unique:  d.Unique,
			Columns: cols,
		})
	}
	return table
}
