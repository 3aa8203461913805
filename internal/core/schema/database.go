package schema

import (
	"context"
	"log/slog"
	"strings"

	"github.com/solatis/querybuilder/internal/core/db"
	"github.com/solatis/querybuilder/internal/filter"
	"github.com/solatis/querybuilder/internal/logging"
	"github.com/solatis/querybuilder/internal/types"
)

// Attribute types published to the editor.
const (
	TypeInteger = types.DataTypeInteger
	TypeString  = types.DataTypeString
)

// DatabaseProvider derives a schema from a database catalog: one subset per
// table, one attribute per column of a supported type, named table.column.
type DatabaseProvider struct {
	dbURL string
	paths filter.PathNormalizer
	log   *slog.Logger
}

func NewDatabaseProvider(dbURL string, paths filter.PathNormalizer, log *slog.Logger) *DatabaseProvider {
	if log == nil {
		log = logging.Discard()
	}
	return &DatabaseProvider{
		dbURL: dbURL,
		paths: paths,
		log:   log.With(slog.String("component", "schema.database")),
	}
}

func (p *DatabaseProvider) Fetch(ctx context.Context) (*types.SchemaInfo, error) {
	database, err := db.Open(ctx, p.dbURL)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	queries, err := db.LoadQueries(database)
	if err != nil {
		return nil, err
	}

	tables, err := queries.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	info := &types.SchemaInfo{
		Subsets:          make([][]int, 0, len(tables)),
		Operators:        filter.OperatorLabels(),
		LogicalOperators: filter.LogicalConnectors(),
	}
	for _, table := range tables {
		columns, err := queries.ListColumns(ctx, table)
		if err != nil {
			return nil, err
		}

		subset := len(info.Subsets)
		var members []int
		for _, col := range columns {
			typ, ok := translateNativeType(col.Type)
			if !ok {
				p.log.Debug("skipping column with unsupported type",
					slog.String("table", table),
					slog.String("column", col.Name),
					slog.String("type", col.Type))
				continue
			}
			members = append(members, len(info.Attributes))
			info.Attributes = append(info.Attributes, types.AttributeDescriptor{
				Name:   table + "." + col.Name,
				Type:   typ,
				Subset: subset,
			})
		}
		if len(members) == 0 {
			continue
		}
		info.Subsets = append(info.Subsets, members)
	}

	p.log.Info("schema introspected",
		slog.String("driver", database.DriverName()),
		slog.Int("tables", len(info.Subsets)),
		slog.Int("attributes", len(info.Attributes)))
	return finish(info, p.paths)
}

var integerTypes = map[string]bool{
	"int": true, "integer": true, "tinyint": true, "smallint": true, "mediumint": true, "bigint": true,
	"int2": true, "int4": true, "int8": true, "serial": true, "smallserial": true, "bigserial": true,
}

// translateNativeType maps a catalog column type to an attribute type.
// Length and precision suffixes are ignored ("varchar(40)", "int(11)").
func translateNativeType(native string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(native))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	switch {
	case integerTypes[t]:
		return TypeInteger, true
	case strings.Contains(t, "char"), strings.Contains(t, "text"), strings.Contains(t, "clob"), t == "uuid":
		return TypeString, true
	default:
		return "", false
	}
}
