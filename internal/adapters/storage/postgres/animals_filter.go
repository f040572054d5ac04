package postgres

import (
	"fmt"
	"strings"

	"animal-registry/internal/domain/animals"
)

const animalColumns = `a.id, a.name, a.species_id, a.age, a.sex, a.parent_id, a.created_at`

// animalQuery es el resultado de compilar un animals.Filter: predicados previos a
// la agregación (where) y, si hay cotas de hijos, un LEFT JOIN sobre la propia
// tabla con GROUP BY y HAVING.
type animalQuery struct {
	joins   []string
	where   []string
	having  []string
	args    []any
	grouped bool
}

func (q *animalQuery) arg(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

func compileAnimalFilter(f animals.Filter) animalQuery {
	var q animalQuery

	if f.Name != "" {
		q.where = append(q.where, "a.name ILIKE "+q.arg("%"+escapeLike(f.Name)+"%"))
	}
	if f.Sex != "" {
		q.where = append(q.where, "a.sex = "+q.arg(string(f.Sex)))
	}
	if f.MinAge != nil {
		q.where = append(q.where, "a.age >= "+q.arg(*f.MinAge))
	}
	if f.MaxAge != nil {
		q.where = append(q.where, "a.age <= "+q.arg(*f.MaxAge))
	}
	if f.Species != "" {
		q.where = append(q.where, "a.species_id IN (SELECT s.id FROM species s WHERE s.name = "+q.arg(f.Species)+")")
	}
	if f.OnlyParents {
		q.where = append(q.where, "EXISTS (SELECT 1 FROM animals ch WHERE ch.parent_id = a.id)")
	}
	if f.OnlyChildren {
		q.where = append(q.where, "a.parent_id IS NOT NULL")
	}
	if f.WithoutChildren {
		q.where = append(q.where, "NOT EXISTS (SELECT 1 FROM animals ch WHERE ch.parent_id = a.id)")
	}

	if f.HasChildBounds() {
		q.joins = append(q.joins, "LEFT JOIN animals c ON c.parent_id = a.id")
		q.grouped = true
		if f.MinChildren != nil {
			q.having = append(q.having, "COUNT(c.id) >= "+q.arg(*f.MinChildren))
		}
		if f.MaxChildren != nil {
			q.having = append(q.having, "COUNT(c.id) <= "+q.arg(*f.MaxChildren))
		}
	}
	return q
}

func (q animalQuery) from(columns string) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(columns)
	b.WriteString(" FROM animals a")
	for _, j := range q.joins {
		b.WriteString(" ")
		b.WriteString(j)
	}
	if len(q.where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.where, " AND "))
	}
	if q.grouped {
		b.WriteString(" GROUP BY a.id")
	}
	if len(q.having) > 0 {
		b.WriteString(" HAVING ")
		b.WriteString(strings.Join(q.having, " AND "))
	}
	return b.String()
}

// selectSQL arma la página. El orden por id hace estable el offset.
func (q animalQuery) selectSQL(p animals.Page) (string, []any) {
	args := append([]any(nil), q.args...)
	args = append(args, p.Size, p.Offset())
	sql := fmt.Sprintf("%s ORDER BY a.id ASC LIMIT $%d OFFSET $%d", q.from(animalColumns), len(args)-1, len(args))
	return sql, args
}

// countSQL cuenta las filas que cumplen el filtro, sin paginar.
func (q animalQuery) countSQL() (string, []any) {
	args := append([]any(nil), q.args...)
	if q.grouped {
		return "SELECT COUNT(*) FROM (" + q.from("a.id") + ") matched", args
	}
	return q.from("COUNT(*)"), args
}

// escapeLike escapa los comodines de LIKE; Postgres usa '\' como escape por defecto.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
