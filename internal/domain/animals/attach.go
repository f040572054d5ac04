package animals

import (
	"context"
	"fmt"
)

// attach materializa padre, especie e hijos (con especie) para cada raíz.
// Son tres lecturas en lote: padres, hijos y especies; nunca una por fila.
func (s *Service) attach(ctx context.Context, roots []Animal) ([]Detail, error) {
	roots = dedupe(roots)
	out := make([]Detail, 0, len(roots))
	if len(roots) == 0 {
		return out, nil
	}

	rootIDs := make([]int64, 0, len(roots))
	var parentIDs []int64
	for _, a := range roots {
		rootIDs = append(rootIDs, a.ID)
		if a.ParentID != nil {
			parentIDs = append(parentIDs, *a.ParentID)
		}
	}

	parents, err := s.repo.GetByIDs(ctx, uniqueIDs(parentIDs))
	if err != nil {
		return nil, fmt.Errorf("load parents: %w", err)
	}
	children, err := s.repo.ListChildren(ctx, rootIDs)
	if err != nil {
		return nil, fmt.Errorf("load children: %w", err)
	}

	var speciesIDs []int64
	for _, group := range [][]Animal{roots, parents, children} {
		for _, a := range group {
			if a.SpeciesID != nil {
				speciesIDs = append(speciesIDs, *a.SpeciesID)
			}
		}
	}
	spByID, err := s.loadSpecies(ctx, uniqueIDs(speciesIDs))
	if err != nil {
		return nil, fmt.Errorf("load species: %w", err)
	}

	summarize := func(a Animal) Summary {
		sum := Summary{Animal: a}
		if a.SpeciesID != nil {
			if sp, ok := spByID[*a.SpeciesID]; ok {
				sum.Species = &sp
			}
		}
		return sum
	}

	parentByID := make(map[int64]Animal, len(parents))
	for _, p := range parents {
		parentByID[p.ID] = p
	}
	childrenOf := make(map[int64][]Summary, len(roots))
	for _, c := range children {
		if c.ParentID == nil {
			continue
		}
		childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], summarize(c))
	}

	for _, a := range roots {
		d := Detail{Summary: summarize(a), Children: childrenOf[a.ID]}
		if d.Children == nil {
			d.Children = []Summary{}
		}
		if a.ParentID != nil {
			if p, ok := parentByID[*a.ParentID]; ok {
				ps := summarize(p)
				d.Parent = &ps
			}
		}
		out = append(out, d)
	}
	return out, nil
}

func dedupe(rows []Animal) []Animal {
	seen := make(map[int64]bool, len(rows))
	out := rows[:0:0]
	for _, a := range rows {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		out = append(out, a)
	}
	return out
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
