package animals_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	mem "animal-registry/internal/adapters/storage/memory"
	"animal-registry/internal/domain/animals"
	"animal-registry/internal/domain/apperr"
	"animal-registry/internal/domain/species"
)

type fixture struct {
	animals *animals.Service
	species *species.Service
	repo    animals.Repository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := mem.NewDB()
	aRepo := mem.NewAnimalRepo(db)
	sRepo := mem.NewSpeciesRepo(db)
	return fixture{
		animals: animals.NewService(aRepo, sRepo),
		species: species.NewService(sRepo),
		repo:    aRepo,
	}
}

func (f fixture) create(t *testing.T, name string, parentID, speciesID *int64) animals.Detail {
	t.Helper()
	d, err := f.animals.Create(context.Background(), animals.CreateInput{
		Name:      name,
		Age:       3,
		Sex:       animals.SexFemale,
		ParentID:  parentID,
		SpeciesID: speciesID,
	})
	if err != nil {
		t.Fatalf("create %q: %v", name, err)
	}
	return d
}

func (f fixture) count(t *testing.T) int {
	t.Helper()
	n, err := f.repo.Count(context.Background(), animals.Filter{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func ptr[T any](v T) *T { return &v }

func TestService_Create_DuplicateName_Conflict(t *testing.T) {
	f := newFixture(t)
	f.create(t, "Rex", nil, nil)

	_, err := f.animals.Create(context.Background(), animals.CreateInput{Name: "Rex", Age: 1, Sex: animals.SexMale})
	if kind, ok := apperr.IsConflict(err); !ok || kind != apperr.ConflictDuplicateName {
		t.Fatalf("expected duplicate-name conflict, got %v", err)
	}
	if n := f.count(t); n != 1 {
		t.Fatalf("expected 1 animal, got %d", n)
	}
}

func TestService_Create_MissingParent_NotFound(t *testing.T) {
	f := newFixture(t)
	before := f.count(t)

	_, err := f.animals.Create(context.Background(), animals.CreateInput{
		Name: "Orphan", Age: 1, Sex: animals.SexMale, ParentID: ptr(int64(999)),
	})

	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) || nf.Entity != "parent" || nf.ID != 999 {
		t.Fatalf("expected parent not found, got %v", err)
	}
	if after := f.count(t); after != before {
		t.Fatalf("row count changed: %d -> %d", before, after)
	}
}

func TestService_Create_ChecksParentBeforeSpecies(t *testing.T) {
	f := newFixture(t)

	_, err := f.animals.Create(context.Background(), animals.CreateInput{
		Name: "Ghost", Age: 1, Sex: animals.SexOther,
		ParentID: ptr(int64(7)), SpeciesID: ptr(int64(8)),
	})
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) || nf.Entity != "parent" {
		t.Fatalf("expected parent checked first, got %v", err)
	}

	_, err = f.animals.Create(context.Background(), animals.CreateInput{
		Name: "Ghost", Age: 1, Sex: animals.SexOther, SpeciesID: ptr(int64(8)),
	})
	if !errors.As(err, &nf) || nf.Entity != "species" || nf.ID != 8 {
		t.Fatalf("expected species not found, got %v", err)
	}
}

func TestService_Create_RejectsFutureCreatedAt(t *testing.T) {
	f := newFixture(t)

	_, err := f.animals.Create(context.Background(), animals.CreateInput{
		Name: "Tomorrow", Age: 1, Sex: animals.SexMale, CreatedAt: ptr(time.Now().Add(time.Hour)),
	})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestService_CreateThenGet_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dog, err := f.species.Create(ctx, species.CreateInput{Name: "dog"})
	if err != nil {
		t.Fatalf("create species: %v", err)
	}
	mom := f.create(t, "Luna", nil, &dog.ID)
	pup := f.create(t, "Pup", &mom.ID, &dog.ID)

	if pup.Parent == nil || pup.Parent.ID != mom.ID {
		t.Fatalf("expected parent attached on create, got %+v", pup.Parent)
	}
	if pup.Species == nil || pup.Species.Name != "dog" {
		t.Fatalf("expected species attached on create, got %+v", pup.Species)
	}

	got, err := f.animals.Get(ctx, mom.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Luna" || got.Age != 3 || got.Sex != animals.SexFemale {
		t.Fatalf("unexpected animal: %+v", got.Animal)
	}
	if len(got.Children) != 1 || got.Children[0].ID != pup.ID {
		t.Fatalf("expected one child %d, got %+v", pup.ID, got.Children)
	}
	if got.Children[0].Species == nil || got.Children[0].Species.ID != dog.ID {
		t.Fatalf("expected child species attached, got %+v", got.Children[0].Species)
	}
}

func TestService_Update_PartialAgeOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	parent := f.create(t, "Parent", nil, nil)
	a := f.create(t, "Kid", &parent.ID, nil)

	got, err := f.animals.Update(ctx, a.ID, animals.Patch{Age: ptr(7)}, true)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Age != 7 {
		t.Fatalf("expected age 7, got %d", got.Age)
	}
	if got.Name != "Kid" || got.Sex != a.Sex || !got.CreatedAt.Equal(a.CreatedAt) {
		t.Fatalf("other fields changed: %+v", got.Animal)
	}
	if got.ParentID == nil || *got.ParentID != parent.ID {
		t.Fatalf("parent changed: %v", got.ParentID)
	}
}

func TestService_Update_FullClearsOmittedRelations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cat, _ := f.species.Create(ctx, species.CreateInput{Name: "cat"})
	parent := f.create(t, "Parent", nil, nil)
	a := f.create(t, "Kid", &parent.ID, &cat.ID)

	if _, err := f.animals.Update(ctx, a.ID, animals.Patch{Name: ptr("Kid")}, false); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected invalid input for incomplete PUT, got %v", err)
	}

	sex := animals.SexMale
	got, err := f.animals.Update(ctx, a.ID, animals.Patch{Name: ptr("Kid2"), Age: ptr(4), Sex: &sex}, false)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.ParentID != nil || got.SpeciesID != nil || got.Parent != nil || got.Species != nil {
		t.Fatalf("expected relations cleared, got %+v", got)
	}
}

func TestService_Update_NullParentClearsOnlyParent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	parent := f.create(t, "Parent", nil, nil)
	a := f.create(t, "Kid", &parent.ID, nil)

	got, err := f.animals.Update(ctx, a.ID, animals.Patch{ParentID: animals.SetID(nil)}, true)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.ParentID != nil {
		t.Fatalf("expected parent cleared")
	}

	p, _ := f.animals.Get(ctx, parent.ID)
	if len(p.Children) != 0 {
		t.Fatalf("expected adjacency updated, got %d children", len(p.Children))
	}
}

func TestService_Update_DuplicateNameExcludesSelf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.create(t, "Taken", nil, nil)
	a := f.create(t, "Mine", nil, nil)

	if _, err := f.animals.Update(ctx, a.ID, animals.Patch{Name: ptr("Mine")}, true); err != nil {
		t.Fatalf("renaming to own name should pass: %v", err)
	}
	_, err := f.animals.Update(ctx, a.ID, animals.Patch{Name: ptr("Taken")}, true)
	if kind, ok := apperr.IsConflict(err); !ok || kind != apperr.ConflictDuplicateName {
		t.Fatalf("expected duplicate-name conflict, got %v", err)
	}
}

func TestService_Update_RejectsParentCycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.create(t, "A", nil, nil)
	b := f.create(t, "B", &a.ID, nil)
	c := f.create(t, "C", &b.ID, nil)

	for _, newParent := range []int64{a.ID, c.ID} {
		_, err := f.animals.Update(ctx, a.ID, animals.Patch{ParentID: animals.SetID(&newParent)}, true)
		if kind, ok := apperr.IsConflict(err); !ok || kind != apperr.ConflictParentCycle {
			t.Fatalf("parent %d: expected parent-cycle conflict, got %v", newParent, err)
		}
	}

	_, err := f.animals.Update(ctx, a.ID, animals.Patch{ParentID: animals.SetID(ptr(int64(404)))}, true)
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) || nf.Entity != "parent" {
		t.Fatalf("expected parent not found, got %v", err)
	}
}

func TestService_Update_UnknownAnimal(t *testing.T) {
	f := newFixture(t)
	_, err := f.animals.Update(context.Background(), 42, animals.Patch{Age: ptr(1)}, true)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_Delete_ThenGet_NotFound_AndChildrenOrphaned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	parent := f.create(t, "Parent", nil, nil)
	kid := f.create(t, "Kid", &parent.ID, nil)

	if err := f.animals.Delete(ctx, parent.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.animals.Get(ctx, parent.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := f.animals.Delete(ctx, parent.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}

	got, err := f.animals.Get(ctx, kid.ID)
	if err != nil {
		t.Fatalf("get kid: %v", err)
	}
	if got.ParentID != nil || got.Parent != nil {
		t.Fatalf("expected kid orphaned, got parent %v", got.ParentID)
	}
}

// Raíces con 0, 1, 2 y 3 hijos.
func seedFamilies(t *testing.T, f fixture) map[string]int64 {
	t.Helper()
	ids := map[string]int64{}
	for i, suffix := range []string{"a", "b", "c", "d"} {
		root := f.create(t, "root-"+suffix, nil, nil)
		ids["root-"+suffix] = root.ID
		for k := 0; k < i; k++ {
			f.create(t, fmt.Sprintf("pup-%s%d", suffix, k), &root.ID, nil)
		}
	}
	return ids
}

func names(items []animals.Detail) []string {
	out := make([]string, 0, len(items))
	for _, d := range items {
		out = append(out, d.Name)
	}
	return out
}

func TestService_List_ChildCountFilters(t *testing.T) {
	f := newFixture(t)
	seedFamilies(t, f)
	ctx := context.Background()
	page := animals.Page{Number: 1, Size: 100}

	cases := []struct {
		name   string
		filter animals.Filter
		want   []string
	}{
		{"min 2", animals.Filter{Name: "root", MinChildren: ptr(2)}, []string{"root-c", "root-d"}},
		{"max 1", animals.Filter{Name: "ROOT", MaxChildren: ptr(1)}, []string{"root-a", "root-b"}},
		{"between 1 and 2", animals.Filter{Name: "root", MinChildren: ptr(1), MaxChildren: ptr(2)}, []string{"root-b", "root-c"}},
		{"only parents", animals.Filter{Name: "root", OnlyParents: true}, []string{"root-b", "root-c", "root-d"}},
		{"without children", animals.Filter{Name: "root", WithoutChildren: true}, []string{"root-a"}},
	}
	for _, tc := range cases {
		res, err := f.animals.List(ctx, tc.filter, page)
		if err != nil {
			t.Fatalf("%s: list: %v", tc.name, err)
		}
		got := names(res.Items)
		if len(got) != len(tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
			}
		}
		if res.Total != len(tc.want) {
			t.Fatalf("%s: total should respect filters, expected %d got %d", tc.name, len(tc.want), res.Total)
		}
	}
}

func TestService_List_OnlyChildrenAndChildrenAttached(t *testing.T) {
	f := newFixture(t)
	ids := seedFamilies(t, f)
	ctx := context.Background()

	res, err := f.animals.List(ctx, animals.Filter{OnlyChildren: true}, animals.Page{Number: 1, Size: 100})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 6 {
		t.Fatalf("expected 6 children, got %d", res.Total)
	}
	for _, d := range res.Items {
		if d.Parent == nil {
			t.Fatalf("expected parent attached for %s", d.Name)
		}
	}

	d, err := f.animals.Get(ctx, ids["root-d"])
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(d.Children) != 3 || d.Children[0].ID > d.Children[1].ID || d.Children[1].ID > d.Children[2].ID {
		t.Fatalf("expected 3 ordered children, got %+v", d.Children)
	}
}

func TestService_List_Pagination(t *testing.T) {
	f := newFixture(t)
	for _, n := range []string{"one", "two", "three", "four", "five"} {
		f.create(t, n, nil, nil)
	}

	res, err := f.animals.List(context.Background(), animals.Filter{}, animals.Page{Number: 2, Size: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 5 {
		t.Fatalf("expected total 5, got %d", res.Total)
	}
	if got := names(res.Items); len(got) != 2 || got[0] != "three" || got[1] != "four" {
		t.Fatalf("expected [three four], got %v", got)
	}

	res, _ = f.animals.List(context.Background(), animals.Filter{}, animals.Page{Number: 4, Size: 2})
	if len(res.Items) != 0 || res.Total != 5 {
		t.Fatalf("expected empty page past the end, got %d items total %d", len(res.Items), res.Total)
	}
}

func TestService_List_SpeciesAndSexFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dog, _ := f.species.Create(ctx, species.CreateInput{Name: "dog"})
	cat, _ := f.species.Create(ctx, species.CreateInput{Name: "cat"})
	f.create(t, "Rex", nil, &dog.ID)
	f.create(t, "Tom", nil, &cat.ID)
	if _, err := f.animals.Create(ctx, animals.CreateInput{Name: "Max", Age: 10, Sex: animals.SexMale, SpeciesID: &dog.ID}); err != nil {
		t.Fatalf("create: %v", err)
	}

	res, err := f.animals.List(ctx, animals.Filter{Species: "dog", Sex: animals.SexMale, MinAge: ptr(5)}, animals.Page{Number: 1, Size: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := names(res.Items); len(got) != 1 || got[0] != "Max" {
		t.Fatalf("expected [Max], got %v", got)
	}

	res, _ = f.animals.List(ctx, animals.Filter{Species: "unicorn"}, animals.Page{Number: 1, Size: 10})
	if res.Total != 0 {
		t.Fatalf("expected no matches for unknown species, got %d", res.Total)
	}
}

func TestService_List_MalformedFilterIsNotUserError(t *testing.T) {
	f := newFixture(t)

	_, err := f.animals.List(context.Background(), animals.Filter{MinAge: ptr(9), MaxAge: ptr(1)}, animals.Page{Number: 1, Size: 10})
	if !errors.Is(err, animals.ErrMalformedFilter) {
		t.Fatalf("expected malformed filter, got %v", err)
	}
	if errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("malformed filter must not be reported as invalid input")
	}

	_, err = f.animals.List(context.Background(), animals.Filter{}, animals.Page{Number: 0, Size: 10})
	if !errors.Is(err, animals.ErrMalformedFilter) {
		t.Fatalf("expected malformed page, got %v", err)
	}
}

func TestService_Create_ConcurrentSameName_ExactlyOneWins(t *testing.T) {
	f := newFixture(t)

	const racers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.animals.Create(context.Background(), animals.CreateInput{Name: "Twin", Age: 1, Sex: animals.SexMale})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, apperr.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if ok != 1 || conflicts != racers-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d and %d", racers-1, ok, conflicts)
	}
}

func TestService_SpeciesDelete_NullifiesAnimals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dog, _ := f.species.Create(ctx, species.CreateInput{Name: "dog"})
	a := f.create(t, "Rex", nil, &dog.ID)

	if err := f.species.Delete(ctx, dog.ID); err != nil {
		t.Fatalf("delete species: %v", err)
	}
	got, err := f.animals.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SpeciesID != nil || got.Species != nil {
		t.Fatalf("expected species cleared, got %v", got.SpeciesID)
	}
}

// staleNameRepo simula una escritura concurrente que ganó entre el chequeo
// de nombre y la escritura: ExistsByName siempre ve el nombre libre.
type staleNameRepo struct {
	animals.Repository
}

func (staleNameRepo) ExistsByName(context.Context, string, int64) (bool, error) {
	return false, nil
}

func newStaleNameFixture(t *testing.T) fixture {
	t.Helper()
	db := mem.NewDB()
	aRepo := mem.NewAnimalRepo(db)
	sRepo := mem.NewSpeciesRepo(db)
	return fixture{
		animals: animals.NewService(staleNameRepo{aRepo}, sRepo),
		species: species.NewService(sRepo),
		repo:    aRepo,
	}
}

func TestService_Create_StorageUniqueViolation_IsIntegrityConflict(t *testing.T) {
	f := newStaleNameFixture(t)
	f.create(t, "Rex", nil, nil)

	_, err := f.animals.Create(context.Background(), animals.CreateInput{Name: "Rex", Age: 1, Sex: animals.SexMale})
	if kind, ok := apperr.IsConflict(err); !ok || kind != apperr.ConflictIntegrity {
		t.Fatalf("expected integrity conflict, got %v", err)
	}
	if n := f.count(t); n != 1 {
		t.Fatalf("expected 1 animal after failed write, got %d", n)
	}
}

func TestService_Update_StorageUniqueViolation_IsIntegrityConflict(t *testing.T) {
	f := newStaleNameFixture(t)
	f.create(t, "Rex", nil, nil)
	luna := f.create(t, "Luna", nil, nil)

	_, err := f.animals.Update(context.Background(), luna.ID, animals.Patch{Name: ptr("Rex")}, true)
	if kind, ok := apperr.IsConflict(err); !ok || kind != apperr.ConflictIntegrity {
		t.Fatalf("expected integrity conflict, got %v", err)
	}

	got, err := f.animals.Get(context.Background(), luna.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Luna" {
		t.Fatalf("expected name unchanged after failed update, got %q", got.Name)
	}
}
