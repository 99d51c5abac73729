/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/querysculptor/sculptor"
	"github.com/tomoncle/querysculptor/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type pet struct {
	bun.BaseModel `bun:"table:pets,alias:p"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,notnull,unique"`
	Age  *int   `bun:"age"`
}

func age(n int) *int { return &n }

func newPetRepository(t *testing.T, opts ...Option) (*Repository[pet], *bun.DB) {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, filepath.Join(t.TempDir(), "pets.db"))
	require.NoError(t, err)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	_, err = db.NewCreateTable().Model((*pet)(nil)).Exec(ctx)
	require.NoError(t, err)
	pets := []*pet{
		{Name: "Ant", Age: age(1)},
		{Name: "Bee"},
		{Name: "Cat", Age: age(3)},
		{Name: "Dog"},
		{Name: "Eel", Age: age(5)},
	}
	_, err = db.NewInsert().Model(&pets).Exec(ctx)
	require.NoError(t, err)
	return NewRepository[pet](db, opts...), db
}

func nameIs(name string) sculptor.Sculptor[pet] {
	return func(root *sculptor.Root[pet], _ *sculptor.QueryContext[pet], cb *sculptor.Builder) *sculptor.Predicate {
		return cb.Equal(root.Get("name"), name)
	}
}

func ageAtLeast(n int) sculptor.Sculptor[pet] {
	return func(root *sculptor.Root[pet], _ *sculptor.QueryContext[pet], cb *sculptor.Builder) *sculptor.Predicate {
		return cb.GreaterThanOrEqual(root.Get("Age"), n)
	}
}

func ageUnknown() sculptor.Sculptor[pet] {
	return func(root *sculptor.Root[pet], _ *sculptor.QueryContext[pet], cb *sculptor.Builder) *sculptor.Predicate {
		return cb.IsNull(root.Get("age"))
	}
}

func unknownField() sculptor.Sculptor[pet] {
	return func(root *sculptor.Root[pet], _ *sculptor.QueryContext[pet], cb *sculptor.Builder) *sculptor.Predicate {
		return cb.Equal(root.Get("colour"), "red")
	}
}

func names(pets []*pet) []string {
	out := make([]string, len(pets))
	for i, p := range pets {
		out[i] = p.Name
	}
	return out
}

func TestList(t *testing.T) {
	repo, _ := newPetRepository(t)
	ctx := context.Background()

	tests := []struct {
		name string
		spec sculptor.Sculptor[pet]
		want []string
	}{
		{"conjunction", sculptor.Conjunction[pet](), []string{"Ant", "Bee", "Cat", "Dog", "Eel"}},
		{"no constraint", sculptor.Where[pet](nil), []string{"Ant", "Bee", "Cat", "Dog", "Eel"}},
		{"leaf", nameIs("Cat"), []string{"Cat"}},
		{"and", ageAtLeast(3).And(nameIs("Eel")), []string{"Eel"}},
		{"or", nameIs("Ant").Or(ageUnknown()), []string{"Ant", "Bee", "Dog"}},
		{"not", sculptor.Not(ageUnknown()), []string{"Ant", "Cat", "Eel"}},
		{"and with no constraint", sculptor.Where[pet](nil).And(nameIs("Dog")), []string{"Dog"}},
		{"any of nothing", sculptor.AnyOf[pet](), []string{"Ant", "Bee", "Cat", "Dog", "Eel"}},
		{"no match", nameIs("Yak"), []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pets, err := repo.List(ctx, tt.spec)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, names(pets))
		})
	}
}

func TestFindOne(t *testing.T) {
	repo, _ := newPetRepository(t)
	ctx := context.Background()

	cat, err := repo.FindOne(ctx, nameIs("Cat"))
	require.NoError(t, err)
	assert.Equal(t, "Cat", cat.Name)
	assert.Equal(t, 3, *cat.Age)

	_, err = repo.FindOne(ctx, nameIs("Yak"))
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = repo.FindOne(ctx, ageUnknown())
	assert.ErrorIs(t, err, ErrNonUniqueResult)
}

func TestExistsAndCount(t *testing.T) {
	repo, _ := newPetRepository(t)
	ctx := context.Background()

	ok, err := repo.Exists(ctx, nameIs("Bee"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, nameIs("Yak"))
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := repo.Count(ctx, ageAtLeast(3))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.Count(ctx, sculptor.Where[pet](nil))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestUpdate(t *testing.T) {
	repo, _ := newPetRepository(t)
	ctx := context.Background()

	n, err := repo.Update(ctx, ageUnknown(), func(q *bun.UpdateQuery) {
		q.Set("age = ?", 0)
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	count, err := repo.Count(ctx, ageUnknown())
	require.NoError(t, err)
	assert.Zero(t, count)

	n, err = repo.Update(ctx, sculptor.Where[pet](nil), func(q *bun.UpdateQuery) {
		q.Set("age = age + 1")
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)

	eel, err := repo.FindOne(ctx, nameIs("Eel"))
	require.NoError(t, err)
	assert.Equal(t, 6, *eel.Age)
}

func TestDelete(t *testing.T) {
	repo, _ := newPetRepository(t)
	ctx := context.Background()

	n, err := repo.Delete(ctx, nameIs("Yak"))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.Delete(ctx, ageUnknown().Or(nameIs("Ant")))
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	n, err = repo.Delete(ctx, sculptor.Conjunction[pet]())
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func findAll(t *testing.T, repo *Repository[pet], spec sculptor.Sculptor[pet], req *types.PageRequest) []string {
	t.Helper()
	var pets []*pet
	err := repo.FindAll(context.Background(), spec, req, func(ctx context.Context, q *bun.SelectQuery) error {
		return q.Scan(ctx, &pets)
	})
	require.NoError(t, err)
	return names(pets)
}

func TestFindAll(t *testing.T) {
	repo, _ := newPetRepository(t)
	all := sculptor.Conjunction[pet]()

	assert.ElementsMatch(t,
		[]string{"Ant", "Bee", "Cat", "Dog", "Eel"},
		findAll(t, repo, all, types.NewPageRequestWithPaging(types.UnPaged())))

	assert.Equal(t, []string{"Cat", "Dog"},
		findAll(t, repo, all, types.NewPageRequest(types.NewPaging(2, 2), types.SortBy("name"))))

	assert.Equal(t, []string{"Eel"},
		findAll(t, repo, all, types.NewPageRequest(types.NewPaging(3, 2), types.SortBy("name"))))

	assert.Equal(t, []string{"Eel", "Dog"},
		findAll(t, repo, all, types.NewPageRequest(types.PagingOfSize(2), types.SortDescending("Name"))))

	assert.Equal(t, []string{"Bee", "Dog", "Ant", "Cat", "Eel"},
		findAll(t, repo, all, types.NewPageRequest(types.PagingOfSize(10),
			types.SortByNulls("age", types.Ascending, types.NullsFirst).And("name"))))

	assert.Equal(t, []string{"Eel", "Cat", "Ant", "Bee", "Dog"},
		findAll(t, repo, all, types.NewPageRequest(types.PagingOfSize(10),
			types.SortByNulls("age", types.Descending, types.NullsLast).And("name"))))

	assert.Equal(t, []string{"Eel", "Cat", "Ant", "Bee", "Dog"},
		findAll(t, repo, all, types.NewPageRequest(types.PagingOfSize(10),
			types.SortDescending("coalesce(age, 0)").And("name").DisableEscaping())))

	assert.Equal(t, []string{"Cat", "Eel"},
		findAll(t, repo, ageAtLeast(2), types.NewPageRequest(types.PagingOfSize(5), types.SortBy("id"))))
}

func TestFindAllUnknownSortColumn(t *testing.T) {
	repo, _ := newPetRepository(t)
	err := repo.FindAll(context.Background(), sculptor.Conjunction[pet](),
		types.NewPageRequest(types.PagingOfSize(2), types.SortBy("colour")),
		func(context.Context, *bun.SelectQuery) error {
			t.Fatal("query function must not run")
			return nil
		})
	assert.ErrorIs(t, err, sculptor.ErrUnknownField)
}

func TestFindPage(t *testing.T) {
	repo, _ := newPetRepository(t)
	ctx := context.Background()

	page, err := repo.FindPage(ctx, sculptor.Conjunction[pet](), types.NewPageRequest(types.NewPaging(2, 2), types.SortBy("name")))
	require.NoError(t, err)
	assert.Equal(t, []string{"Cat", "Dog"}, names(page.Items()))
	assert.Equal(t, 2, page.Page())
	assert.EqualValues(t, 2, page.Size())
	assert.EqualValues(t, 5, page.TotalItems())
	assert.Equal(t, 3, page.TotalPages())
	assert.True(t, page.HasNextPage())
	assert.True(t, page.HasPreviousPage())

	page, err = repo.FindPage(ctx, nameIs("Yak"), types.NewDefaultPageRequest(1, 10))
	require.NoError(t, err)
	assert.Empty(t, page.Items())
	assert.Zero(t, page.TotalItems())
	assert.Zero(t, page.TotalPages())
	assert.False(t, page.HasNextPage())

	page, err = repo.FindPage(ctx, ageUnknown(), types.NewPageRequestWithPaging(types.UnPaged()))
	require.NoError(t, err)
	assert.Len(t, page.Items(), 2)
	assert.EqualValues(t, 2, page.Size())
	assert.Equal(t, 1, page.TotalPages())
	assert.Equal(t, 1, page.Page())
}

func TestZeroSizeWindowIsEmpty(t *testing.T) {
	repo, _ := newPetRepository(t)
	ctx := context.Background()
	req := types.NewDefaultPageRequest(1, 0)

	assert.Empty(t, findAll(t, repo, sculptor.Conjunction[pet](), req))

	page, err := repo.FindPage(ctx, sculptor.Conjunction[pet](), req)
	require.NoError(t, err)
	assert.Empty(t, page.Items())
	assert.EqualValues(t, 0, page.Size())
	assert.EqualValues(t, 5, page.TotalItems())
	assert.Zero(t, page.TotalPages())
}

func TestUnknownFieldIsReported(t *testing.T) {
	repo, _ := newPetRepository(t)
	ctx := context.Background()

	_, err := repo.List(ctx, unknownField())
	assert.ErrorIs(t, err, sculptor.ErrUnknownField)
	_, err = repo.Count(ctx, unknownField())
	assert.ErrorIs(t, err, sculptor.ErrUnknownField)

	n, err := repo.Delete(ctx, nameIs("Ant").Or(unknownField()))
	assert.ErrorIs(t, err, sculptor.ErrUnknownField)
	assert.Zero(t, n)

	count, err := repo.Count(ctx, sculptor.Conjunction[pet]())
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestInvalidArguments(t *testing.T) {
	repo, _ := newPetRepository(t)
	ctx := context.Background()
	req := types.NewDefaultPageRequest(1, 10)
	noop := func(context.Context, *bun.SelectQuery) error { return nil }

	_, err := repo.List(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = repo.FindOne(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = repo.Exists(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = repo.Count(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = repo.Delete(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = repo.Update(ctx, nil, func(*bun.UpdateQuery) {})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = repo.Update(ctx, nameIs("Ant"), nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, repo.FindAll(ctx, nil, req, noop), ErrInvalidArgument)
	assert.ErrorIs(t, repo.FindAll(ctx, nameIs("Ant"), nil, noop), ErrInvalidArgument)
	assert.ErrorIs(t, repo.FindAll(ctx, nameIs("Ant"), req, nil), ErrInvalidArgument)
	_, err = repo.FindPage(ctx, nameIs("Ant"), nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, repo.Create(ctx), ErrInvalidArgument)
	assert.ErrorIs(t, repo.Upsert(ctx, nil, nil, &pet{Name: "Fox"}), ErrInvalidArgument)
}

type untagged struct {
	ID int64 `bun:"id,pk"`
}

type keyless struct {
	bun.BaseModel `bun:"table:keyless"`

	Name string `bun:"name"`
}

type bareTagged struct {
	bun.BaseModel `bun:"critters,alias:c"`

	ID int64 `bun:"id,pk"`
}

type aliasOnly struct {
	bun.BaseModel `bun:"alias:a"`

	ID int64 `bun:"id,pk"`
}

func TestStrictDescriptorTableTags(t *testing.T) {
	d := sqlitedialect.New()

	table, err := ModelDescriptor[bareTagged]{Strict: true}.Describe(d)
	require.NoError(t, err)
	assert.Equal(t, "critters", table.Name)

	_, err = ModelDescriptor[pet]{Strict: true}.Describe(d)
	assert.NoError(t, err)

	_, err = ModelDescriptor[aliasOnly]{Strict: true}.Describe(d)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestDescriptorConfiguration(t *testing.T) {
	repo, db := newPetRepository(t, WithDescriptor(nil))
	ctx := context.Background()

	_, err := repo.List(ctx, sculptor.Conjunction[pet]())
	assert.ErrorIs(t, err, ErrConfiguration)

	strict := NewRepository[pet](db, WithStrictDescriptor[pet]())
	_, err = strict.List(ctx, sculptor.Conjunction[pet]())
	assert.NoError(t, err)

	_, err = NewRepository[untagged](db, WithStrictDescriptor[untagged]()).Count(ctx, sculptor.Conjunction[untagged]())
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewRepository[keyless](db, WithStrictDescriptor[keyless]()).Count(ctx, sculptor.Conjunction[keyless]())
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewRepository[int](db).Count(ctx, sculptor.Conjunction[int]())
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestRepositoryWithoutDatabase(t *testing.T) {
	_, err := NewRepository[pet](nil).List(context.Background(), sculptor.Conjunction[pet]())
	assert.EqualError(t, err, "list: database not initialized")
}

func TestCreateAndUpsert(t *testing.T) {
	repo, _ := newPetRepository(t)
	ctx := context.Background()

	fox := &pet{Name: "Fox", Age: age(2)}
	require.NoError(t, repo.Create(ctx, fox))
	assert.NotZero(t, fox.ID)

	err := repo.Upsert(ctx, []string{"Age"}, []string{"name"}, &pet{Name: "Ant", Age: age(10)}, &pet{Name: "Gnu", Age: age(4)})
	require.NoError(t, err)

	ant, err := repo.FindOne(ctx, nameIs("Ant"))
	require.NoError(t, err)
	assert.Equal(t, 10, *ant.Age)
	n, err := repo.Count(ctx, sculptor.Conjunction[pet]())
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	err = repo.Upsert(ctx, []string{"colour"}, nil, &pet{Name: "Hen"})
	assert.ErrorIs(t, err, sculptor.ErrUnknownField)
}

type partialExecutor struct {
	UnimplementedExecutor[pet]
}

func (partialExecutor) Exists(context.Context, sculptor.Sculptor[pet]) (bool, error) {
	return true, nil
}

func TestUnimplementedExecutor(t *testing.T) {
	var exec Executor[pet] = partialExecutor{}
	ctx := context.Background()

	ok, err := exec.Exists(ctx, nameIs("Ant"))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = exec.List(ctx, nameIs("Ant"))
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = exec.Delete(ctx, nameIs("Ant"))
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.ErrorIs(t, exec.FindAll(ctx, nameIs("Ant"), types.NewDefaultPageRequest(1, 1), nil), ErrUnsupported)
}
