package middleware

import (
	"context"
	"errors"
	"testing"

	"balilove/internal/app/queries"
)

type sizedQuery struct{ Size int }

func (sizedQuery) Key() string { return "test.sized" }

func (q sizedQuery) Validate() error {
	if q.Size < 0 {
		return errors.New("size must not be negative")
	}
	return nil
}

func TestQueryValidation(t *testing.T) {
	bus := queries.NewInMemoryBus()
	queries.MustRegister[sizedQuery, int](bus, sizedQuery{}.Key(), queries.HandlerFunc[sizedQuery, int](func(_ context.Context, q sizedQuery) (int, error) {
		return q.Size * 2, nil
	}))
	wrapped := ChainQueries(bus, QueryLogging(nil), QueryValidation())

	got, err := queries.Ask[sizedQuery, int](context.Background(), wrapped, sizedQuery{Size: 4})
	if err != nil || got != 8 {
		t.Fatalf("got %d, %v", got, err)
	}

	_, err = queries.Ask[sizedQuery, int](context.Background(), wrapped, sizedQuery{Size: -1})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestChainQueriesOrder(t *testing.T) {
	var order []string
	mark := func(name string) QueryMiddleware {
		return func(next queries.Bus) queries.Bus {
			return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
				order = append(order, name)
				return next.Ask(ctx, q)
			})
		}
	}
	base := queryFunc(func(context.Context, queries.Query) (any, error) { return nil, nil })
	if _, err := ChainQueries(base, mark("outer"), mark("inner")).Ask(context.Background(), sizedQuery{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Fatalf("order = %v", order)
	}
}
