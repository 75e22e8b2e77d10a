package repository_test

import (
	"context"
	"errors"
	"testing"

	repository "github.com/reelworks/marquee/internal/adapters/repository"
	"github.com/reelworks/marquee/internal/domain/movie"
	. "github.com/smartystreets/goconvey/convey"
)

func mustCatalog(opts ...repository.CatalogOption) *repository.Catalog {
	c, err := repository.NewCatalog("test", opts...)
	So(err, ShouldBeNil)
	return c
}

func TestNewCatalog(t *testing.T) {
	Convey("Given catalog construction parameters", t, func() {
		Convey("Then a named catalog is created", func() {
			c, err := repository.NewCatalog("main")
			So(err, ShouldBeNil)
			So(c.Name(), ShouldEqual, "main")
		})

		Convey("Then an empty name is rejected", func() {
			_, err := repository.NewCatalog("   ")
			So(errors.Is(err, repository.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("Then a non-positive size is rejected", func() {
			_, err := repository.NewCatalog("main", repository.WithMaxSize(0))
			So(errors.Is(err, repository.ErrInvalidCatalog), ShouldBeTrue)
		})
	})
}

func TestCatalogAdd(t *testing.T) {
	Convey("Given an empty catalog", t, func() {
		ctx := context.Background()
		c := mustCatalog()

		Convey("When a valid movie is added", func() {
			m := movie.Movie{ID: "m1", Title: "Night Ferry", Year: 2010, Rating: 7.5, Rated: true}
			So(c.Add(ctx, m), ShouldBeNil)

			Convey("Then it can be fetched back", func() {
				got, err := c.Get(ctx, "m1")
				So(err, ShouldBeNil)
				So(got, ShouldResemble, m)
				So(c.Count(ctx), ShouldEqual, 1)
			})

			Convey("And re-adding the same id replaces in place", func() {
				m.Title = "Night Ferry (Director's Cut)"
				So(c.Add(ctx, m), ShouldBeNil)
				got, _ := c.Get(ctx, "m1")
				So(got.Title, ShouldEqual, "Night Ferry (Director's Cut)")
				So(c.Count(ctx), ShouldEqual, 1)
			})
		})

		Convey("When an invalid movie is added", func() {
			err := c.Add(ctx, movie.Movie{ID: "m1"})
			So(errors.Is(err, movie.ErrInvalidMovie), ShouldBeTrue)
			So(c.Count(ctx), ShouldEqual, 0)
		})
	})

	Convey("Given a catalog bounded to two movies", t, func() {
		ctx := context.Background()
		c := mustCatalog(repository.WithMaxSize(2))
		So(c.Add(ctx, movie.Movie{ID: "m1", Title: "a"}), ShouldBeNil)
		So(c.Add(ctx, movie.Movie{ID: "m2", Title: "b"}), ShouldBeNil)

		Convey("When a third distinct movie is added", func() {
			err := c.Add(ctx, movie.Movie{ID: "m3", Title: "c"})
			So(errors.Is(err, repository.ErrCatalogFull), ShouldBeTrue)
		})

		Convey("When an existing movie is replaced at capacity", func() {
			So(c.Add(ctx, movie.Movie{ID: "m2", Title: "b2"}), ShouldBeNil)
		})
	})
}

func TestCatalogRemove(t *testing.T) {
	Convey("Given a catalog with movies", t, func() {
		ctx := context.Background()
		c := mustCatalog()
		So(c.Add(ctx, movie.Movie{ID: "m1", Title: "a"}), ShouldBeNil)
		So(c.Add(ctx, movie.Movie{ID: "m2", Title: "b"}), ShouldBeNil)

		Convey("When a movie is removed", func() {
			c.Remove(ctx, "m1")

			Convey("Then it is gone and the order holds", func() {
				_, err := c.Get(ctx, "m1")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				list := c.List(ctx)
				So(list, ShouldHaveLength, 1)
				So(list[0].ID, ShouldEqual, "m2")
			})
		})

		Convey("When an unknown id is removed", func() {
			c.Remove(ctx, "ghost")
			So(c.Count(ctx), ShouldEqual, 2)
		})
	})
}

func TestCatalogQueries(t *testing.T) {
	Convey("Given a populated catalog", t, func() {
		ctx := context.Background()
		c := mustCatalog()
		movies := []movie.Movie{
			{ID: "m1", Title: "The Long Rain", Genres: []string{"drama"}, Rating: 8.0, Rated: true},
			{ID: "m2", Title: "Rain Check", Genres: []string{"comedy"}, Rating: 6.5, Rated: true},
			{ID: "m3", Title: "Dry Season", Genres: []string{"Drama", "thriller"}, Rating: 9.0, Rated: true},
			{ID: "m4", Title: "Untitled Project", Genres: []string{"drama"}},
		}
		for _, m := range movies {
			So(c.Add(ctx, m), ShouldBeNil)
		}

		Convey("When listing", func() {
			list := c.List(ctx)

			Convey("Then insertion order is preserved", func() {
				So(list, ShouldHaveLength, 4)
				So(list[0].ID, ShouldEqual, "m1")
				So(list[3].ID, ShouldEqual, "m4")
			})
		})

		Convey("When searching by title", func() {
			So(c.Search(ctx, "rain"), ShouldHaveLength, 2)
			So(c.Search(ctx, "RAIN"), ShouldHaveLength, 2)
			So(c.Search(ctx, "nothing"), ShouldBeEmpty)

			Convey("Then a blank query matches everything", func() {
				So(c.Search(ctx, ""), ShouldHaveLength, 4)
			})
		})

		Convey("When filtering by genre", func() {
			drama := c.FilterByGenre(ctx, "drama")

			Convey("Then matching is case-insensitive", func() {
				So(drama, ShouldHaveLength, 3)
				So(c.FilterByGenre(ctx, "western"), ShouldBeEmpty)
			})
		})

		Convey("When recommending by rating", func() {
			got := c.RecommendByRating(ctx, 7.0)

			Convey("Then rated movies at or above the floor come back best first", func() {
				So(got, ShouldHaveLength, 2)
				So(got[0].ID, ShouldEqual, "m3")
				So(got[1].ID, ShouldEqual, "m1")
			})

			Convey("Then unrated movies never qualify", func() {
				all := c.RecommendByRating(ctx, 0)
				So(all, ShouldHaveLength, 3)
			})
		})
	})
}
