package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	api "github.com/reelworks/marquee/internal/adapters/http/api"
	service "github.com/reelworks/marquee/internal/app"
	"github.com/reelworks/marquee/internal/domain/types"
	"github.com/reelworks/marquee/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

var apiNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestServer() *httptest.Server {
	svc := service.New(service.WithClock(func() time.Time { return apiNow }))
	So(svc.Start(context.Background()), ShouldBeNil)

	mux := http.NewServeMux()
	api.NewServer(svc, svc, 100).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func postJSON(ts *httptest.Server, path string, body any) *http.Response {
	raw, err := json.Marshal(body)
	So(err, ShouldBeNil)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(raw))
	So(err, ShouldBeNil)
	return resp
}

func getJSON(ts *httptest.Server, path string, out any) *http.Response {
	resp, err := http.Get(ts.URL + path)
	So(err, ShouldBeNil)
	if out != nil {
		defer resp.Body.Close()
		So(json.NewDecoder(resp.Body).Decode(out), ShouldBeNil)
	}
	return resp
}

func decode(resp *http.Response, out any) {
	defer resp.Body.Close()
	So(json.NewDecoder(resp.Body).Decode(out), ShouldBeNil)
}

func TestPostEvent(t *testing.T) {
	Convey("Given a running server", t, func() {
		ts := newTestServer()
		defer ts.Close()

		valid := map[string]any{
			"event_id": "e1", "user_id": "u1", "movie_id": "m1",
			"kind": "finish", "watch_seconds": 120,
		}

		Convey("When a valid event is posted", func() {
			resp := postJSON(ts, "/events", valid)

			Convey("Then it is stored with an ack", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)
				var ack struct {
					Status    string `json:"status"`
					EventID   string `json:"event_id"`
					Duplicate bool   `json:"duplicate"`
				}
				decode(resp, &ack)
				So(ack.Status, ShouldEqual, "stored")
				So(ack.EventID, ShouldEqual, "e1")
				So(ack.Duplicate, ShouldBeFalse)
			})

			Convey("And replaying the same event id acks without storing twice", func() {
				resp2 := postJSON(ts, "/events", valid)
				So(resp2.StatusCode, ShouldEqual, http.StatusOK)
				var ack struct {
					Status    string `json:"status"`
					Duplicate bool   `json:"duplicate"`
				}
				decode(resp2, &ack)
				So(ack.Status, ShouldEqual, "duplicate")
				So(ack.Duplicate, ShouldBeTrue)

				var stats map[string]any
				getJSON(ts, "/stats", &stats)
				So(stats["events"], ShouldEqual, 1)
			})
		})

		Convey("When the event id is omitted", func() {
			ev := map[string]any{"user_id": "u1", "movie_id": "m1", "kind": "start"}
			resp := postJSON(ts, "/events", ev)

			Convey("Then one is generated server side", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)
				var ack struct {
					EventID string `json:"event_id"`
				}
				decode(resp, &ack)
				So(ack.EventID, ShouldNotBeEmpty)
			})
		})

		Convey("When the event kind is invalid", func() {
			bad := map[string]any{"event_id": "e2", "user_id": "u1", "movie_id": "m1", "kind": "skip"}
			resp := postJSON(ts, "/events", bad)

			Convey("Then the request fails", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				resp.Body.Close()
			})

			Convey("And the id is released for a corrected retry", func() {
				resp.Body.Close()
				fixed := map[string]any{"event_id": "e2", "user_id": "u1", "movie_id": "m1", "kind": "start"}
				resp2 := postJSON(ts, "/events", fixed)
				So(resp2.StatusCode, ShouldEqual, http.StatusCreated)
				resp2.Body.Close()
			})
		})

		Convey("When the body is not JSON", func() {
			resp, err := http.Post(ts.URL+"/events", "application/json", bytes.NewReader([]byte("{")))
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			resp.Body.Close()
		})

		Convey("When the method is GET", func() {
			resp, err := http.Get(ts.URL + "/events")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			resp.Body.Close()
		})
	})
}

func TestMovies(t *testing.T) {
	Convey("Given a running server", t, func() {
		ts := newTestServer()
		defer ts.Close()

		post := func(id, title string, rating *float64, genres ...string) *http.Response {
			body := map[string]any{"id": id, "title": title, "genres": genres}
			if rating != nil {
				body["rating"] = *rating
			}
			return postJSON(ts, "/movies", body)
		}
		r9 := 9.1

		Convey("When a movie is posted", func() {
			resp := post("m1", "Night Ferry", &r9, "drama")

			Convey("Then it is created and retrievable", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)
				resp.Body.Close()

				var got map[string]any
				getResp := getJSON(ts, "/movies/m1", &got)
				So(getResp.StatusCode, ShouldEqual, http.StatusOK)
				So(got["title"], ShouldEqual, "Night Ferry")
			})

			Convey("And it shows up in listings and filters", func() {
				resp.Body.Close()
				post("m2", "Dry Season", nil, "comedy").Body.Close()

				var list []map[string]any
				getJSON(ts, "/movies", &list)
				So(list, ShouldHaveLength, 2)

				list = nil
				getJSON(ts, "/movies?genre=drama", &list)
				So(list, ShouldHaveLength, 1)

				list = nil
				getJSON(ts, "/movies?query=ferry", &list)
				So(list, ShouldHaveLength, 1)
			})

			Convey("And DELETE removes it", func() {
				resp.Body.Close()
				req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/movies/m1", nil)
				delResp, err := http.DefaultClient.Do(req)
				So(err, ShouldBeNil)
				So(delResp.StatusCode, ShouldEqual, http.StatusNoContent)
				delResp.Body.Close()

				missing := getJSON(ts, "/movies/m1", nil)
				So(missing.StatusCode, ShouldEqual, http.StatusNotFound)
				missing.Body.Close()
			})
		})

		Convey("When an invalid movie is posted", func() {
			resp := postJSON(ts, "/movies", map[string]any{"id": "m1"})
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			resp.Body.Close()
		})

		Convey("When fetching an unknown movie", func() {
			resp := getJSON(ts, "/movies/nope", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			resp.Body.Close()
		})
	})
}

func TestAnalyticsEndpoints(t *testing.T) {
	Convey("Given a server with seeded data", t, func() {
		ts := newTestServer()
		defer ts.Close()

		r9, r7 := 9.0, 7.0
		for _, m := range []map[string]any{
			{"id": "m1", "title": "A", "rating": r9, "genres": []string{"drama"}},
			{"id": "m2", "title": "B", "rating": r7},
			{"id": "m3", "title": "C"},
		} {
			postJSON(ts, "/movies", m).Body.Close()
		}
		events := []map[string]any{
			{"user_id": "u1", "movie_id": "m1", "kind": "finish", "watch_seconds": 100},
			{"user_id": "u2", "movie_id": "m1", "kind": "finish", "watch_seconds": 200},
			{"user_id": "u1", "movie_id": "m2", "kind": "finish", "watch_seconds": 300},
			{"user_id": "u3", "movie_id": "m2", "kind": "start"},
		}
		for _, ev := range events {
			postJSON(ts, "/events", ev).Body.Close()
		}

		Convey("Then most-watched ranks by finish count", func() {
			var got []types.MovieCount
			getJSON(ts, "/analytics/most-watched", &got)
			So(got, ShouldResemble, []types.MovieCount{
				{MovieID: "m1", Finishes: 2},
				{MovieID: "m2", Finishes: 1},
			})
		})

		Convey("Then most-watched honors ?limit", func() {
			var got []types.MovieCount
			getJSON(ts, "/analytics/most-watched?limit=1", &got)
			So(got, ShouldHaveLength, 1)
		})

		Convey("Then a limit above the cap is rejected", func() {
			resp := getJSON(ts, "/analytics/most-watched?limit=101", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			resp.Body.Close()
		})

		Convey("Then highest-rated skips unrated movies", func() {
			var got []types.RatedMovie
			getJSON(ts, "/analytics/highest-rated", &got)
			So(got, ShouldResemble, []types.RatedMovie{
				{Title: "A", Rating: 9.0},
				{Title: "B", Rating: 7.0},
			})
		})

		Convey("Then trending returns the recent ranking untruncated", func() {
			var got []types.MovieCount
			getJSON(ts, "/analytics/trending?days=7", &got)
			So(got, ShouldHaveLength, 2)
		})

		Convey("Then engagement tallies per user", func() {
			var got map[string]types.Engagement
			getJSON(ts, "/analytics/engagement", &got)
			So(got, ShouldHaveLength, 3)
			So(got["u1"].Finishes, ShouldEqual, 2)
		})

		Convey("Then average watch time is wrapped in an object", func() {
			var got map[string]float64
			getJSON(ts, "/analytics/average-watch-time", &got)
			So(got["average_watch_seconds"], ShouldEqual, 150.0)
		})

		Convey("Then recommendations exclude finished movies", func() {
			var got map[string][]string
			getJSON(ts, "/analytics/recommendations?k=5", &got)
			So(got["u3"], ShouldResemble, []string{"m1", "m2"})
		})

		Convey("Then accuracy scores supplied maps", func() {
			resp := postJSON(ts, "/analytics/accuracy", map[string]any{
				"recommendations": map[string][]string{"u1": {"m1", "m9"}},
				"actual":          map[string][]string{"u1": {"m1", "m2"}},
				"k":               2,
			})
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			var got types.Accuracy
			decode(resp, &got)
			So(got.Precision, ShouldAlmostEqual, 0.5)
			So(got.Recall, ShouldAlmostEqual, 0.5)
			So(got.K, ShouldEqual, 2)
		})

		Convey("Then accuracy can self-generate recommendations", func() {
			resp := postJSON(ts, "/analytics/accuracy", map[string]any{
				"actual": map[string][]string{"u3": {"m1"}},
				"k":      5,
			})
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			var got types.Accuracy
			decode(resp, &got)
			So(got.Precision, ShouldAlmostEqual, 0.5)
			So(got.Recall, ShouldAlmostEqual, 1.0)
		})

		Convey("Then the report bundles totals and top lists", func() {
			var got types.UsageReport
			getJSON(ts, "/report", &got)
			So(got.Totals.Movies, ShouldEqual, 3)
			So(got.Totals.Events, ShouldEqual, 4)
			So(got.Totals.UniqueUsers, ShouldEqual, 3)
			So(got.Totals.AverageWatchSeconds, ShouldEqual, 150.0)
			So(got.TopByViews[0].MovieID, ShouldEqual, "m1")
			So(got.TopByRating[0].Title, ShouldEqual, "A")
		})

		Convey("Then the report JSON uses the documented labels", func() {
			resp := getJSON(ts, "/report", nil)
			defer resp.Body.Close()
			var raw map[string]json.RawMessage
			So(json.NewDecoder(resp.Body).Decode(&raw), ShouldBeNil)
			So(raw, ShouldContainKey, "totals")
			So(raw, ShouldContainKey, "top-by-views")
			So(raw, ShouldContainKey, "top-by-rating")
			So(raw, ShouldContainKey, "trending")
		})

		Convey("Then stats expose the store sizes", func() {
			var got map[string]any
			getJSON(ts, "/stats", &got)
			So(got["movies"], ShouldEqual, 3)
			So(got["events"], ShouldEqual, 4)
			So(got["started"], ShouldEqual, true)
		})

		Convey("Then the health endpoint serves metrics", func() {
			resp, err := http.Get(ts.URL + "/healthz")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			resp.Body.Close()
		})
	})
}
