package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/podium/internal/adapters/http/api"
	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

// fakeService implements api.Dependencies for handler tests.
type fakeService struct {
	entries   []api.Entry
	submitErr error
	gotUserID string
	gotScore  float64
}

func (f *fakeService) Submit(ctx context.Context, userID, name string, score float64, avatar string) (int, error) {
	f.gotUserID = userID
	f.gotScore = score
	if f.submitErr != nil {
		return 0, f.submitErr
	}
	return 1, nil
}

func (f *fakeService) RankedView(ctx context.Context) ([]api.Entry, error) {
	return f.entries, nil
}

func newTestServer(deps api.Dependencies) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(deps).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func TestGetLeaderboard(t *testing.T) {
	Convey("Given a service with two ranked entries", t, func() {
		svc := &fakeService{entries: []api.Entry{
			{Rank: 1, Record: model.Record{UserID: "u2", Name: "Bob", Score: 80}},
			{Rank: 2, Record: model.Record{UserID: "u1", Name: "Alice", Score: 50}},
		}}
		srv := newTestServer(svc)
		defer srv.Close()

		Convey("When GET /api/leaderboard is called", func() {
			resp, err := http.Get(srv.URL + "/api/leaderboard")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then the wrapped ranked view is returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var body struct {
					Items []api.Entry `json:"items"`
				}
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body.Items, ShouldHaveLength, 2)
				So(body.Items[0].UserID, ShouldEqual, "u2")
				So(body.Items[0].Rank, ShouldEqual, 1)
			})
		})

		Convey("When the route is hit with POST", func() {
			resp, err := http.Post(srv.URL+"/api/leaderboard", "application/json", strings.NewReader("{}"))
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then it is not found", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})
	})

	Convey("Given a service with no entries", t, func() {
		srv := newTestServer(&fakeService{})
		defer srv.Close()

		Convey("Then items is an empty array, not null", func() {
			resp, err := http.Get(srv.URL + "/api/leaderboard")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			var raw map[string]json.RawMessage
			So(json.NewDecoder(resp.Body).Decode(&raw), ShouldBeNil)
			So(string(raw["items"]), ShouldEqual, "[]")
		})
	})
}

func TestPostSubmit(t *testing.T) {
	Convey("Given a healthy service", t, func() {
		svc := &fakeService{}
		srv := newTestServer(svc)
		defer srv.Close()

		Convey("When a valid submission is posted", func() {
			payload := `{"user_id":"u1","name":"Alice","score":42.5,"avatar":""}`
			resp, err := http.Post(srv.URL+"/api/leaderboard/submit", "application/json", strings.NewReader(payload))
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then the rank is acknowledged", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var body struct {
					OK   bool `json:"ok"`
					Rank *int `json:"rank"`
				}
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body.OK, ShouldBeTrue)
				So(body.Rank, ShouldNotBeNil)
				So(*body.Rank, ShouldEqual, 1)
				So(svc.gotUserID, ShouldEqual, "u1")
				So(svc.gotScore, ShouldEqual, 42.5)
			})
		})

		Convey("When the body is not JSON", func() {
			resp, err := http.Post(srv.URL+"/api/leaderboard/submit", "application/json", strings.NewReader("not json"))
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then the submission is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)

				var body struct {
					OK    bool   `json:"ok"`
					Error string `json:"error"`
				}
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body.OK, ShouldBeFalse)
				So(body.Error, ShouldEqual, "invalid payload")
			})
		})

		Convey("When the middleware handles the request", func() {
			resp, err := http.Get(srv.URL + "/healthz")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then a request id is attached", func() {
				So(resp.Header.Get("X-Request-ID"), ShouldNotBeEmpty)
			})
		})
	})

	Convey("Given a service that rejects validation", t, func() {
		svc := &fakeService{submitErr: repository.ErrNonPositiveScore}
		srv := newTestServer(svc)
		defer srv.Close()

		Convey("Then the handler maps it to a 400 rejection", func() {
			payload := `{"user_id":"u1","name":"Alice","score":0}`
			resp, err := http.Post(srv.URL+"/api/leaderboard/submit", "application/json", strings.NewReader(payload))
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}
