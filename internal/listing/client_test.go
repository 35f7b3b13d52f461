package listing

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/lukman83/estate-listings/internal/models"
	. "github.com/smartystreets/goconvey/convey"
)

const listPayload = `{
	"success": true,
	"data": {
		"properties": [
			{"_id": "p1", "title": "Green Acres", "category": "Farm House", "isFeatured": true,
			 "features": {"bedrooms": 4, "bathrooms": 2, "area": 3200},
			 "images": [{"url": "a.jpg"}, {"url": "b.jpg", "isPrimary": true}]},
			{"_id": "p2", "title": "Loft", "category": "Apartment"},
			{"_id": "p3", "title": "Ranch", "category": "Single Story", "features": {"theater": 1}}
		],
		"pagination": {"page": 1, "limit": 100, "total": 3, "pages": 1}
	}
}`

func newTestClient(url string) *Client {
	c := NewClient(http.DefaultClient, url, nil)
	c.MaxRetries = 0
	return c
}

func respond(body string, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func TestFetchListings(t *testing.T) {
	Convey("FetchListings", t, func() {
		var gotQuery url.Values
		var gotPath, gotAccept string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query()
			gotAccept = r.Header.Get("Accept")
			respond(listPayload, http.StatusOK)(w, r)
		}))
		defer ts.Close()
		client := newTestClient(ts.URL + "/api/")

		Convey("sends cleaned filters with default limit and page", func() {
			_, err := client.FetchListings(context.Background(), models.Params{
				"category": "villa",
				"bedrooms": "",
				"location": nil,
			})
			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, "/api/properties")
			So(gotAccept, ShouldEqual, "application/json")
			So(gotQuery.Get("category"), ShouldEqual, "villa")
			So(gotQuery.Get("limit"), ShouldEqual, "100")
			So(gotQuery.Get("page"), ShouldEqual, "1")
			So(gotQuery.Has("bedrooms"), ShouldBeFalse)
			So(gotQuery.Has("location"), ShouldBeFalse)
		})

		Convey("normalizes every property", func() {
			page, err := client.FetchListings(context.Background(), nil)
			So(err, ShouldBeNil)
			So(page.Properties, ShouldHaveLength, 3)
			So(page.Properties[0].ID, ShouldEqual, "p1")
			So(page.Properties[0].PrimaryImage, ShouldEqual, "b.jpg")
			So(page.Properties[0].Features.Bedrooms, ShouldEqual, 4)
			So(page.Properties[1].Features, ShouldResemble, models.Features{})
			So(page.Properties[2].Features.Theater, ShouldEqual, 1)
			So(page.Pagination, ShouldNotBeNil)
			So(page.Pagination.Total, ShouldEqual, 3)
		})

		Convey("FetchFeatured asks the API for featured listings", func() {
			_, err := client.FetchFeatured(context.Background(), 100)
			So(err, ShouldBeNil)
			So(gotQuery.Get("featured"), ShouldEqual, "true")
			So(gotQuery.Get("limit"), ShouldEqual, "100")
		})
	})
}

func TestFetchListings_Errors(t *testing.T) {
	Convey("FetchListings failures", t, func() {
		cases := []struct {
			name      string
			body      string
			status    int
			network   bool
			malformed bool
		}{
			{"server error", `{"success":false}`, http.StatusInternalServerError, true, false},
			{"not found", `{}`, http.StatusNotFound, true, false},
			{"missing success flag", `{"data":{"properties":[]}}`, http.StatusOK, false, true},
			{"success false", `{"success":false,"message":"down for maintenance"}`, http.StatusOK, false, true},
			{"missing properties", `{"success":true,"data":{}}`, http.StatusOK, false, true},
			{"properties not an array", `{"success":true,"data":{"properties":{"_id":"x"}}}`, http.StatusOK, false, true},
			{"missing data", `{"success":true}`, http.StatusOK, false, true},
			{"invalid json", `<html>oops</html>`, http.StatusOK, false, true},
		}

		for _, tc := range cases {
			tc := tc
			Convey(tc.name, func() {
				ts := httptest.NewServer(respond(tc.body, tc.status))
				defer ts.Close()

				page, err := newTestClient(ts.URL).FetchListings(context.Background(), nil)
				So(err, ShouldNotBeNil)
				So(IsNetwork(err), ShouldEqual, tc.network)
				So(IsMalformed(err), ShouldEqual, tc.malformed)
				So(page.Properties, ShouldNotBeNil)
				So(page.Properties, ShouldBeEmpty)
				So(page.Pagination, ShouldBeNil)
			})
		}

		Convey("transport failure", func() {
			ts := httptest.NewServer(respond(listPayload, http.StatusOK))
			ts.Close()

			_, err := newTestClient(ts.URL).FetchListings(context.Background(), nil)
			So(IsNetwork(err), ShouldBeTrue)
		})

		Convey("status is reported", func() {
			ts := httptest.NewServer(respond(`{}`, http.StatusForbidden))
			defer ts.Close()

			_, err := newTestClient(ts.URL).FetchListings(context.Background(), nil)
			So(err.Error(), ShouldContainSubstring, "403")
		})
	})
}

func TestFetchListings_BadRecords(t *testing.T) {
	Convey("A record with odd field types does not fail the page", t, func() {
		ts := httptest.NewServer(respond(`{"success":true,"data":{"properties":[
			{"_id":"a","title":"Loft"},
			{"_id":"b","views":true,"createdAt":1700000000,"isFeatured":"true","tags":"x"},
			"not a listing",
			{"_id":"c","features":{"bedrooms":2}}
		]}}`, http.StatusOK))
		defer ts.Close()

		page, err := newTestClient(ts.URL).FetchListings(context.Background(), nil)
		So(err, ShouldBeNil)
		So(page.Properties, ShouldHaveLength, 3)
		So(page.Properties[0].ID, ShouldEqual, "a")

		b := page.Properties[1]
		So(b.ID, ShouldEqual, "b")
		So(b.Views, ShouldEqual, 0)
		So(b.CreatedAt, ShouldEqual, "1700000000")
		So(b.IsFeatured, ShouldBeTrue)
		So(b.Tags, ShouldResemble, []string{"x"})

		So(page.Properties[2].Features.Bedrooms, ShouldEqual, 2)
	})
}

func TestFetchListings_Gzip(t *testing.T) {
	Convey("gzip encoded responses are decompressed", t, func() {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		zw.Write([]byte(listPayload))
		zw.Close()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Encoding", "gzip")
			w.Write(buf.Bytes())
		}))
		defer ts.Close()

		page, err := newTestClient(ts.URL).FetchListings(context.Background(), nil)
		So(err, ShouldBeNil)
		So(page.Properties, ShouldHaveLength, 3)
	})
}

func TestFetchDetails(t *testing.T) {
	Convey("FetchDetails", t, func() {
		var gotPath string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.EscapedPath()
			respond(`{"success":true,"data":{"_id":"p 1","title":"Villa","features":{"bedrooms":5,"pool":true},"documents":[{"name":"deed.pdf"}]}}`, http.StatusOK)(w, r)
		}))
		defer ts.Close()
		client := newTestClient(ts.URL)

		Convey("fetches and keeps the nested detail shape", func() {
			d, err := client.FetchDetails(context.Background(), "p 1")
			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, "/properties/p%201")
			So(d.ID, ShouldEqual, "p 1")
			So(d.Features["pool"], ShouldEqual, true)
			So(string(d.Documents), ShouldContainSubstring, "deed.pdf")
		})

		Convey("rejects an empty id without a request", func() {
			gotPath = ""
			d, err := client.FetchDetails(context.Background(), " ")
			So(err, ShouldNotBeNil)
			So(gotPath, ShouldEqual, "")
			So(d.Features, ShouldNotBeNil)
		})
	})

	Convey("FetchDetails with a non-object payload", t, func() {
		ts := httptest.NewServer(respond(`{"success":true,"data":[1,2]}`, http.StatusOK))
		defer ts.Close()

		_, err := newTestClient(ts.URL).FetchDetails(context.Background(), "x")
		So(IsMalformed(err), ShouldBeTrue)
	})
}
