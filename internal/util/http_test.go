package util

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHTTPClient(t *testing.T) {
	Convey("Given a server that echoes request headers", t, func() {
		var got http.Header
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
		}))
		defer srv.Close()

		host := mustHost(srv.URL)

		Convey("User agent and cookie are injected for the cookie host", func() {
			c, err := NewHTTPClient(HTTPClientOptions{
				UserAgent:  "ua-test",
				Cookie:     "LOGINKEY=abc",
				CookieHost: host,
			})
			So(err, ShouldBeNil)

			resp, err := c.Get(srv.URL)
			So(err, ShouldBeNil)
			_ = resp.Body.Close()

			So(got.Get("User-Agent"), ShouldEqual, "ua-test")
			So(got.Get("Cookie"), ShouldEqual, "LOGINKEY=abc")
		})

		Convey("The cookie is withheld from other hosts", func() {
			c, err := NewHTTPClient(HTTPClientOptions{
				Cookie:     "LOGINKEY=abc",
				CookieHost: "novelpia.com",
			})
			So(err, ShouldBeNil)

			resp, err := c.Get(srv.URL)
			So(err, ShouldBeNil)
			_ = resp.Body.Close()

			So(got.Get("Cookie"), ShouldEqual, "")
		})

		Convey("Inline and file cookies are joined", func() {
			path := filepath.Join(t.TempDir(), "cookie.txt")
			So(os.WriteFile(path, []byte("\n  USERKEY=xyz  \nignored=1\n"), 0644), ShouldBeNil)

			c, err := NewHTTPClient(HTTPClientOptions{Cookie: "LOGINKEY=abc", CookieFile: path})
			So(err, ShouldBeNil)

			resp, err := c.Get(srv.URL)
			So(err, ShouldBeNil)
			_ = resp.Body.Close()

			So(got.Get("Cookie"), ShouldEqual, "LOGINKEY=abc; USERKEY=xyz")
		})

		Convey("A missing cookie file is an error", func() {
			_, err := NewHTTPClient(HTTPClientOptions{CookieFile: filepath.Join(t.TempDir(), "nope")})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestPickUserAgent(t *testing.T) {
	Convey("PickUserAgent", t, func() {
		So(PickUserAgent("custom"), ShouldEqual, "custom")
		So(PickUserAgent(""), ShouldStartWith, "Mozilla/5.0")
	})
}

func mustHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		panic(err)
	}
	return u.Hostname()
}
