package novelpia

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brogergvhs/novelpiad/internal/providers"
	. "github.com/smartystreets/goconvey/convey"
)

func viewerPage(work, number, title string) string {
	return `<html><head><title>노벨피아 - 웹소설로 꿈꾸는 세상! - ` + work + `</title></head><body>
<div class="menu-top"><span class="menu-top-tag">` + number + `</span>
<div class="menu-top-title">
  ` + title + `
</div></div></body></html>`
}

func TestParseEpisodeMeta(t *testing.T) {
	Convey("ParseEpisodeMeta", t, func() {
		Convey("Strips the site decoration and whitespace", func() {
			meta, err := ParseEpisodeMeta(viewerPage("Example", "12", "Chapter?1"))
			So(err, ShouldBeNil)
			So(meta.WorkTitle, ShouldEqual, "Example")
			So(meta.Number, ShouldEqual, "12")
			So(meta.Title, ShouldEqual, "Chapter?1")
		})

		Convey("Fails when the title block is missing", func() {
			_, err := ParseEpisodeMeta(`<html><head><title>x</title></head><body><span class="menu-top-tag">1</span></body></html>`)
			So(errors.Is(err, providers.ErrUnexpectedMarkup), ShouldBeTrue)
		})

		Convey("Fails when the number tag is missing", func() {
			_, err := ParseEpisodeMeta(`<html><body><div class="menu-top-title">t</div></body></html>`)
			So(errors.Is(err, providers.ErrUnexpectedMarkup), ShouldBeTrue)
		})
	})
}

func TestParseSegment(t *testing.T) {
	Convey("ParseSegment", t, func() {
		Convey("Plain runs are text", func() {
			seg, err := ParseSegment("Hello&nbsp;world")
			So(err, ShouldBeNil)
			So(seg.Kind, ShouldEqual, providers.SegmentText)
			So(seg.Text, ShouldEqual, "Hello&nbsp;world")
		})

		Convey("data-filename is preferred over id", func() {
			seg, err := ParseSegment(`<p><img src="//images.novelpia.com/a.jpg" id="img_1" data-filename="map.png"></p>`)
			So(err, ShouldBeNil)
			So(seg.Kind, ShouldEqual, providers.SegmentImage)
			So(seg.Src, ShouldEqual, "//images.novelpia.com/a.jpg")
			So(seg.FilenameHint.OrElse(""), ShouldEqual, "map.png")
		})

		Convey("id is used when data-filename is absent", func() {
			seg, err := ParseSegment(`<img src="//images.novelpia.com/a.jpg" id="img_1">`)
			So(err, ShouldBeNil)
			So(seg.FilenameHint.OrElse(""), ShouldEqual, "img_1")
		})

		Convey("No hint when neither attribute exists", func() {
			seg, err := ParseSegment(`<img src="//images.novelpia.com/a.jpg">`)
			So(err, ShouldBeNil)
			So(seg.FilenameHint.IsPresent(), ShouldBeFalse)
		})

		Convey("An image without src is an error", func() {
			_, err := ParseSegment(`<img id="x">`)
			So(errors.Is(err, providers.ErrUnexpectedMarkup), ShouldBeTrue)
		})
	})
}

func TestDecodeSegments(t *testing.T) {
	Convey("DecodeSegments", t, func() {
		Convey("Keeps order", func() {
			segs, err := DecodeSegments([]byte(`{"s":[{"text":"a"},{"text":"<img src=\"//h/x.jpg\">"},{"text":"b"}]}`))
			So(err, ShouldBeNil)
			So(len(segs), ShouldEqual, 3)
			So(segs[0].Text, ShouldEqual, "a")
			So(segs[1].Kind, ShouldEqual, providers.SegmentImage)
			So(segs[2].Text, ShouldEqual, "b")
		})

		Convey("Rejects a payload without the content array", func() {
			_, err := DecodeSegments([]byte(`{"status":"login"}`))
			So(errors.Is(err, providers.ErrUnexpectedMarkup), ShouldBeTrue)
		})

		Convey("Rejects invalid JSON", func() {
			_, err := DecodeSegments([]byte(`<html>`))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestClientEpisode(t *testing.T) {
	Convey("Given a server for episode 42", t, func() {
		var order []string
		mux := http.NewServeMux()
		mux.HandleFunc("/viewer/42", func(w http.ResponseWriter, r *http.Request) {
			order = append(order, r.Method+" viewer")
			_, _ = w.Write([]byte(viewerPage("Example", "12", "Chapter?1")))
		})
		mux.HandleFunc("/proc/viewer_data/42", func(w http.ResponseWriter, r *http.Request) {
			order = append(order, r.Method+" data")
			if !strings.HasPrefix(r.Header.Get("Accept"), "application/json") {
				http.Error(w, "want json", http.StatusNotAcceptable)
				return
			}
			_, _ = w.Write([]byte(`{"s":[{"text":"line&nbsp;"}]}`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		c := New(srv.Client(), srv.URL+"/", nil)

		Convey("Episode fetches metadata before content", func() {
			ep, err := c.Episode(context.Background(), 42)
			So(err, ShouldBeNil)
			So(order, ShouldResemble, []string{"GET viewer", "POST data"})
			So(ep.ID, ShouldEqual, 42)
			So(ep.WorkTitle, ShouldEqual, "Example")
			So(ep.Segments, ShouldHaveLength, 1)
		})

		Convey("An unknown episode surfaces the HTTP status", func() {
			_, err := c.Episode(context.Background(), 7)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "HTTP 404")
		})
	})
}
