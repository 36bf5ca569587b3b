package novelpia

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/brogergvhs/novelpiad/internal/providers"
	. "github.com/smartystreets/goconvey/convey"
)

func listingPage(workID, last int, ids ...int) string {
	var b strings.Builder
	b.WriteString(`<html><head><script>var novel_page = 0; localStorage['novel_page_1'] = '99'; episode_list();</script></head><body>`)
	b.WriteString(`<table class="ep_list">`)
	for _, id := range ids {
		fmt.Fprintf(&b, `<tr><td><i class="icon ion-bookmark" id="bookmark_%d"></i> EP.%d</td></tr>`, id, id)
		b.WriteString(`<tr><td><i class="icon ion-star" id="star_7"></i></td></tr>`)
	}
	b.WriteString(`</table><div class="pagination">`)
	for p := 0; p <= last; p++ {
		fmt.Fprintf(&b, `<div class="page-link" onclick="localStorage['novel_page_%d'] = '%d'; episode_list();">%d</div>`, workID, p, p+1)
	}
	b.WriteString(`</div><footer>page-link noise '42'</footer></body></html>`)

	return b.String()
}

func TestParseTotalPages(t *testing.T) {
	Convey("ParseTotalPages", t, func() {
		Convey("Returns the literal of the last pagination control", func() {
			n, err := ParseTotalPages(93020, listingPage(93020, 3, 111, 222))
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 3)
		})

		Convey("Ignores literals scoped to other works", func() {
			markup := `<div class="page-link" onclick="localStorage['novel_page_5'] = '8'; episode_list();"></div>`
			_, err := ParseTotalPages(93020, markup)
			So(errors.Is(err, providers.ErrUnexpectedMarkup), ShouldBeTrue)
		})

		Convey("Fails without a pagination control", func() {
			_, err := ParseTotalPages(93020, `<html><body><p>maintenance</p></body></html>`)
			So(errors.Is(err, providers.ErrUnexpectedMarkup), ShouldBeTrue)
		})

		Convey("Fails on a non-numeric literal", func() {
			markup := `<div class="page-link" onclick="localStorage['novel_page_93020'] = 'x'; episode_list();"></div>`
			_, err := ParseTotalPages(93020, markup)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "not a number")
		})
	})
}

func TestParseEpisodeIDs(t *testing.T) {
	Convey("ParseEpisodeIDs", t, func() {
		Convey("Returns one id per marker in document order", func() {
			ids, err := ParseEpisodeIDs(listingPage(1, 0, 30, 10, 20))
			So(err, ShouldBeNil)
			So(ids, ShouldResemble, []int{30, 10, 20})
		})

		Convey("Returns an empty list without markers", func() {
			ids, err := ParseEpisodeIDs(listingPage(1, 0))
			So(err, ShouldBeNil)
			So(ids, ShouldBeEmpty)
		})

		Convey("Fails on a malformed marker id", func() {
			_, err := ParseEpisodeIDs(`<i class="icon ion-bookmark" id="bookmark_abc"></i>`)
			So(errors.Is(err, providers.ErrUnexpectedMarkup), ShouldBeTrue)
		})
	})
}

type listingServer struct {
	mu     sync.Mutex
	pages  map[int]string
	served []int
}

func (s *listingServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/proc/episode_list" {
		http.NotFound(w, r)
		return
	}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		http.Error(w, "bad content type", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil || r.PostForm.Get("novel_no") != "93020" {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	page, _ := strconv.Atoi(r.PostForm.Get("page"))

	s.mu.Lock()
	s.served = append(s.served, page)
	s.mu.Unlock()

	markup, ok := s.pages[page]
	if !ok {
		http.NotFound(w, r)
		return
	}
	_, _ = w.Write([]byte(markup))
}

func TestEpisodeIDs(t *testing.T) {
	Convey("Given work 93020 with a pagination literal of 3", t, func() {
		ls := &listingServer{pages: map[int]string{
			0: listingPage(93020, 3, 111, 222),
			1: listingPage(93020, 3, 333),
			2: listingPage(93020, 3, 444, 555),
			3: listingPage(93020, 3, 666),
		}}
		srv := httptest.NewServer(ls)
		defer srv.Close()

		c := New(srv.Client(), srv.URL, nil)

		Convey("TotalPages returns 3", func() {
			n, first, err := c.TotalPages(context.Background(), 93020)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 3)
			So(first, ShouldContainSubstring, "bookmark_111")
		})

		Convey("EpisodeIDs concatenates pages 0..3 in order", func() {
			ids, err := c.EpisodeIDs(context.Background(), 93020)
			So(err, ShouldBeNil)
			So(ids, ShouldResemble, []int{111, 222, 333, 444, 555, 666})
			So(ls.served, ShouldResemble, []int{0, 1, 2, 3})
		})

		Convey("Ids repeated on a later page are kept once", func() {
			ls.pages[3] = listingPage(93020, 3, 222, 666)
			ids, err := c.EpisodeIDs(context.Background(), 93020)
			So(err, ShouldBeNil)
			So(ids, ShouldResemble, []int{111, 222, 333, 444, 555, 666})
		})

		Convey("A failing page aborts the walk", func() {
			delete(ls.pages, 2)
			_, err := c.EpisodeIDs(context.Background(), 93020)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "HTTP 404")
		})
	})
}
