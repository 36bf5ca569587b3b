package providers

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFilter(t *testing.T) {
	Convey("Given ten episode ids", t, func() {
		ids := []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}

		Convey("No selection returns everything", func() {
			So(Filter(ids, "", ""), ShouldResemble, ids)
		})

		Convey("A range is 1-based and inclusive", func() {
			So(Filter(ids, "2-4", ""), ShouldResemble, []int{11, 12, 13})
		})

		Convey("A range wins over a list", func() {
			So(Filter(ids, "1-1", "5,6"), ShouldResemble, []int{10})
		})

		Convey("Malformed or out of bounds ranges select nothing", func() {
			So(Filter(ids, "4-2", ""), ShouldBeEmpty)
			So(Filter(ids, "0-3", ""), ShouldBeEmpty)
			So(Filter(ids, "1-11", ""), ShouldBeEmpty)
			So(Filter(ids, "abc", ""), ShouldBeEmpty)
		})

		Convey("A list keeps its own order and skips junk", func() {
			So(Filter(ids, "", "3, 1,x,,42,10"), ShouldResemble, []int{12, 10, 19})
		})
	})
}
