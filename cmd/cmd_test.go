package cmd

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRenderTable(t *testing.T) {
	Convey("renderTable lays out every row under the header", t, func() {
		out := renderTable([]string{"#", "EPISODE ID"}, [][]string{
			{"1", "111"},
			{"2", "222"},
		})

		So(out, ShouldContainSubstring, "EPISODE ID")
		So(out, ShouldContainSubstring, "111")
		So(out, ShouldContainSubstring, "222")
		So(strings.Index(out, "111"), ShouldBeLessThan, strings.Index(out, "222"))
	})
}

func TestEditor(t *testing.T) {
	Convey("editor prefers VISUAL over EDITOR", t, func() {
		t.Setenv("VISUAL", "")
		t.Setenv("EDITOR", "nano")
		So(editor(), ShouldEqual, "nano")

		t.Setenv("VISUAL", "code -w")
		So(editor(), ShouldEqual, "code -w")
	})
}
