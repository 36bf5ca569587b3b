package ui

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Logger", t, func() {
		var buf bytes.Buffer

		Convey("Hides debug entries unless enabled", func() {
			log := NewLoggerTo(&buf, false)
			log.Debugf("hidden %d\n", 1)
			log.Infof("shown %d\n", 2)

			So(buf.String(), ShouldNotContainSubstring, "hidden")
			So(buf.String(), ShouldContainSubstring, "shown 2")
		})

		Convey("Emits debug entries when enabled", func() {
			log := NewLoggerTo(&buf, true)
			log.Debugf("probe %s", "x")

			So(buf.String(), ShouldContainSubstring, "probe x")
			So(buf.String(), ShouldContainSubstring, "debug")
		})
	})
}
