package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHuman(t *testing.T) {
	Convey("Human", t, func() {
		So(Human(512), ShouldEqual, "512 B")
		So(Human(2048), ShouldEqual, "2.00 KB")
		So(Human(3<<20), ShouldEqual, "3.00 MB")
		So(Human(5<<30), ShouldEqual, "5.00 GB")
	})
}

func TestHumanLarge(t *testing.T) {
	Convey("Human tops out at terabytes", t, func() {
		So(Human(2<<40), ShouldEqual, "2.00 TB")
		So(Human(2048<<40), ShouldEqual, "2048.00 TB")
	})
}
