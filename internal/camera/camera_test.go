package camera

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFakeDriverLifecycle(t *testing.T) {
	Convey("given a fake camera driver", t, func() {
		dev, err := GetDriver(Info{Manufacturer: "fake", Model: "any"})
		So(err, ShouldBeNil)
		So(dev.IsConnected(), ShouldBeFalse)

		Convey("starting it reports Connected and a non-empty Capture", func() {
			So(dev.Start(context.Background()), ShouldBeNil)
			So(<-dev.Events(), ShouldEqual, Connected)
			So(dev.IsConnected(), ShouldBeTrue)

			frames := dev.Capture()
			So(frames, ShouldNotBeEmpty)

			Convey("stopping it reports Disconnected and an empty Capture", func() {
				So(dev.Stop(), ShouldBeNil)
				So(<-dev.Events(), ShouldEqual, Disconnected)
				So(dev.Capture(), ShouldBeEmpty)
			})
		})
	})
}

func TestGetDriverUnknown(t *testing.T) {
	Convey("an unregistered manufacturer/model fails", t, func() {
		_, err := GetDriver(Info{Manufacturer: "nonexistent", Model: "xyz"})
		So(err, ShouldEqual, ErrDriverNotFound)
	})
}

func TestGetDriverNormalization(t *testing.T) {
	Convey("manufacturer/model lookup is case- and separator-insensitive", t, func() {
		dev, err := GetDriver(Info{Manufacturer: " Fake ", Model: "ANY"})
		So(err, ShouldBeNil)
		So(dev, ShouldNotBeNil)
	})
}
