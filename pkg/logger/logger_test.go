package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestInit(t *testing.T) {
	convey.Convey("Given an initialized logger", t, func() {
		err := Init()
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then Get returns it", func() {
			convey.So(Get(), convey.ShouldNotBeNil)
		})

		convey.Convey("Then logging does not panic", func() {
			ctx := context.Background()
			log := Get()
			convey.So(func() {
				log.Info(ctx, "hello", String("k", "v"), Int("n", 1), Float64("f", 1.5), Any("a", []int{1}))
			}, convey.ShouldNotPanic)
		})

		convey.Convey("Then Named returns a scoped logger", func() {
			convey.So(Named("sub"), convey.ShouldNotBeNil)
		})

		convey.Convey("Then Sync is a no-op", func() {
			convey.So(Sync(), convey.ShouldBeNil)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	convey.Convey("Given level strings", t, func() {
		convey.So(Init(), convey.ShouldBeNil)

		convey.Convey("Then recognized levels parse", func() {
			for in, want := range map[string]slog.Level{
				"debug":   slog.LevelDebug,
				"info":    slog.LevelInfo,
				"":        slog.LevelInfo,
				"WARN":    slog.LevelWarn,
				"warning": slog.LevelWarn,
				" error ": slog.LevelError,
			} {
				convey.So(SetLevelString(in), convey.ShouldBeNil)
				convey.So(levelVar.Level(), convey.ShouldEqual, want)
			}
		})

		convey.Convey("Then unknown levels are rejected", func() {
			convey.So(SetLevelString("verbose"), convey.ShouldNotBeNil)
		})
	})
}

func TestFieldConstructors(t *testing.T) {
	convey.Convey("Given field constructors", t, func() {
		convey.So(String("k", "v"), convey.ShouldResemble, Field{Key: "k", Value: "v"})
		convey.So(Int("n", 3).Value, convey.ShouldEqual, 3)
		convey.So(Error(nil).Key, convey.ShouldEqual, "error")
	})
}
