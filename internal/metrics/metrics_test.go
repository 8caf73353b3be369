package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager()

			Convey("Then it should own a private registry", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Registry(), ShouldNotBeNil)
				So(manager.Registry(), ShouldNotEqual, prometheus.DefaultRegisterer)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("scene"),
				WithHistogramBuckets([]float64{0.1, 1}),
				WithPrometheusRegistry(registry),
			)
			manager.SceneBuilt()

			Convey("Then metrics should use the custom names and registry", func() {
				So(manager.Registry(), ShouldEqual, registry)
				count, err := testutil.GatherAndCount(registry, "test_scene_scenes_built_total")
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 1)
			})
		})

		Convey("When two managers are created", func() {
			Convey("Then they should not collide on registration", func() {
				So(func() {
					NewManager()
					NewManager()
				}, ShouldNotPanic)
			})
		})
	})
}

func TestLifecycleCounters(t *testing.T) {
	Convey("Given a manager", t, func() {
		m := NewManager()

		Convey("When two scenes are built and the first is disposed", func() {
			m.SceneBuilt()
			m.ListenersAttached(3)
			m.SceneDisposed()
			m.ListenersDetached(3)
			m.SceneBuilt()
			m.ListenersAttached(3)

			Convey("Then one render loop stays active", func() {
				So(testutil.ToFloat64(m.scenesBuilt), ShouldEqual, 2)
				So(testutil.ToFloat64(m.scenesDisposed), ShouldEqual, 1)
				So(testutil.ToFloat64(m.activeRenderLoops), ShouldEqual, 1)
			})

			Convey("And live listeners equal attached minus detached", func() {
				live := testutil.ToFloat64(m.listenersAttached) - testutil.ToFloat64(m.listenersDetached)
				So(live, ShouldEqual, 3)
			})
		})

		Convey("When frames, hovers and mesh builds are recorded", func() {
			m.Frame()
			m.Frame()
			m.HoverChanged()
			m.ObserveMeshBuild(3 * time.Millisecond)
			m.FetchFailed("not_found")

			Convey("Then Values reports them by short name", func() {
				values, err := m.Values()
				So(err, ShouldBeNil)
				So(values["frames_total"], ShouldEqual, 2)
				So(values["hover_changes_total"], ShouldEqual, 1)
				So(values["mesh_build_seconds"], ShouldEqual, 1)
				So(values["fetch_errors_total{not_found}"], ShouldEqual, 1)
			})

			Convey("And Summary renders a sorted line", func() {
				s := m.Summary()
				So(s, ShouldContainSubstring, "frames_total=2")
				So(strings.Index(s, "active_render_loops"), ShouldBeLessThan, strings.Index(s, "frames_total"))
			})
		})
	})
}

func TestDisabledAndNilManager(t *testing.T) {
	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithMetricsEnabled(false))

		Convey("Then recording does nothing", func() {
			m.SceneBuilt()
			m.Frame()
			So(testutil.ToFloat64(m.scenesBuilt), ShouldEqual, 0)
			So(testutil.ToFloat64(m.frames), ShouldEqual, 0)
		})
	})

	Convey("Given a nil manager", t, func() {
		var m *Manager

		Convey("Then every call is safe", func() {
			So(func() {
				m.SceneBuilt()
				m.SceneDisposed()
				m.ListenersAttached(1)
				m.ListenersDetached(1)
				m.ObserveMeshBuild(time.Second)
				m.Frame()
				m.HoverChanged()
				m.FetchFailed("x")
				_ = m.Summary()
			}, ShouldNotPanic)
			So(m.Registry(), ShouldBeNil)
		})
	})
}
