package atomicfile_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/podium/internal/adapters/storage/atomicfile"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWriteRead(t *testing.T) {
	Convey("Given a target path in a fresh directory", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "leaderboard.json")

		Convey("When writing and reading back", func() {
			err := atomicfile.Write(path, []byte("first"))
			So(err, ShouldBeNil)

			b, err := atomicfile.Read(path)

			Convey("Then the content round-trips", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldEqual, "first")
			})
		})

		Convey("When overwriting an existing file", func() {
			So(atomicfile.Write(path, []byte("first")), ShouldBeNil)
			So(atomicfile.Write(path, []byte("second, longer content")), ShouldBeNil)

			b, err := atomicfile.Read(path)

			Convey("Then only the new content is visible", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldEqual, "second, longer content")
			})
		})

		Convey("When writing, no temp file survives", func() {
			So(atomicfile.Write(path, []byte("data")), ShouldBeNil)

			entries, err := os.ReadDir(dir)
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 1)
			So(entries[0].Name(), ShouldEqual, "leaderboard.json")
		})

		Convey("When reading a missing file", func() {
			_, err := atomicfile.Read(filepath.Join(dir, "absent.json"))

			Convey("Then the not-found sentinel is returned", func() {
				So(errors.Is(err, atomicfile.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When the target directory does not exist", func() {
			err := atomicfile.Write(filepath.Join(dir, "missing", "x.json"), []byte("data"))

			Convey("Then the write reports the failure", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
