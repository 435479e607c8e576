package eventio

import (
	"archive/zip"
	"compress/gzip"
	"compress/zlib"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestOpenPlainCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	content := "CD4,CD8,cluster\n1.5,0.2,t\n0.3,7.0,b\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rdr, closer, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	rows, err := rdr.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || !reflect.DeepEqual(rows[0], []string{"CD4", "CD8", "cluster"}) {
		t.Errorf("unexpected rows: %v", rows)
	}
}

func TestOpenDetectsTabs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.tsv")
	content := "CD4\tCD8\tcluster\n1.5\t0.2\tt\n0.3\t7.0\tb\n2.5\t0.1\tt\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rdr, closer, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	rows, err := rdr.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 || len(rows[0]) != 3 {
		t.Errorf("tab delimiter not detected: %v", rows)
	}
}

func TestOpenGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte("CD4,cluster\n1.5,t\n0.3,b\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	rdr, closer, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	rows, err := rdr.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[1][0] != "1.5" {
		t.Errorf("unexpected rows from gzipped input: %v", rows)
	}
}

func TestOpenZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	entry, err := zw.Create("events.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := entry.Write([]byte("CD4,cluster\n1.5,t\n0.3,b\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	rdr, closer, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	rows, err := rdr.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[1][0] != "1.5" {
		t.Errorf("unexpected rows from zipped input: %v", rows)
	}
}

func TestOpenTruncatedZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truncated.zip")
	// A local-file-header signature with nothing behind it: the archive has
	// no readable entry. Must fail cleanly, not crash.
	if err := os.WriteFile(path, []byte{0x50, 0x4b, 0x03, 0x04}, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := Open(path); err == nil {
		t.Error("expected an error for a zip archive with no readable entry")
	}
}

func TestOpenZlib(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv.zz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zlib.NewWriter(f)
	if _, err := zw.Write([]byte("CD4,cluster\n1.5,t\n0.3,b\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	rdr, closer, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	rows, err := rdr.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[2][1] != "b" {
		t.Errorf("unexpected rows from zlib input: %v", rows)
	}
}

func TestOpenShortFiles(t *testing.T) {
	// Files shorter than the longest magic signature, including empty ones,
	// are plain uncompressed input.
	for _, v := range []struct {
		name    string
		content string
		rows    int
	}{
		{"empty", "", 0},
		{"below signature length", "a,b\n", 1},
	} {
		path := filepath.Join(t.TempDir(), "short.csv")
		if err := os.WriteFile(path, []byte(v.content), 0o644); err != nil {
			t.Fatal(err)
		}

		rdr, closer, err := Open(path)
		if err != nil {
			t.Fatalf("%s: %v", v.name, err)
		}
		rows, err := rdr.ReadAll()
		closer.Close()
		if err != nil {
			t.Fatalf("%s: %v", v.name, err)
		}
		if len(rows) != v.rows {
			t.Errorf("%s: got %d rows, want %d", v.name, len(rows), v.rows)
		}
	}
}
