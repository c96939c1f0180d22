package storage

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// testDB runs the shared suite against a DB implementation.
func testDB(t *testing.T, db DB) {
	t.Helper()

	t.Run("PutAndGet", func(t *testing.T) {
		if err := db.Put([]byte("key1"), []byte("value1")); err != nil {
			t.Fatalf("Put() error: %v", err)
		}
		val, err := db.Get([]byte("key1"))
		if err != nil {
			t.Fatalf("Get() error: %v", err)
		}
		if !bytes.Equal(val, []byte("value1")) {
			t.Errorf("Get() = %q, want %q", val, "value1")
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := db.Get([]byte("nonexistent"))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Get() missing key error = %v, want ErrNotFound", err)
		}
	})

	t.Run("Has", func(t *testing.T) {
		require.NoError(t, db.Put([]byte("exists"), []byte("yes")))

		ok, err := db.Has([]byte("exists"))
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = db.Has([]byte("missing"))
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, db.Put([]byte("ow"), []byte("first")))
		require.NoError(t, db.Put([]byte("ow"), []byte("second")))

		val, err := db.Get([]byte("ow"))
		require.NoError(t, err)
		require.Equal(t, []byte("second"), val)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, db.Put([]byte("del"), []byte("value")))
		require.NoError(t, db.Delete([]byte("del")))

		_, err := db.Get([]byte("del"))
		require.ErrorIs(t, err, ErrNotFound)

		// Deleting twice is fine.
		require.NoError(t, db.Delete([]byte("del")))
	})

	t.Run("ValueIsCopied", func(t *testing.T) {
		v := []byte("orig")
		require.NoError(t, db.Put([]byte("copy"), v))
		v[0] = 'X'

		got, err := db.Get([]byte("copy"))
		require.NoError(t, err)
		require.Equal(t, "orig", string(got))
	})

	t.Run("BinaryData", func(t *testing.T) {
		key := []byte{0x00, 0x01, 0xFF}
		value := make([]byte, 256)
		for i := range value {
			value[i] = byte(i)
		}
		require.NoError(t, db.Put(key, value))
		got, err := db.Get(key)
		require.NoError(t, err)
		require.Equal(t, value, got)
	})

	t.Run("ForEachOrdered", func(t *testing.T) {
		for _, k := range []string{"seq/03", "seq/01", "seq/02", "other/x"} {
			require.NoError(t, db.Put([]byte(k), []byte(k)))
		}

		var keys []string
		err := db.ForEach([]byte("seq/"), func(key, value []byte) error {
			require.Equal(t, key, value)
			keys = append(keys, string(key))
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, []string{"seq/01", "seq/02", "seq/03"}, keys)
	})

	t.Run("ForEachStops", func(t *testing.T) {
		stop := errors.New("stop")
		count := 0
		err := db.ForEach([]byte("seq/"), func(_, _ []byte) error {
			count++
			return stop
		})
		require.ErrorIs(t, err, stop)
		require.Equal(t, 1, count)
	})

	t.Run("Batch", func(t *testing.T) {
		batcher, ok := db.(Batcher)
		require.True(t, ok, "store should support batches")

		require.NoError(t, db.Put([]byte("b/old"), []byte("x")))
		b := batcher.NewBatch()
		require.NoError(t, b.Put([]byte("b/1"), []byte("one")))
		require.NoError(t, b.Put([]byte("b/2"), []byte("two")))
		require.NoError(t, b.Delete([]byte("b/old")))

		// Nothing visible before commit.
		ok, err := db.Has([]byte("b/1"))
		require.NoError(t, err)
		require.False(t, ok)

		require.NoError(t, b.Commit())

		got, err := db.Get([]byte("b/2"))
		require.NoError(t, err)
		require.Equal(t, "two", string(got))
		ok, err = db.Has([]byte("b/old"))
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestMemoryDB(t *testing.T) {
	db := NewMemory()
	defer db.Close()
	testDB(t, db)
}

func TestBadgerDB(t *testing.T) {
	db, err := NewBadger(t.TempDir())
	if err != nil {
		t.Fatalf("NewBadger() error: %v", err)
	}
	defer db.Close()
	testDB(t, db)
}

func TestBadgerDB_InMemory(t *testing.T) {
	db, err := NewBadgerInMemory()
	require.NoError(t, err)
	defer db.Close()
	testDB(t, db)
}

func TestBadgerDB_Persistence(t *testing.T) {
	dir := t.TempDir()

	db1, err := NewBadger(dir)
	require.NoError(t, err)
	require.NoError(t, db1.Put([]byte("persist"), []byte("data")))
	require.NoError(t, db1.Close())

	db2, err := NewBadger(dir)
	require.NoError(t, err)
	defer db2.Close()

	val, err := db2.Get([]byte("persist"))
	require.NoError(t, err)
	require.Equal(t, "data", string(val))
}

func TestBadgerDB_Locked(t *testing.T) {
	dir := t.TempDir()
	db, err := NewBadger(dir)
	require.NoError(t, err)
	defer db.Close()

	_, err = NewBadger(dir)
	require.Error(t, err)
}

func TestNewBatch(t *testing.T) {
	for name, db := range map[string]DB{
		"atomic":   NewMemory(),
		"fallback": plainDB{NewMemory()},
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, db.Put([]byte("old"), []byte("x")))

			b := NewBatch(db)
			require.NoError(t, b.Put([]byte("new"), []byte("y")))
			require.NoError(t, b.Delete([]byte("old")))

			ok, err := db.Has([]byte("new"))
			require.NoError(t, err)
			require.False(t, ok, "writes wait for Commit")

			require.NoError(t, b.Commit())
			got, err := db.Get([]byte("new"))
			require.NoError(t, err)
			require.Equal(t, "y", string(got))
			ok, err = db.Has([]byte("old"))
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}
