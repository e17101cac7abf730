package kv

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/filex"
	"github.com/xujiajun/nutsdb"
)

const defaultNutsBucket = "storefront"

// NutsStore keeps all keys in a single nutsdb B+tree bucket.
type NutsStore struct {
	db     *nutsdb.DB
	bucket string
}

// OpenNuts opens (creating if needed) a nutsdb database in dir.
func OpenNuts(dir string) (*NutsStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}

	opts := nutsdb.DefaultOptions
	opts.Dir = abs
	opts.SegmentSize = 8 * nutsdb.MB

	db, err := nutsdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open nutsdb: %w", err)
	}
	return &NutsStore{db: db, bucket: defaultNutsBucket}, nil
}

// Get treats every lookup error as a missing key: nutsdb reports an absent
// key and a never-written bucket through different errors.
func (n *NutsStore) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := n.db.View(func(tx *nutsdb.Tx) error {
		e, err := tx.Get(n.bucket, []byte(key))
		if err != nil {
			return nil
		}
		value = append([]byte{}, e.Value...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

func (n *NutsStore) Set(_ context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if err := n.db.Update(func(tx *nutsdb.Tx) error {
		return tx.Put(n.bucket, []byte(key), value, nutsdb.Persistent)
	}); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (n *NutsStore) Delete(_ context.Context, key string) error {
	if err := n.db.Update(func(tx *nutsdb.Tx) error {
		if _, err := tx.Get(n.bucket, []byte(key)); err != nil {
			return nil
		}
		return tx.Delete(n.bucket, []byte(key))
	}); err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (n *NutsStore) List(_ context.Context) (map[string][]byte, error) {
	result := make(map[string][]byte)
	err := n.db.View(func(tx *nutsdb.Tx) error {
		entries, err := tx.GetAll(n.bucket)
		if err != nil {
			return nil
		}
		for _, e := range entries {
			result[string(e.Key)] = append([]byte{}, e.Value...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list kv: %w", err)
	}
	return result, nil
}

func (n *NutsStore) ReplaceAll(_ context.Context, data map[string][]byte) error {
	err := n.db.Update(func(tx *nutsdb.Tx) error {
		entries, err := tx.GetAll(n.bucket)
		if err == nil {
			for _, e := range entries {
				if _, ok := data[string(e.Key)]; ok {
					continue
				}
				if err := tx.Delete(n.bucket, e.Key); err != nil {
					return err
				}
			}
		}
		for k, v := range data {
			if v == nil {
				v = []byte{}
			}
			if err := tx.Put(n.bucket, []byte(k), v, nutsdb.Persistent); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace kv: %w", err)
	}
	return nil
}

func (n *NutsStore) Close() error {
	return n.db.Close()
}
