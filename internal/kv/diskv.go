package kv

import (
	"github.com/peterbourgon/diskv/v3"
)

// Diskv stores every key as a flat file under a base directory.
type Diskv struct {
	d *diskv.Diskv
}

func NewDiskv(basePath string) *Diskv {
	return &Diskv{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

func (b *Diskv) Read(key string) ([]byte, error) {
	if !b.d.Has(key) {
		return nil, ErrNotFound
	}
	return b.d.Read(key)
}

func (b *Diskv) Write(key string, val []byte) error {
	return b.d.Write(key, val)
}

func (b *Diskv) Erase(key string) error {
	if !b.d.Has(key) {
		return nil
	}
	return b.d.Erase(key)
}
