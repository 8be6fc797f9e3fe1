package encoding

import (
	"hash"
	"sync"

	"github.com/cespare/xxhash"
)

type hashPoolObj struct {
	hash hash.Hash64
}

var xxHashPool = sync.Pool{
	New: func() any { return &hashPoolObj{hash: xxhash.New()} },
}

func xxHashPoolGet() *hashPoolObj {
	obj := xxHashPool.Get().(*hashPoolObj)
	obj.hash.Reset()
	return obj
}

func xxHashPoolPut(obj *hashPoolObj) {
	xxHashPool.Put(obj)
}
