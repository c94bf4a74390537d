package cache

import "errors"

// ErrCacheDirUnusable is the only failure a store can raise, and only at
// construction of the file-backed variant. The in-memory store cannot fail.
var ErrCacheDirUnusable = errors.New("cache directory unusable")
