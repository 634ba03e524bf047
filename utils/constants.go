// File: utils/constants.go
package utils

import "time"

// IdempotencyCachePrefix is the prefix used for Redis booking idempotency keys.
const IdempotencyCachePrefix = "idem:"

// IdempotencyCacheTTL is the time-to-live for idempotency key entries.
const IdempotencyCacheTTL = 24 * time.Hour
