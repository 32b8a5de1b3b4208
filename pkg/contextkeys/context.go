package contextkeys

type contextKey string

// DBContextKey carries the request-scoped *gorm.DB. Tests and transactional
// flows may place their own handle under this key; the middleware falls back
// to the shared pool otherwise.
const DBContextKey = contextKey("db")
