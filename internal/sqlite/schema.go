package sqlite

// Schema DDL. The kv table holds one value per key; leadboard stores the whole
// lead collection under a single key.
const (
	createKV = `CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// schemaStatements lists the DDL executed on Attach, in order.
var schemaStatements = []string{
	createKV,
}
