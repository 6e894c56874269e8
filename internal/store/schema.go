package store

// Amounts are stored as decimal TEXT so cached balances round-trip exactly.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS file_tracker (
    file_path            TEXT PRIMARY KEY,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    parse_errors         INTEGER NOT NULL DEFAULT 0,
    parsed_at            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    file_path            TEXT NOT NULL REFERENCES file_tracker(file_path) ON DELETE CASCADE,
    id                   TEXT NOT NULL,
    account              TEXT NOT NULL,
    location             TEXT NOT NULL DEFAULT '',
    amount               TEXT NOT NULL,
    balance              TEXT NOT NULL,
    posted_at            TEXT NOT NULL,
    PRIMARY KEY (file_path, id)
);

CREATE INDEX IF NOT EXISTS idx_transactions_posted ON transactions(posted_at);
CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account);
`
