package storage

const schemaSQL = `
-- One row per fetch attempt, accepted or not
CREATE TABLE IF NOT EXISTS fetches (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL,
    depth INTEGER NOT NULL,
    status_code INTEGER,
    content_type TEXT,
    ttfb_ms INTEGER,
    download_time_ms INTEGER,
    attempts INTEGER,
    fetched_at DATETIME NOT NULL,
    accepted INTEGER NOT NULL DEFAULT 0,
    error TEXT
);

CREATE INDEX IF NOT EXISTS idx_fetches_url ON fetches(url);
CREATE INDEX IF NOT EXISTS idx_fetches_accepted ON fetches(accepted);
CREATE INDEX IF NOT EXISTS idx_fetches_fetched_at ON fetches(fetched_at);
`
