package db

import (
	"database/sql"
	"fmt"
)

// schema is the full SQLite schema. Money columns are TEXT holding exact
// decimal strings; mod_ids is a JSON array.
const schema = `
CREATE TABLE IF NOT EXISTS characters (
    id     INTEGER PRIMARY KEY,
    name   TEXT NOT NULL,
    active INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS items (
    id           INTEGER PRIMARY KEY,
    name         TEXT NOT NULL,
    type         TEXT NOT NULL DEFAULT '',
    subtype      TEXT NOT NULL DEFAULT '',
    value        TEXT,
    caster_level INTEGER
);

CREATE TABLE IF NOT EXISTS mods (
    id           INTEGER PRIMARY KEY,
    name         TEXT NOT NULL,
    caster_level INTEGER,
    plus         INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS loot (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    session_date DATETIME NOT NULL,
    name         TEXT NOT NULL,
    quantity     INTEGER NOT NULL CHECK (quantity >= 0),
    status       TEXT NOT NULL CHECK (status IN ('Unprocessed', 'Pending Sale', 'Kept Party', 'Kept Self', 'Trashed', 'Sold')),
    item_id      INTEGER REFERENCES items(id),
    mod_ids      TEXT NOT NULL DEFAULT '[]',
    charges      INTEGER,
    value        TEXT,
    unidentified INTEGER NOT NULL DEFAULT 0,
    masterwork   INTEGER NOT NULL DEFAULT 0,
    type         TEXT NOT NULL DEFAULT '',
    size         TEXT NOT NULL DEFAULT '',
    cursed       INTEGER NOT NULL DEFAULT 0,
    notes        TEXT NOT NULL DEFAULT '',
    who_has      INTEGER REFERENCES characters(id),
    who_updated  TEXT NOT NULL DEFAULT '',
    last_update  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_loot_status ON loot(status);
CREATE INDEX IF NOT EXISTS idx_loot_item_id ON loot(item_id);

CREATE TABLE IF NOT EXISTS gold (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    session_date     DATETIME NOT NULL,
    transaction_type TEXT NOT NULL CHECK (transaction_type IN ('Deposit', 'Withdrawal', 'Purchase', 'Sale', 'Balance', 'Party Loot Purchase')),
    platinum         TEXT NOT NULL DEFAULT '0',
    gold             TEXT NOT NULL DEFAULT '0',
    silver           TEXT NOT NULL DEFAULT '0',
    copper           TEXT NOT NULL DEFAULT '0',
    notes            TEXT NOT NULL DEFAULT '',
    created_by       TEXT NOT NULL DEFAULT '',
    created_at       DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_gold_session_date ON gold(session_date, id);

CREATE TABLE IF NOT EXISTS consumable_use (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    loot_id      INTEGER NOT NULL REFERENCES loot(id),
    character_id INTEGER REFERENCES characters(id),
    used_by      TEXT NOT NULL DEFAULT '',
    used_at      DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS sold (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    loot_id  INTEGER NOT NULL REFERENCES loot(id),
    sold_for TEXT NOT NULL,
    sold_on  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS identify (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    loot_id      INTEGER NOT NULL REFERENCES loot(id),
    character_id INTEGER REFERENCES characters(id),
    game_date    TEXT NOT NULL,
    roll         INTEGER NOT NULL,
    success      INTEGER NOT NULL,
    created_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_identify_daily ON identify(loot_id, character_id, game_date);

CREATE TABLE IF NOT EXISTS game_calendar (
    id        INTEGER PRIMARY KEY CHECK (id = 1),
    game_date TEXT NOT NULL
);
`

// EnsureSchema creates all tables if they do not exist.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
