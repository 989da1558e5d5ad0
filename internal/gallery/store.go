package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"homedesign/internal/infra"
	"homedesign/internal/sqlinline"
	"homedesign/internal/storage"
)

// keyPrefix is the storage subtree all generated images live under.
const keyPrefix = "generated/images"

// SaveRequest carries one generated image plus the request parameters worth
// keeping alongside it.
type SaveRequest struct {
	Data      []byte
	Prompt    string
	Model     string
	Size      string
	Seed      *int
	Style     string
	ColorName string
}

// Handle identifies a persisted design image.
type Handle struct {
	ID         uuid.UUID `json:"id"`
	StorageKey string    `json:"storage_key"`
	MIME       string    `json:"mime"`
	CreatedAt  time.Time `json:"created_at"`
}

// Record is one row of design history.
type Record struct {
	ID         uuid.UUID `json:"id"`
	StorageKey string    `json:"storage_key"`
	Prompt     string    `json:"prompt"`
	Model      string    `json:"model"`
	Size       string    `json:"size,omitempty"`
	Seed       *int64    `json:"seed,omitempty"`
	Style      string    `json:"style,omitempty"`
	ColorName  string    `json:"color_name,omitempty"`
	MIME       string    `json:"mime"`
	Bytes      int64     `json:"bytes"`
	CreatedAt  time.Time `json:"created_at"`
}

// Options configures the gallery store. SQL is optional; without it the store
// persists files only and List serves keys straight from the filesystem.
type Options struct {
	Files  *storage.FileStore
	SQL    infra.SQLExecutor
	Logger *infra.Logger
}

// Store persists generated images to the file store and, when a database is
// configured, records design history rows for listing.
type Store struct {
	files  *storage.FileStore
	sql    infra.SQLExecutor
	logger *infra.Logger
}

// NewStore constructs a gallery store. The file store is required.
func NewStore(opts Options) (*Store, error) {
	if opts.Files == nil {
		return nil, errors.New("gallery: file store is required")
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Store{files: opts.Files, sql: opts.SQL, logger: logger}, nil
}

// Save writes the image bytes under a fresh key and records the history row
// when a database is available. The file write is authoritative: a failed
// history insert is logged but does not fail the save.
func (s *Store) Save(ctx context.Context, req SaveRequest) (*Handle, error) {
	if len(req.Data) == 0 {
		return nil, errors.New("gallery: empty image data")
	}

	mime := http.DetectContentType(req.Data)
	id := uuid.New()
	key := fmt.Sprintf("%s/%s/image.%s", keyPrefix, id, extensionFor(mime))

	storedKey, err := s.files.Write(ctx, key, req.Data)
	if err != nil {
		return nil, fmt.Errorf("gallery: persist image: %w", err)
	}

	handle := &Handle{ID: id, StorageKey: storedKey, MIME: mime, CreatedAt: time.Now().UTC()}

	if s.sql != nil {
		var seed *int64
		if req.Seed != nil {
			v := int64(*req.Seed)
			seed = &v
		}
		row := s.sql.QueryRow(ctx, sqlinline.QInsertDesign,
			id, storedKey, req.Prompt, req.Model, req.Size, seed, req.Style, req.ColorName, mime, int64(len(req.Data)))
		var insertedID uuid.UUID
		if err := row.Scan(&insertedID); err != nil {
			s.logger.Warn().Err(err).Str("storage_key", storedKey).Msg("gallery: history insert failed")
		}
	}

	s.logger.Debug().Str("storage_key", storedKey).Str("mime", mime).Msg("gallery: saved design")
	return handle, nil
}

// List returns design history, newest first. Without a database the listing
// is reconstructed from storage keys and carries no prompt metadata.
func (s *Store) List(ctx context.Context, limit, offset int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if s.sql == nil {
		return s.listFromFiles(ctx, limit, offset)
	}

	rows, err := s.sql.Query(ctx, sqlinline.QListDesigns, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("gallery: list designs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.StorageKey, &rec.Prompt, &rec.Model, &rec.Size, &rec.Seed, &rec.Style, &rec.ColorName, &rec.MIME, &rec.Bytes, &rec.CreatedAt); err != nil {
			s.logger.Warn().Err(err).Msg("gallery: skip unreadable history row")
			continue
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Design returns the record(s) for one design id. Without a database the
// record is reconstructed from the stored keys under the design's directory.
func (s *Store) Design(ctx context.Context, id uuid.UUID) ([]Record, error) {
	if s.sql != nil {
		row := s.sql.QueryRow(ctx, sqlinline.QSelectDesignByID, id)
		var rec Record
		err := row.Scan(&rec.ID, &rec.StorageKey, &rec.Prompt, &rec.Model, &rec.Size, &rec.Seed, &rec.Style, &rec.ColorName, &rec.MIME, &rec.Bytes, &rec.CreatedAt)
		if err == nil {
			return []Record{rec}, nil
		}
		if !infra.IsNoRows(err) {
			return nil, fmt.Errorf("gallery: load design: %w", err)
		}
		// Fall through: file-only saves have no history row.
	}
	keys, err := s.files.List(ctx, fmt.Sprintf("%s/%s", keyPrefix, id))
	if err != nil {
		return nil, fmt.Errorf("gallery: list design keys: %w", err)
	}
	var records []Record
	for _, key := range keys {
		records = append(records, Record{ID: id, StorageKey: key})
	}
	return records, nil
}

// Blob pairs a history record with its stored bytes.
type Blob struct {
	Record Record
	Data   []byte
}

// ReadAll loads the stored bytes for each record, preserving order. Records
// whose file is missing are skipped.
func (s *Store) ReadAll(ctx context.Context, records []Record) ([]Blob, error) {
	out := make([]Blob, 0, len(records))
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := s.files.Read(ctx, rec.StorageKey)
		if err != nil {
			s.logger.Warn().Err(err).Str("storage_key", rec.StorageKey).Msg("gallery: missing stored image")
			continue
		}
		out = append(out, Blob{Record: rec, Data: data})
	}
	return out, nil
}

func (s *Store) listFromFiles(ctx context.Context, limit, offset int) ([]Record, error) {
	keys, err := s.files.List(ctx, keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("gallery: list stored keys: %w", err)
	}
	var records []Record
	for _, key := range keys {
		id, ok := idFromKey(key)
		if !ok {
			continue
		}
		records = append(records, Record{ID: id, StorageKey: key})
	}
	// Without timestamps the walk order is lexical by id; reverse it so the
	// output order is at least stable across calls.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	if offset >= len(records) {
		return nil, nil
	}
	records = records[offset:]
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// idFromKey recovers the design id from "generated/images/<id>/image.<ext>".
func idFromKey(key string) (uuid.UUID, bool) {
	rest, found := strings.CutPrefix(key, keyPrefix+"/")
	if !found {
		return uuid.Nil, false
	}
	end := strings.IndexByte(rest, '/')
	if end < 0 {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(rest[:end])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func extensionFor(mime string) string {
	switch mime {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	default:
		return "bin"
	}
}
