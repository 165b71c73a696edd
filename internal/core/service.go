package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/laptops/internal/config"
	"github.com/JonMunkholm/laptops/internal/grid"
	"github.com/JonMunkholm/laptops/internal/logging"
)

// DefaultLoadTimeout is the maximum duration for parsing one file.
var DefaultLoadTimeout = time.Minute

// Service wires codecs, the record store and the pager together.
// Both application shells drive the catalog exclusively through it.
type Service struct {
	store       *Store
	limiter     *LoadLimiter
	loadTimeout time.Duration
	exportName  string

	mu    sync.Mutex // guards pager
	pager *grid.Pager
}

// NewService creates a Service from configuration.
func NewService(cfg *config.Config) (*Service, error) {
	mode, err := ParseValidationMode(cfg.Catalog.Validation)
	if err != nil {
		return nil, fmt.Errorf("catalog validation: %w", err)
	}

	timeout := cfg.Load.Timeout
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}

	exportName := strings.TrimSpace(cfg.Catalog.ExportName)
	if exportName == "" {
		exportName = "t2_katalog"
	}

	return &Service{
		store:       NewStore(NewValidator(mode)),
		limiter:     NewLoadLimiter(cfg.Load.MaxConcurrent, cfg.Load.MaxWaitTime),
		loadTimeout: timeout,
		exportName:  exportName,
		pager:       grid.NewPager(cfg.Catalog.PageSize),
	}, nil
}

// Store exposes the underlying record store (read access for tests and tools).
func (s *Service) Store() *Store {
	return s.store
}

// LoadFrom parses r with the codec for format and installs the result.
//
// The ticket is issued before parsing starts, so when two loads overlap the
// one started last wins and the other returns ErrStaleLoad. A parse failure
// leaves the current collection untouched.
func (s *Service) LoadFrom(ctx context.Context, format, fileName string, r io.Reader) (*LoadResult, error) {
	codec, err := s.resolveCodec(format, fileName)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	loadID := uuid.NewString()
	logger := logging.WithFields(ctx,
		"load_id", loadID,
		"format", codec.Format(),
		"file", fileName,
	)
	logger.Info("load started")

	ticket := s.store.BeginLoad()

	src := NewSourceReader(r)
	records, finished, err := s.parse(ctx, codec, src)
	defer s.releaseWhenDone(finished)
	if err != nil {
		logger.Warn("load failed", "error", err)
		return nil, err
	}

	change, err := s.store.Commit(ticket, records)
	if err != nil {
		logger.Info("load discarded", "error", err)
		return nil, err
	}
	s.refresh(change)

	invalid := 0
	v := s.store.Validator()
	for _, rec := range records {
		if len(v.ValidateRecord(rec)) > 0 {
			invalid++
		}
	}

	result := &LoadResult{
		LoadID:        loadID,
		Format:        codec.Format(),
		FileName:      fileName,
		Rows:          change.Rows,
		InvalidRows:   invalid,
		ReplacedBytes: src.Replaced(),
		Generation:    change.Generation,
		Duration:      time.Since(start),
	}
	if result.ReplacedBytes > 0 {
		logger.Warn("source contained invalid UTF-8", "replaced_bytes", result.ReplacedBytes)
	}
	logger.Info("load completed",
		"rows", result.Rows,
		"invalid_rows", invalid,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

func (s *Service) resolveCodec(format, fileName string) (Codec, error) {
	if format != "" {
		return CodecFor(format)
	}
	return CodecForFile(fileName)
}

// parse runs the codec under the load timeout. A panic inside a codec is
// reported as a malformed source rather than taking the process down.
// The returned channel is closed when the codec goroutine returns, which after a timeout
// can be later than parse itself.
func (s *Service) parse(ctx context.Context, codec Codec, r io.Reader) ([]Record, <-chan struct{}, error) {
	ctx, cancel := context.WithTimeout(ctx, s.loadTimeout)
	defer cancel()

	type parsed struct {
		records []Record
		err     error
	}
	done := make(chan parsed, 1)
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		defer func() {
			if p := recover(); p != nil {
				slog.Error("panic in codec", "format", codec.Format(), "panic", p)
				done <- parsed{err: fmt.Errorf("%w: internal error: %v", ErrParseMalformed, p)}
			}
		}()
		records, err := codec.Parse(r)
		done <- parsed{records, err}
	}()

	select {
	case <-ctx.Done():
		return nil, exited, fmt.Errorf("parse %s: %w", codec.Format(), ctx.Err())
	case p := <-done:
		<-exited
		if p.err != nil {
			return nil, exited, fmt.Errorf("parse %s: %w", codec.Format(), p.err)
		}
		return p.records, exited, nil
	}
}

// releaseWhenDone frees the load slot once the codec goroutine has returned.
// A timed out load keeps its slot while the codec is still reading.
func (s *Service) releaseWhenDone(finished <-chan struct{}) {
	select {
	case <-finished:
		s.limiter.Release()
	default:
		go func() {
			<-finished
			s.limiter.Release()
		}()
	}
}

// Load installs records directly, bypassing codecs.
func (s *Service) Load(records []Record) Change {
	change := s.store.Load(records)
	s.refresh(change)
	return change
}

// UpdateField applies a single cell edit addressed by accessor key.
func (s *Service) UpdateField(ctx context.Context, row int, key, value string) (*UpdateResult, error) {
	field, ok := ParseField(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, key)
	}

	change, old, err := s.store.UpdateField(row, field, value)
	if err != nil {
		logging.FromContext(ctx).Info("edit rejected",
			"row", row,
			"field", key,
			"value", value,
			"reason", err.Error(),
		)
		return nil, err
	}
	s.refresh(change)

	client := ClientFromContext(ctx)
	logging.FromContext(ctx).Info("edit accepted",
		"row", row,
		"field", key,
		"old_value", old,
		"new_value", value,
		"ip", client.IP,
	)

	return &UpdateResult{Row: row, Field: key, OldValue: old, NewValue: value}, nil
}

// Export serializes the whole collection with the codec for format.
// Nothing is written to w when the collection is empty.
func (s *Service) Export(ctx context.Context, format string, w io.Writer) error {
	codec, err := CodecFor(format)
	if err != nil {
		return err
	}

	records := s.store.Snapshot()
	if len(records) == 0 {
		return ErrExportOnEmpty
	}

	if err := codec.Serialize(w, records); err != nil {
		return fmt.Errorf("serialize %s: %w", codec.Format(), err)
	}

	logging.FromContext(ctx).Info("export completed",
		"format", codec.Format(),
		"rows", len(records),
	)
	return nil
}

// ExportFileName returns the download name for format, e.g. "t2_katalog.txt".
func (s *Service) ExportFileName(format string) (string, error) {
	codec, err := CodecFor(format)
	if err != nil {
		return "", err
	}
	return s.exportName + codec.Extension(), nil
}

// Navigation actions accepted by Navigate.
const (
	NavFirst = "first"
	NavPrev  = "prev"
	NavNext  = "next"
	NavLast  = "last"
	NavGoto  = "goto"
	NavSize  = "size"
)

// ErrInvalidNavigation is returned for an unsupported pager action or page size.
var ErrInvalidNavigation = errors.New("invalid page action")

// Navigate moves the pager. arg is the 1-based page for NavGoto and the page
// size for NavSize; it is ignored otherwise.
func (s *Service) Navigate(action string, arg int) error {
	total := s.store.Len()

	s.mu.Lock()
	defer s.mu.Unlock()

	switch action {
	case NavFirst:
		s.pager.First()
	case NavPrev:
		s.pager.Prev()
	case NavNext:
		s.pager.Next(total)
	case NavLast:
		s.pager.Last(total)
	case NavGoto:
		s.pager.Goto(arg, total)
	case NavSize:
		if err := s.pager.SetSize(arg, total); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidNavigation, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidNavigation, action)
	}
	return nil
}

// Page returns the rows of the current page with their absolute indexes.
func (s *Service) Page() PageView {
	total := s.store.Len()

	s.mu.Lock()
	start, end := s.pager.Window(total)
	state := s.pager.State(total)
	s.mu.Unlock()

	records := s.store.Slice(start, end)
	rows := make([]PageRow, len(records))
	for i, rec := range records {
		rows[i] = PageRow{Row: start + i, Record: rec}
	}
	return PageView{Rows: rows, State: state}
}

func (s *Service) refresh(c Change) {
	s.mu.Lock()
	s.pager.Refresh(c.Rows, c.Mode)
	s.mu.Unlock()
}

// Status summarizes the catalog for monitoring.
type Status struct {
	Rows       int               `json:"rows"`
	Generation string            `json:"generation"`
	Validation string            `json:"validation"`
	Formats    []string          `json:"formats"`
	Loads      LoadLimiterStatus `json:"loads"`
}

// Status returns the current catalog status.
func (s *Service) Status() Status {
	return Status{
		Rows:       s.store.Len(),
		Generation: s.store.Generation(),
		Validation: s.store.Validator().Mode.String(),
		Formats:    Formats(),
		Loads:      s.limiter.Status(),
	}
}

// WaitForLoads blocks until in-flight loads finish or ctx is done.
func (s *Service) WaitForLoads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
