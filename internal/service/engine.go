package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"scholarmatch/internal/catalog"
	"scholarmatch/internal/encoder"
	"scholarmatch/internal/index"
	"scholarmatch/internal/models"
	"scholarmatch/internal/retriever"

	"go.uber.org/zap"
)

// CatalogSource supplies the full catalog. The Postgres repository is the
// production implementation; tests load from in-memory slices.
type CatalogSource interface {
	Kind() models.Kind
	Load(ctx context.Context) ([]models.Record, error)
}

// engineState is one immutable build of catalog + fitted models. Queries
// read a whole state; Rebuild swaps the pointer so readers in flight keep
// a consistent view and no live structure is ever mutated.
type engineState struct {
	store     *catalog.Store
	encoder   *encoder.Encoder
	index     *index.Index
	retriever *retriever.Retriever
	builtAt   time.Time
}

// Engine owns the process-wide read-only recommendation state and its
// lifecycle: build once at startup (or load a persisted snapshot), serve
// queries lock-free, and hot-swap atomically on explicit rebuild.
type Engine struct {
	source     CatalogSource
	components int
	modelPath  string
	logger     *zap.Logger

	current atomic.Pointer[engineState]
}

func NewEngine(source CatalogSource, components int, modelPath string, logger *zap.Logger) *Engine {
	return &Engine{
		source:     source,
		components: components,
		modelPath:  modelPath,
		logger:     logger,
	}
}

// Start prepares the engine before any query is served. When a snapshot
// path is configured and the file exists, the fitted encoder and index
// are restored from it; a corrupt or catalog-incompatible snapshot is a
// *models.LoadError, which callers treat as fatal. Without a usable
// snapshot the models are built from scratch and persisted.
func (e *Engine) Start(ctx context.Context) error {
	records, err := e.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	store, err := catalog.New(e.source.Kind(), records)
	if err != nil {
		return fmt.Errorf("build catalog store: %w", err)
	}

	if e.modelPath != "" {
		snap, err := index.LoadSnapshot(e.modelPath)
		switch {
		case err == nil:
			if !snap.MatchesCatalog(store.Kind(), store.Names()) {
				return &models.LoadError{Path: e.modelPath,
					Err: fmt.Errorf("snapshot was built from a different catalog")}
			}
			state, err := e.assemble(store, snap.Encoder, snap.Index)
			if err != nil {
				return err
			}
			e.current.Store(state)
			e.logger.Info("Model snapshot loaded",
				zap.String("path", e.modelPath),
				zap.Int("records", store.Len()),
			)
			return nil
		case errors.Is(err, os.ErrNotExist):
			// First run; fall through to a fresh build.
		default:
			return err
		}
	}

	state, err := e.build(store)
	if err != nil {
		return err
	}
	e.current.Store(state)

	if e.modelPath != "" {
		snap := &index.Snapshot{
			Kind:    store.Kind(),
			Names:   store.Names(),
			Encoder: state.encoder,
			Index:   state.index,
		}
		if err := index.SaveSnapshot(e.modelPath, snap); err != nil {
			e.logger.Warn("Failed to persist model snapshot", zap.Error(err))
		} else {
			e.logger.Info("Model snapshot saved", zap.String("path", e.modelPath))
		}
	}
	return nil
}

// Rebuild reloads the catalog, builds a fresh state and swaps it in
// atomically. In-flight queries finish against the old state.
func (e *Engine) Rebuild(ctx context.Context) error {
	records, err := e.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	store, err := catalog.New(e.source.Kind(), records)
	if err != nil {
		return fmt.Errorf("build catalog store: %w", err)
	}
	state, err := e.build(store)
	if err != nil {
		return err
	}
	e.current.Store(state)

	if e.modelPath != "" {
		snap := &index.Snapshot{
			Kind:    store.Kind(),
			Names:   store.Names(),
			Encoder: state.encoder,
			Index:   state.index,
		}
		if err := index.SaveSnapshot(e.modelPath, snap); err != nil {
			e.logger.Warn("Failed to persist model snapshot", zap.Error(err))
		}
	}
	e.logger.Info("Engine rebuilt", zap.Int("records", store.Len()))
	return nil
}

// build fits encoder, index and retriever over a catalog store.
func (e *Engine) build(store *catalog.Store) (*engineState, error) {
	start := time.Now()
	enc, err := encoder.Fit(store.Records())
	if err != nil {
		return nil, fmt.Errorf("fit encoder: %w", err)
	}
	vectors := make([][]float64, store.Len())
	for i, rec := range store.Records() {
		vec, err := enc.Encode(rec)
		if err != nil {
			return nil, fmt.Errorf("encode catalog: %w", err)
		}
		vectors[i] = vec
	}
	ix, err := index.Build(vectors, e.components)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	state, err := e.assemble(store, enc, ix)
	if err != nil {
		return nil, err
	}
	e.logger.Info("Model build completed",
		zap.Int("records", store.Len()),
		zap.Int("feature_dim", enc.Dimension()),
		zap.Duration("took", time.Since(start)),
	)
	return state, nil
}

// assemble builds the retriever (always rebuilt from the store, it is
// cheap and not persisted) and packages the state.
func (e *Engine) assemble(store *catalog.Store, enc *encoder.Encoder, ix *index.Index) (*engineState, error) {
	if ix.Len() != store.Len() {
		return nil, fmt.Errorf("index rows (%d) do not match catalog size (%d)", ix.Len(), store.Len())
	}
	retr, err := retriever.Build(store)
	if err != nil {
		return nil, fmt.Errorf("build retriever: %w", err)
	}
	return &engineState{
		store:     store,
		encoder:   enc,
		index:     ix,
		retriever: retr,
		builtAt:   time.Now(),
	}, nil
}

// state returns the current immutable snapshot, or an error before Start
// has completed. Queries must not observe a partial build.
func (e *Engine) state() (*engineState, error) {
	st := e.current.Load()
	if st == nil {
		return nil, fmt.Errorf("engine not started")
	}
	return st, nil
}
