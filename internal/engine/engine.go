package engine

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"sales-insight/internal/data"
	"sales-insight/internal/model"
	"sales-insight/internal/query"
)

// ErrEmptyDataset is returned when the loaded table has no rows.
var ErrEmptyDataset = errors.New("loaded dataset is empty")

// Engine answers questions about one immutable table.
//
// The anchor date ("today" for relative windows) is the latest order date in
// the table, fixed at construction. Nothing is mutated after New returns, so an
// Engine may serve concurrent callers.
type Engine struct {
	id       string
	source   string
	loadedAt time.Time
	table    *model.Table
	parser   *query.Parser
	format   query.Formatter
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	now            func() time.Time
	currencySymbol string
	source         string
}

// WithNow sets the clock used for the anchor date when the table has no dates.
func WithNow(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithCurrencySymbol sets the symbol prefixed to amounts in answers.
func WithCurrencySymbol(symbol string) Option {
	return func(o *options) { o.currencySymbol = symbol }
}

// WithSource records where the table came from (shown in dataset info).
func WithSource(source string) Option {
	return func(o *options) { o.source = source }
}

// New builds an engine over table.
func New(table *model.Table, opts ...Option) (*Engine, error) {
	o := &options{now: time.Now, currencySymbol: query.DefaultCurrencySymbol}
	for _, opt := range opts {
		opt(o)
	}
	if table == nil || table.Len() == 0 {
		return nil, ErrEmptyDataset
	}

	anchor := o.now()
	if table.HasDates() {
		if _, last, ok := table.DateRange(); ok {
			anchor = last
		}
	}

	e := &Engine{
		id:       uuid.NewString(),
		source:   o.source,
		loadedAt: o.now(),
		table:    table,
		parser:   query.NewParser(anchor),
		format:   query.Formatter{CurrencySymbol: o.currencySymbol},
	}
	log.Printf("Engine: %s ready with %d rows (anchor=%s, source=%q)",
		e.id, table.Len(), e.Anchor().Format(query.DateLayout), e.source)
	return e, nil
}

// Open loads path through the schema normalizer and builds an engine over it.
func Open(path string, load data.LoadOptions, opts ...Option) (*Engine, error) {
	table, err := data.LoadTable(path, load)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	e, err := New(table, append([]Option{WithSource(path)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return e, nil
}

// ID uniquely identifies this engine instance (and therefore its table).
func (e *Engine) ID() string { return e.id }

func (e *Engine) Source() string { return e.source }

func (e *Engine) LoadedAt() time.Time { return e.loadedAt }

// Anchor is the date relative time phrases resolve against.
func (e *Engine) Anchor() time.Time { return e.parser.Anchor() }

// CurrencySymbol is the symbol answers prefix amounts with.
func (e *Engine) CurrencySymbol() string { return e.format.CurrencySymbol }

// Table exposes the engine's table. It is read-only by construction.
func (e *Engine) Table() *model.Table { return e.table }

// Parse runs the intent parser.
func (e *Engine) Parse(question string) query.Params { return e.parser.Parse(question) }

// Run executes params against the engine's table.
func (e *Engine) Run(params query.Params) *query.Result { return query.Execute(e.table, params) }

// Format renders an answer sentence.
func (e *Engine) Format(params query.Params, res *query.Result) string {
	return e.format.Format(params, res)
}

// Answer runs the whole pipeline and keeps the intermediate artifacts.
func (e *Engine) Answer(question string) *Answer {
	params := e.Parse(question)
	res := e.Run(params)
	return &Answer{
		Question: question,
		Params:   params,
		Result:   res,
		Text:     e.Format(params, res),
		EngineID: e.id,
	}
}

// Ask answers question with a single sentence.
func (e *Engine) Ask(question string) string { return e.Answer(question).Text }
