package feed

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/realtime"
	"hotel/shared/constant"
	"hotel/shared/timezone"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownFeed        = errors.New("unknown feed")
	ErrDuplicateFeed      = errors.New("feed already registered")
	ErrSubscriptionClosed = errors.New("subscription closed")
)

// Fetch reads the complete row set of a feed.
type Fetch func(ctx context.Context) (any, error)

// Source describes one feed: the tables whose changes invalidate it and the
// query that rebuilds it.
type Source struct {
	Name         string
	Tables       []string
	Fetch        Fetch
	PollInterval time.Duration
}

type Snapshot struct {
	Feed      string    `json:"feed"`
	Rows      any       `json:"rows"`
	Loading   bool      `json:"loading"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Scheduler is the subset of *cron.Cron the hub needs for fallback polling.
type Scheduler interface {
	AddFunc(spec string, cmd func()) (cron.EntryID, error)
	Remove(id cron.EntryID)
}

type Hub interface {
	Register(source Source) error
	// Subscribe joins a feed. The first subscriber starts the change
	// subscriptions, the poll entry and the initial fetch.
	Subscribe(ctx context.Context, name string) (*Subscription, error)
	// Refresh runs one fetch cycle and returns its result.
	Refresh(ctx context.Context, name string) (Snapshot, error)
	// Snapshot returns the loaded rows of a feed, joining it for the duration
	// of the call when nobody is subscribed.
	Snapshot(ctx context.Context, name string) (Snapshot, error)
	Subscribers(name string) int
	Feeds() []string
	Close()
}

type hubImpl struct {
	mu        sync.RWMutex
	feeds     map[string]*feed
	notifier  realtime.Notifier
	scheduler Scheduler
	interval  time.Duration
	timeout   time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
	otel      otel.Otel
}

func New(notifier realtime.Notifier, scheduler Scheduler, cfg *config.Config, otel otel.Otel) Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &hubImpl{
		feeds:     make(map[string]*feed),
		notifier:  notifier,
		scheduler: scheduler,
		interval:  time.Duration(cfg.Sync.PollIntervalSeconds) * time.Second,
		timeout:   time.Duration(cfg.Sync.FetchTimeoutSeconds) * time.Second,
		ctx:       ctx,
		cancel:    cancel,
		otel:      otel,
	}
}

func (h *hubImpl) Register(source Source) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.feeds[source.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFeed, source.Name)
	}

	if source.PollInterval <= 0 {
		source.PollInterval = h.interval
	}

	h.feeds[source.Name] = &feed{
		hub:    h,
		source: source,
		subs:   make(map[*Subscription]struct{}),
	}

	return nil
}

func (h *hubImpl) Subscribe(_ context.Context, name string) (*Subscription, error) {
	f, err := h.feed(name)
	if err != nil {
		return nil, err
	}

	return f.join(), nil
}

func (h *hubImpl) Refresh(ctx context.Context, name string) (Snapshot, error) {
	f, err := h.feed(name)
	if err != nil {
		return Snapshot{}, err
	}

	sub := f.join()
	defer sub.Close()

	return f.fetch(ctx), nil
}

func (h *hubImpl) Snapshot(ctx context.Context, name string) (Snapshot, error) {
	f, err := h.feed(name)
	if err != nil {
		return Snapshot{}, err
	}

	sub := f.join()
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return Snapshot{}, fmt.Errorf("failed to load feed %s: %w", name, ctx.Err())
		case snapshot, ok := <-sub.C():
			if !ok {
				return Snapshot{}, ErrSubscriptionClosed
			}

			if !snapshot.Loading {
				return snapshot, nil
			}
		}
	}
}

func (h *hubImpl) Subscribers(name string) int {
	f, err := h.feed(name)
	if err != nil {
		return 0
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.subs)
}

func (h *hubImpl) Feeds() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.feeds))
	for name := range h.feeds {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Close cancels in-flight fetches. Subscriptions stay valid but receive no
// further snapshots.
func (h *hubImpl) Close() {
	h.cancel()
}

func (h *hubImpl) feed(name string) (*feed, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	f, ok := h.feeds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFeed, name)
	}

	return f, nil
}

type feed struct {
	hub    *hubImpl
	source Source

	// mu guards the subscriber set and everything the first and last
	// subscriber start and stop.
	mu           sync.Mutex
	subs         map[*Subscription]struct{}
	snapshot     Snapshot
	generation   uint64
	unsubscribes []func()
	entryID      cron.EntryID

	// fetchMu serializes fetches; queued coalesces change events that arrive
	// while a fetch is pending.
	fetchMu sync.Mutex
	queued  atomic.Bool
}

func (f *feed) join() *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	sub := &Subscription{feed: f, ch: make(chan Snapshot, 1)}
	f.subs[sub] = struct{}{}

	if len(f.subs) == 1 {
		f.start()
	}

	sub.ch <- f.snapshot

	return sub
}

func (f *feed) leave(sub *Subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.subs[sub]; !ok {
		return
	}

	delete(f.subs, sub)
	close(sub.ch)

	if len(f.subs) == 0 {
		f.stop()
	}
}

// start runs with f.mu held.
func (f *feed) start() {
	f.generation++
	f.snapshot = Snapshot{Feed: f.source.Name, Loading: true}

	for _, table := range f.source.Tables {
		f.unsubscribes = append(f.unsubscribes, f.hub.notifier.Subscribe(table, func(realtime.Event) {
			f.trigger()
		}))
	}

	entryID, err := f.hub.scheduler.AddFunc(fmt.Sprintf("@every %s", f.source.PollInterval), func() {
		f.fetch(f.hub.ctx)
	})
	if err != nil {
		log.Error().Err(err).Str("feed", f.source.Name).Msg("failed to schedule feed polling")
	}

	f.entryID = entryID

	log.Debug().Str("feed", f.source.Name).Strs("tables", f.source.Tables).Msg("feed started")

	f.trigger()
}

// stop runs with f.mu held.
func (f *feed) stop() {
	for _, unsubscribe := range f.unsubscribes {
		unsubscribe()
	}

	f.unsubscribes = nil

	if f.entryID != 0 {
		f.hub.scheduler.Remove(f.entryID)
		f.entryID = 0
	}

	f.generation++
	f.snapshot = Snapshot{}

	log.Debug().Str("feed", f.source.Name).Msg("feed stopped")
}

func (f *feed) trigger() {
	if !f.queued.CompareAndSwap(false, true) {
		return
	}

	go f.fetch(f.hub.ctx)
}

// fetch re-reads the whole feed and publishes the result to every
// subscriber. A failed read keeps the previous rows.
func (f *feed) fetch(ctx context.Context) Snapshot {
	f.fetchMu.Lock()
	defer f.fetchMu.Unlock()

	f.queued.Store(false)

	f.mu.Lock()
	generation := f.generation
	active := len(f.subs) > 0
	current := f.snapshot
	f.mu.Unlock()

	if !active {
		return current
	}

	ctx, scope := f.hub.otel.NewScope(ctx, constant.OtelFeedScopeName, constant.OtelFeedScopeName+".Fetch")
	defer scope.End()

	scope.SetAttribute("feed", f.source.Name)

	ctx, cancel := context.WithTimeout(ctx, f.hub.timeout)
	defer cancel()

	rows, err := f.source.Fetch(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	if generation != f.generation {
		return f.snapshot
	}

	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("feed", f.source.Name).Msg("failed to fetch feed, keeping previous rows")
	} else {
		f.snapshot.Rows = rows
		f.snapshot.FetchedAt = timezone.Now()
	}

	f.snapshot.Loading = false

	for sub := range f.subs {
		sub.publish(f.snapshot)
	}

	return f.snapshot
}

// Subscription receives the latest snapshot of a feed. Only the most recent
// snapshot is buffered; slow readers skip intermediate ones.
type Subscription struct {
	feed *feed
	ch   chan Snapshot
	once sync.Once
}

func (s *Subscription) C() <-chan Snapshot {
	return s.ch
}

func (s *Subscription) Feed() string {
	return s.feed.source.Name
}

// Close leaves the feed. The last subscriber to leave tears the feed down.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.feed.leave(s)
	})
}

// publish runs with the feed lock held, so it is the only sender.
func (s *Subscription) publish(snapshot Snapshot) {
	select {
	case <-s.ch:
	default:
	}

	s.ch <- snapshot
}
