package bidding

import (
	"context"
	"errors"
	"sync"
	"time"

	"vintage-vault/internal/countdown"
	"vintage-vault/internal/models"
	"vintage-vault/internal/realtime"
	"vintage-vault/internal/session"
	"vintage-vault/utils"

	"k8s.io/utils/clock"
)

// DefaultWinRedirectDelay is how long the winner sees the win notice
// before being sent to checkout
const DefaultWinRedirectDelay = 3 * time.Second

const defaultFrameBuffer = 64

// NoticeKind classifies user-facing notices
type NoticeKind string

const (
	NoticeNewBid    NoticeKind = "new_bid"
	NoticeBidPlaced NoticeKind = "bid_placed"
	NoticeBidFailed NoticeKind = "bid_failed"
	NoticeWon       NoticeKind = "won"
	NoticeNavigate  NoticeKind = "navigate"
	NoticeSignIn    NoticeKind = "sign_in"
	NoticeError     NoticeKind = "error"
)

// Notice is a message for the viewer, optionally pointing somewhere
type Notice struct {
	Kind     NoticeKind `json:"kind"`
	Title    string     `json:"title,omitempty"`
	Message  string     `json:"message,omitempty"`
	Location string     `json:"location,omitempty"`
}

// FrameKind tells which field of a Frame is set
type FrameKind string

const (
	FrameSnapshot  FrameKind = "snapshot"
	FrameCountdown FrameKind = "countdown"
	FrameNotice    FrameKind = "notice"
)

// Frame is one update pushed to a live screen
type Frame struct {
	Kind      FrameKind        `json:"kind"`
	Snapshot  *Snapshot        `json:"snapshot,omitempty"`
	Countdown *countdown.State `json:"countdown,omitempty"`
	Notice    *Notice          `json:"notice,omitempty"`
}

// Snapshot is the confirmed state of a watched item. PendingBid is the
// viewer's submission awaiting a verdict and is never folded into CurrentBid.
type Snapshot struct {
	Item        models.Item  `json:"item"`
	Leaderboard []models.Bid `json:"leaderboard"`
	CurrentBid  float64      `json:"current_bid"`
	MinNextBid  float64      `json:"min_next_bid"`
	PendingBid  *float64     `json:"pending_bid,omitempty"`
}

// RoomConfig describes a live screen to open
type RoomConfig struct {
	ItemID           string
	Viewer           *session.Session
	Feed             realtime.Subscriber
	Sessions         *session.Broker
	Clock            clock.WithTickerAndDelayedExecution
	WinRedirectDelay time.Duration
	CountdownPeriod  time.Duration
}

// Room is a live view of one item: it follows the change feed, runs the
// countdown and resolves the win once the auction ends. Close releases
// the feed subscription and the countdown ticker.
type Room struct {
	coord    *Coordinator
	itemID   string
	feed     realtime.Subscriber
	sessions *session.Broker
	clock    clock.WithTickerAndDelayedExecution
	winDelay time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
	frames chan Frame

	presenter *countdown.Presenter

	mu         sync.Mutex
	viewer     *session.Session
	snap       Snapshot
	seq        uint64
	applied    uint64
	high       float64
	pending    *float64
	winChecked bool
	winTimer   clock.Timer
}

// OpenRoom loads the item and its leaderboard and starts following it.
// The room stops when ctx ends or Close is called.
func (c *Coordinator) OpenRoom(ctx context.Context, cfg RoomConfig) (*Room, error) {
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}
	if cfg.WinRedirectDelay <= 0 {
		cfg.WinRedirectDelay = DefaultWinRedirectDelay
	}

	roomCtx, cancel := context.WithCancel(ctx)
	r := &Room{
		coord:    c,
		itemID:   cfg.ItemID,
		feed:     cfg.Feed,
		sessions: cfg.Sessions,
		clock:    cfg.Clock,
		winDelay: cfg.WinRedirectDelay,
		ctx:      roomCtx,
		cancel:   cancel,
		frames:   make(chan Frame, defaultFrameBuffer),
		viewer:   cfg.Viewer,
	}
	if err := r.refresh(roomCtx); err != nil {
		cancel()
		return nil, err
	}
	c.watch(r)

	item := r.Snapshot().Item
	if item.IsAuction && item.EndTime != nil {
		opts := []countdown.Option{countdown.WithStart(item.StartTime), countdown.WithPeriod(cfg.CountdownPeriod)}
		if item.AuctionStatus == models.AuctionEnded {
			opts = append(opts, countdown.AlreadyEnded())
		}
		r.presenter = countdown.New(*item.EndTime, cfg.Clock, r.resolveWin, opts...)
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			r.presenter.Run(roomCtx, func(st countdown.State) {
				f := Frame{Kind: FrameCountdown, Countdown: &st}
				if st.Phase == countdown.PhaseEnded {
					r.emit(f)
					return
				}
				r.offer(f)
			})
		}()
		// an auction that ended before the room opened still gets its win check
		if item.AuctionStatus == models.AuctionEnded {
			r.spawn(r.resolveWin)
		}
	}

	if r.feed != nil {
		r.wg.Add(1)
		go r.follow()
	}
	if r.sessions != nil {
		r.wg.Add(1)
		go r.watchSessions()
	}
	return r, nil
}

// Frames delivers the room's updates in order
func (r *Room) Frames() <-chan Frame {
	return r.frames
}

// Done is closed once the room has stopped
func (r *Room) Done() <-chan struct{} {
	return r.ctx.Done()
}

// Snapshot returns the latest confirmed state
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Close stops the room and waits for its goroutines. It is safe to call more than once.
func (r *Room) Close() {
	r.once.Do(func() {
		r.mu.Lock()
		r.cancel()
		if r.winTimer != nil {
			r.winTimer.Stop()
		}
		r.mu.Unlock()
		r.coord.unwatch(r)
		r.wg.Wait()
	})
}

// spawn runs fn on a goroutine Close waits for. Nothing starts once the
// room has stopped.
func (r *Room) spawn(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ctx.Err() != nil {
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		fn()
	}()
}

func (r *Room) viewerID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.viewer == nil {
		return ""
	}
	return r.viewer.UserID
}

func (r *Room) snapshotLocked() Snapshot {
	s := r.snap
	s.Leaderboard = append([]models.Bid(nil), r.snap.Leaderboard...)
	if r.pending != nil {
		p := *r.pending
		s.PendingBid = &p
	}
	return s
}

// refresh reads the item and leaderboard through the cache. Only the most
// recently started refresh may replace a newer one's result, so late
// replies never roll the view back.
func (r *Room) refresh(ctx context.Context) error {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	item, err := r.coord.Item(ctx, r.itemID)
	if err != nil {
		return err
	}
	bids, err := r.coord.Leaderboard(ctx, r.itemID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	if seq < r.applied {
		r.mu.Unlock()
		return nil
	}
	r.applied = seq
	r.high = max(r.high, item.BidBase())
	if len(bids) > 0 {
		r.high = max(r.high, bids[0].Amount)
	}
	r.snap = Snapshot{
		Item:        item,
		Leaderboard: bids,
		CurrentBid:  r.high,
		MinNextBid:  r.high + item.MinBidIncrement,
	}
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.emit(Frame{Kind: FrameSnapshot, Snapshot: &snap})
	return nil
}

func (r *Room) setPending(amount float64) {
	r.mu.Lock()
	r.pending = &amount
	snap := r.snapshotLocked()
	r.mu.Unlock()
	r.offer(Frame{Kind: FrameSnapshot, Snapshot: &snap})
}

// settle clears the pending bid. A failure leaves the confirmed state as
// it was; a success triggers an authoritative refresh on the room's own
// goroutine. It runs on the bidder's request and never waits for the viewer.
func (r *Room) settle(err error) {
	r.mu.Lock()
	r.pending = nil
	snap := r.snapshotLocked()
	r.mu.Unlock()

	if err != nil {
		r.offer(Frame{Kind: FrameSnapshot, Snapshot: &snap})
		r.offer(Frame{Kind: FrameNotice, Notice: &Notice{Kind: NoticeBidFailed, Message: noticeMessage(err)}})
		return
	}
	r.offer(Frame{Kind: FrameNotice, Notice: &Notice{Kind: NoticeBidPlaced, Message: "Bid placed successfully!"}})
	r.spawn(func() {
		if err := r.refresh(r.ctx); err != nil && r.ctx.Err() == nil {
			utils.Warn("Failed to refresh live room after bid", map[string]any{"item_id": r.itemID, "error": err.Error()})
		}
	})
}

func noticeMessage(err error) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Message
	}
	return err.Error()
}

func (r *Room) follow() {
	defer r.wg.Done()

	for ev, err := range realtime.Stream(r.ctx, r.feed, r.itemID) {
		if err != nil {
			utils.Warn("Live feed unavailable", map[string]any{"item_id": r.itemID, "error": err.Error()})
			r.emitNotice(Notice{Kind: NoticeError, Message: "Live updates are unavailable"})
			return
		}
		if n, ok := r.coord.HandleChange(ev, r.viewerID()); ok {
			r.emitNotice(n)
		}
		if err := r.refresh(r.ctx); err != nil && r.ctx.Err() == nil {
			utils.Warn("Failed to refresh live room", map[string]any{"item_id": r.itemID, "error": err.Error()})
			r.emitNotice(Notice{Kind: NoticeError, Message: noticeMessage(err)})
		}
	}
}

func (r *Room) watchSessions() {
	defer r.wg.Done()

	changes, stop := r.sessions.Subscribe(r.ctx)
	defer stop()
	for ch := range changes {
		if !ch.SignedOut {
			continue
		}
		r.mu.Lock()
		dropped := r.viewer != nil && r.viewer.UserID == ch.UserID
		if dropped {
			r.viewer = nil
		}
		r.mu.Unlock()
		if dropped {
			r.emitNotice(Notice{Kind: NoticeSignIn, Message: "Please sign in to place a bid", Location: utils.SignInPath})
		}
	}
}

// resolveWin runs once when the countdown reaches ENDED. The leader is
// read from a fresh leaderboard, never from the view already on screen.
func (r *Room) resolveWin() {
	r.mu.Lock()
	if r.winChecked {
		r.mu.Unlock()
		return
	}
	r.winChecked = true
	viewer := r.viewer
	r.mu.Unlock()

	r.coord.cache.Invalidate(itemKey(r.itemID))
	r.coord.cache.Invalidate(bidsKey(r.itemID))
	if err := r.refresh(r.ctx); err != nil {
		if r.ctx.Err() == nil {
			utils.Warn("Failed to resolve auction winner", map[string]any{"item_id": r.itemID, "error": err.Error()})
		}
		return
	}

	leaderboard := r.Snapshot().Leaderboard
	if !viewer.Authenticated() || len(leaderboard) == 0 || leaderboard[0].UserID != viewer.UserID {
		return
	}

	utils.Info("Auction won", map[string]any{"item_id": r.itemID, "user_id": viewer.UserID})
	r.emitNotice(Notice{Kind: NoticeWon, Title: "Congratulations! You won the auction!", Message: "Proceeding to payment..."})

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ctx.Err() != nil {
		return
	}
	location := "/checkout/" + r.itemID
	r.winTimer = r.clock.AfterFunc(r.winDelay, func() {
		r.emitNotice(Notice{Kind: NoticeNavigate, Location: location})
	})
}

func (r *Room) emitNotice(n Notice) {
	r.emit(Frame{Kind: FrameNotice, Notice: &n})
}

func (r *Room) emit(f Frame) {
	select {
	case r.frames <- f:
	case <-r.ctx.Done():
	}
}

// offer queues f without waiting. A full buffer drops it: the viewer is
// behind and the next snapshot or tick supersedes it.
func (r *Room) offer(f Frame) {
	select {
	case r.frames <- f:
	default:
		utils.Debug("Live room dropped frame for slow viewer", map[string]any{"item_id": r.itemID, "kind": string(f.Kind)})
	}
}
