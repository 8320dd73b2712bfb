package timeattack

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/idiomoji/server/internal/auth"
	"github.com/idiomoji/server/internal/config"
	"github.com/idiomoji/server/internal/errors"
	"github.com/idiomoji/server/internal/game"
	"github.com/idiomoji/server/internal/logger"
	"github.com/idiomoji/server/internal/models"
	"github.com/idiomoji/server/internal/repository"
	"github.com/idiomoji/server/internal/worker"
)

// JobQueue is the slice of the worker pool the controller needs.
type JobQueue interface {
	Submit(worker.Job)
}

// topUpThreshold is how close to the end of the queue the player may get
// before another batch is fetched.
const topUpThreshold = 5

// PuzzleView is the current puzzle as shown during a run. The answer never
// leaves the server while the run is live.
type PuzzleView struct {
	Emoji string `json:"emoji"`
	Hint  string `json:"hint,omitempty"`
}

// State is the payload for every time-attack response.
type State struct {
	SessionID        string      `json:"sessionId"`
	Active           bool        `json:"active"`
	Score            int         `json:"score"`
	Solved           int         `json:"solved"`
	RemainingSeconds float64     `json:"remainingSeconds"`
	AttemptsLeft     int         `json:"attemptsLeft,omitempty"`
	Puzzle           *PuzzleView `json:"puzzle,omitempty"`
	LastGuessCorrect *bool       `json:"lastGuessCorrect,omitempty"`
}

// session is one live run. All fields are guarded by the controller mutex.
type session struct {
	id       string
	uid      string
	name     string
	photoURL string
	start    time.Time

	queue  []models.Puzzle
	index  int
	served map[string]bool

	attempts    int
	usedHint    bool
	puzzleStart time.Time

	score  int
	solved int
	record []models.PuzzleAttempt

	// ending latches once so racing expiry checks, guesses and manual ends
	// persist the session exactly once.
	ending  bool
	endTime time.Time
}

// Controller runs the 120-second time-attack mode. Sessions live in memory
// keyed by player uid; only finished sessions reach storage.
type Controller struct {
	mu       sync.Mutex
	sessions map[string]*session

	puzzles   repository.PuzzleRepository
	rush      repository.RushRepository
	jobs      JobQueue
	publisher worker.Publisher

	duration  time.Duration
	batchSize int
	topUpSize int

	now func() time.Time
	rng *rand.Rand
}

func NewController(cfg config.Config, puzzles repository.PuzzleRepository, rush repository.RushRepository, jobs JobQueue, publisher worker.Publisher) *Controller {
	return &Controller{
		sessions:  make(map[string]*session),
		puzzles:   puzzles,
		rush:      rush,
		jobs:      jobs,
		publisher: publisher,
		duration:  time.Duration(cfg.RushDuration) * time.Second,
		batchSize: cfg.RushBatchSize,
		topUpSize: cfg.RushTopUpSize,
		now:       time.Now,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start begins a new run, replacing any previous one for the player.
func (c *Controller) Start(ctx context.Context, identity auth.Identity) (*State, error) {
	log := logger.FromContext(ctx)

	approved, err := c.puzzles.ListApproved(ctx, nil)
	if err != nil {
		log.Error("failed to list approved puzzles: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if len(approved) == 0 {
		return nil, errors.NewNotFoundError("approved puzzles", "any")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	batch := game.Shuffle(c.rng, approved)
	if len(batch) > c.batchSize {
		batch = batch[:c.batchSize]
	}

	now := c.now()
	sess := &session{
		id:          uuid.NewString(),
		uid:         identity.UID,
		name:        identity.Name,
		photoURL:    identity.PhotoURL,
		start:       now,
		queue:       batch,
		served:      make(map[string]bool, len(batch)),
		puzzleStart: now,
	}
	for _, p := range batch {
		sess.served[p.ID] = true
	}
	c.sessions[identity.UID] = sess

	log.Info("time-attack started: session=%s uid=%s queued=%d", sess.id, identity.UID, len(batch))
	return c.stateLocked(sess), nil
}

// Guess applies one answer to the current puzzle.
func (c *Controller) Guess(ctx context.Context, uid, guess string) (*State, error) {
	normalized := game.Normalize(guess)
	if normalized == "" {
		return nil, errors.NewValidationError("guess", "cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	sess, err := c.liveSessionLocked(ctx, uid)
	if err != nil {
		return nil, err
	}
	if sess.ending {
		return c.stateLocked(sess), nil
	}

	now := c.now()
	puzzle := sess.queue[sess.index]
	sess.attempts++
	correct := normalized == game.Normalize(puzzle.Answer)

	responseTime := now.Sub(sess.puzzleStart).Seconds()
	attempt := models.PuzzleAttempt{
		PuzzleID:      puzzle.ID,
		AnsweredAt:    now,
		Correct:       correct,
		ResponseTime:  responseTime,
		AttemptNumber: sess.attempts,
		UsedHint:      sess.usedHint,
	}

	if correct {
		attempt.ScoreAwarded = game.TimeAttackScore(responseTime, sess.attempts, sess.usedHint)
		sess.score += attempt.ScoreAwarded
		sess.solved++
	}
	sess.record = append(sess.record, attempt)

	if correct {
		c.advanceLocked(ctx, sess)
	} else if sess.attempts >= game.MaxRushAttempts {
		// Burning all attempts on one puzzle ends the whole run, same as the
		// clock reaching zero.
		c.endLocked(ctx, sess)
	}

	st := c.stateLocked(sess)
	st.LastGuessCorrect = &correct
	return st, nil
}

// UseHint flips the hint flag for the current puzzle. One-way per puzzle.
func (c *Controller) UseHint(ctx context.Context, uid string) (*State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, err := c.liveSessionLocked(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !sess.ending {
		sess.usedHint = true
	}
	return c.stateLocked(sess), nil
}

// State reports the current run, ending it first when the clock has run out.
func (c *Controller) State(ctx context.Context, uid string) (*State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.sessions[uid]
	if !ok {
		return nil, errors.NewNotFoundError("time-attack session", uid)
	}
	c.expireLocked(ctx, sess)
	return c.stateLocked(sess), nil
}

// End finishes the run on the player's request. Safe to call repeatedly.
func (c *Controller) End(ctx context.Context, uid string) (*State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.sessions[uid]
	if !ok {
		return nil, errors.NewNotFoundError("time-attack session", uid)
	}
	c.endLocked(ctx, sess)
	return c.stateLocked(sess), nil
}

// Leaderboard returns the top sessions by score.
func (c *Controller) Leaderboard(ctx context.Context, limit int) ([]models.TimeAttackSession, error) {
	if limit <= 0 {
		limit = 10
	}
	sessions, err := c.rush.TopSessions(ctx, limit)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load time-attack leaderboard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return sessions, nil
}

// Stats returns the player's aggregate time-attack record.
func (c *Controller) Stats(ctx context.Context, uid string) (*models.TimeAttackStats, error) {
	stats, err := c.rush.GetStats(ctx, uid)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load time-attack stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if stats == nil {
		stats = &models.TimeAttackStats{}
	}
	return stats, nil
}

// liveSessionLocked returns the player's session after running the expiry
// check. Callers must hold the mutex.
func (c *Controller) liveSessionLocked(ctx context.Context, uid string) (*session, error) {
	sess, ok := c.sessions[uid]
	if !ok {
		return nil, errors.NewBadRequestError("no time-attack session in progress")
	}
	c.expireLocked(ctx, sess)
	return sess, nil
}

func (c *Controller) expireLocked(ctx context.Context, sess *session) {
	if !sess.ending && c.now().Sub(sess.start) >= c.duration {
		c.endLocked(ctx, sess)
	}
}

// advanceLocked moves to the next puzzle, topping the queue up when it runs
// low and ending the run when the supply is exhausted.
func (c *Controller) advanceLocked(ctx context.Context, sess *session) {
	sess.index++
	sess.attempts = 0
	sess.usedHint = false
	sess.puzzleStart = c.now()

	remaining := len(sess.queue) - sess.index
	if remaining <= topUpThreshold {
		c.topUpLocked(ctx, sess)
	}
	if sess.index >= len(sess.queue) {
		// Out of puzzles entirely. The run ends as a completed win.
		logger.FromContext(ctx).Info("puzzle supply exhausted, ending run: session=%s", sess.id)
		c.endLocked(ctx, sess)
	}
}

func (c *Controller) topUpLocked(ctx context.Context, sess *session) {
	log := logger.FromContext(ctx)

	exclude := make([]string, 0, len(sess.served))
	for id := range sess.served {
		exclude = append(exclude, id)
	}

	fresh, err := c.puzzles.ListApproved(ctx, exclude)
	if err != nil {
		log.Warn("failed to top up puzzle queue: %v", err)
		return
	}
	if len(fresh) == 0 {
		return
	}

	batch := game.Shuffle(c.rng, fresh)
	if len(batch) > c.topUpSize {
		batch = batch[:c.topUpSize]
	}
	for _, p := range batch {
		sess.served[p.ID] = true
	}
	sess.queue = append(sess.queue, batch...)
	log.Debug("queue topped up: session=%s added=%d total=%d", sess.id, len(batch), len(sess.queue))
}

// endLocked finishes the session once and hands it to the worker pool for
// persistence. Later callers see the latched final state.
func (c *Controller) endLocked(ctx context.Context, sess *session) {
	if sess.ending {
		return
	}
	sess.ending = true

	end := c.now()
	if limit := sess.start.Add(c.duration); end.After(limit) {
		end = limit
	}
	sess.endTime = end

	record := models.TimeAttackSession{
		ID:             sess.id,
		PlayerID:       sess.uid,
		PlayerName:     sess.name,
		PlayerPhotoURL: sess.photoURL,
		StartTime:      sess.start,
		EndTime:        sess.endTime,
		Score:          sess.score,
		PuzzleAttempts: append([]models.PuzzleAttempt(nil), sess.record...),
	}

	logger.FromContext(ctx).Info("time-attack finished: session=%s uid=%s score=%d solved=%d", sess.id, sess.uid, sess.score, sess.solved)
	c.jobs.Submit(&worker.PersistRushSessionJob{
		RushRepo:  c.rush,
		Session:   record,
		Publisher: c.publisher,
	})
}

func (c *Controller) stateLocked(sess *session) *State {
	st := &State{
		SessionID: sess.id,
		Active:    !sess.ending,
		Score:     sess.score,
		Solved:    sess.solved,
	}

	if sess.ending {
		return st
	}

	remaining := c.duration - c.now().Sub(sess.start)
	if remaining < 0 {
		remaining = 0
	}
	st.RemainingSeconds = remaining.Seconds()
	st.AttemptsLeft = game.MaxRushAttempts - sess.attempts

	puzzle := sess.queue[sess.index]
	view := &PuzzleView{Emoji: puzzle.Emoji}
	if sess.usedHint {
		view.Hint = puzzle.Hint
	}
	st.Puzzle = view
	return st
}
