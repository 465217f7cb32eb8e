package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	tele "gopkg.in/telebot.v3"

	"github.com/rx3lixir/fonoteka/internal/catalog"
	"github.com/rx3lixir/fonoteka/internal/db"
	"github.com/rx3lixir/fonoteka/internal/ratelimit"
	"github.com/rx3lixir/fonoteka/pkg/s3storage"
)

const handlerTimeout = 15 * time.Second

// Bot is the Telegram transport over the catalog core. Every inbound
// message is handled independently; the only shared state is the store.
type Bot struct {
	tb      *tele.Bot
	catalog *catalog.Service
	users   db.UserStore
	limiter *ratelimit.Limiter
	archive *s3storage.MinIOClient
	log     *log.Logger
}

// New builds the bot and registers all handlers. archive may be nil, in
// which case accepted tracks are not mirrored to S3.
func New(
	token string,
	pollTimeout time.Duration,
	svc *catalog.Service,
	users db.UserStore,
	limiter *ratelimit.Limiter,
	archive *s3storage.MinIOClient,
	logger *log.Logger,
) (*Bot, error) {
	tb, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: pollTimeout},
	})
	if err != nil {
		return nil, err
	}

	b := &Bot{
		tb:      tb,
		catalog: svc,
		users:   users,
		limiter: limiter,
		archive: archive,
		log:     logger,
	}

	tb.Handle("/start", b.handleStart)
	tb.Handle("/stop", b.handleStop)
	tb.Handle("/help", b.handleHelp)
	tb.Handle("/stats", b.handleStats)
	tb.Handle("/music", b.handleMusic)
	tb.Handle(tele.OnAudio, b.handleAudio)
	tb.Handle(tele.OnText, b.handleText)

	return b, nil
}

// Start begins long-polling and blocks until Shutdown.
func (b *Bot) Start() error {
	b.log.Info("bot started", "username", b.tb.Me.Username)
	b.tb.Start()
	return nil
}

func (b *Bot) Shutdown(_ context.Context) error {
	b.tb.Stop()
	return nil
}

func handlerContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), handlerTimeout)
}

// allowed applies the per-sender rate limit before any real work.
func (b *Bot) allowed(ctx context.Context, c tele.Context) bool {
	if b.limiter.Allow(ctx, c.Sender().ID) {
		return true
	}

	b.log.Warn("sender rate limited", "sender", c.Sender().ID)
	return false
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx, cancel := handlerContext()
	defer cancel()

	sender := c.Sender()

	existing, err := b.users.UserByID(ctx, sender.ID)
	if err != nil {
		b.log.Error("failed to look up user", "sender", sender.ID, "error", err)
		return c.Send(msgSomethingWrong)
	}

	if existing == nil {
		user := &db.User{
			ID:        sender.ID,
			FirstName: sender.FirstName,
			LastName:  sender.LastName,
			Username:  sender.Username,
		}
		if err := b.users.CreateUser(ctx, user); err != nil {
			b.log.Error("failed to register user", "sender", sender.ID, "error", err)
			return c.Send(msgSomethingWrong)
		}
		b.log.Info("new user", "sender", sender.ID, "username", sender.Username)
	}

	return c.Send(msgGreeting)
}

func (b *Bot) handleStop(c tele.Context) error {
	ctx, cancel := handlerContext()
	defer cancel()

	sender := c.Sender()

	if err := b.users.DeleteUser(ctx, sender.ID); err != nil {
		b.log.Error("failed to delete user", "sender", sender.ID, "error", err)
		return c.Send(msgSomethingWrong)
	}

	b.log.Info("user quit", "sender", sender.ID, "username", sender.Username)
	return c.Send(msgGoodbye)
}

func (b *Bot) handleHelp(c tele.Context) error {
	return c.Send(msgHelp)
}

func (b *Bot) handleStats(c tele.Context) error {
	ctx, cancel := handlerContext()
	defer cancel()

	text, err := b.catalog.Stats(ctx)
	if err != nil {
		b.log.Error("failed to read stats", "error", err)
		return c.Send(msgSomethingWrong)
	}

	return c.Send(text)
}

// handleMusic serves "/music <query>"; a bare /music gets the greeting, the
// same way the original bot answered its usage command.
func (b *Bot) handleMusic(c tele.Context) error {
	query := strings.TrimSpace(c.Message().Payload)
	if query == "" {
		return c.Send(msgGreeting)
	}

	ctx, cancel := handlerContext()
	defer cancel()

	if !b.allowed(ctx, c) {
		return c.Send(msgRateLimited)
	}

	return b.runSearch(ctx, c, query, 1)
}

// handleText is the default handler: an echoed show-more label continues
// its pagination, anything else starts a fresh search.
func (b *Bot) handleText(c tele.Context) error {
	ctx, cancel := handlerContext()
	defer cancel()

	if !b.allowed(ctx, c) {
		return c.Send(msgRateLimited)
	}

	if query, nextPage, ok := ParseShowMore(c.Text()); ok {
		return b.runSearch(ctx, c, query, nextPage)
	}

	return b.runSearch(ctx, c, c.Text(), 1)
}

func (b *Bot) runSearch(ctx context.Context, c tele.Context, query string, page int) error {
	b.log.Info("searching", "sender", c.Sender().ID, "query", query, "page", page)

	result, err := b.catalog.Search(ctx, query, page)
	if err != nil {
		if errors.Is(err, catalog.ErrNoMatches) {
			return c.Send(msgNotFound)
		}
		b.log.Error("search failed", "query", query, "error", err)
		return c.Send(msgSomethingWrong)
	}

	markup := resultMarkup(result)
	for _, res := range result.Results {
		audio := &tele.Audio{
			File:      tele.File{FileID: res.Track.FileID},
			Title:     res.Track.Title,
			Performer: res.Track.Performer,
			Duration:  res.Track.Duration,
		}
		if err := c.Send(audio, markup); err != nil {
			return err
		}
	}

	return nil
}

func (b *Bot) handleAudio(c tele.Context) error {
	ctx, cancel := handlerContext()
	defer cancel()

	if !b.allowed(ctx, c) {
		return c.Send(msgRateLimited)
	}

	audio := c.Message().Audio
	sender := c.Sender()

	outcome, track, err := b.catalog.Submit(ctx, sender.ID, catalog.Submission{
		FileID:    audio.FileID,
		Title:     audio.Title,
		Performer: audio.Performer,
		Duration:  audio.Duration,
		FileSize:  audio.FileSize,
	})
	if err != nil {
		b.log.Error("submission failed", "sender", sender.ID, "error", err)
		return c.Send(msgSomethingWrong)
	}

	switch outcome {
	case catalog.MissingTitle:
		return c.Send(msgMissingTitle)
	case catalog.Duplicate:
		// Silent by design of the catalog contract.
		return nil
	}

	if b.archive != nil {
		go b.archiveTrack(track, audio)
	}

	return nil
}

// archiveTrack mirrors an accepted audio file into S3, best effort: a
// failure is logged and never surfaces to the sender.
func (b *Bot) archiveTrack(track *db.Track, audio *tele.Audio) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rc, err := b.tb.File(&audio.File)
	if err != nil {
		b.log.Warn("failed to download track for archival", "file_id", track.FileID, "error", err)
		return
	}
	defer rc.Close()

	path, err := b.archive.ArchiveTrack(ctx, track.ID, rc, track.FileSize, audio.MIME)
	if err != nil {
		b.log.Warn("failed to archive track", "file_id", track.FileID, "error", err)
		return
	}

	b.log.Info("track archived", "file_id", track.FileID, "path", path)
}
