// Package command turns chat command text into rendered replies.
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/heartmarshall/dante-lexicon/internal/domain"
	"github.com/heartmarshall/dante-lexicon/internal/query"
)

// Reply texts.
const (
	ReplyNone                = "None"
	ReplyLookupFailed        = "❗️ lookup failed"
	ReplyTranslateUsage      = "Usage: /t <source lang> <target lang> <text>"
	ReplyUnknownSource       = "❗️ unknown source lang"
	ReplyUnknownTarget       = "❗️ unknown target lang"
	ReplyBadRequest          = "❗️ bad request. refer to logs"
	ReplyTranslationDisabled = "❗️ translation is not configured"
	ReplyLookupUsage         = "Usage: /q <word> [<word> ...]"
)

const helpText = "These commands are supported:\n" +
	"/h - Show help\n" +
	"/id - Show this chat's id\n" +
	"/info - More info\n" +
	"/q - Query: '/q <word>'\n" +
	"/t - Translate: '/t <source lang> <target lang> <text>'\n" +
	"/u - Get character usage for the current period"

const infoText = "I am Dante, the romantic. I'll tell you whether an English word has roots in the Latin language. /q " +
	"Where applicable, I include modern analogs for the word of interest (currently \"FR\", \"ES\", & \"IT\"). " +
	"I can also translate words to and from various languages. /t\n\n" +
	"See the commands list for usage and syntax. /h\n\n" +
	"tips: A query result contains a grammatical part (noun, adj, verb) that refers to the latin root, " +
	"and not necessarily the english word.\n\n" +
	"Keep in mind, the 'descendants' aim to capture lexical forms that most closely resemble their latin origin, " +
	"but since the meaning of words drifts over time, they may no longer track semantically.\n\n" +
	"Ok enough preamble,\nCarpe Diem!"

// Message is one incoming chat message.
type Message struct {
	ChatID int64
	Text   string
}

// Reply is the rendered answer. Skip means the message is ignored and nothing
// should be sent back.
type Reply struct {
	Text string
	Skip bool
}

type wordResolver interface {
	ResolveWord(ctx context.Context, text string) (domain.Resolution, error)
}

type translateParser interface {
	ParseTranslate(text string) (query.TranslateRequest, error)
}

type translator interface {
	Translate(ctx context.Context, src, trg domain.Language, text string) (domain.Translation, error)
	Usage(ctx context.Context) (domain.Usage, error)
}

type chatPolicy interface {
	IsChatAllowed(chatID int64) bool
}

type commandRecorder interface {
	ObserveCommand(command string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveCommand(string) {}

// Dispatcher routes "/h", "/id", "/info", "/q", "/t" and "/u".
type Dispatcher struct {
	log        *slog.Logger
	resolver   wordResolver
	parser     translateParser
	translator translator
	policy     chatPolicy
	metrics    commandRecorder
}

// NewDispatcher creates a Dispatcher. rec may be nil.
func NewDispatcher(
	logger *slog.Logger,
	resolver wordResolver,
	parser translateParser,
	translator translator,
	policy chatPolicy,
	rec commandRecorder,
) *Dispatcher {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Dispatcher{
		log:        logger.With("service", "command"),
		resolver:   resolver,
		parser:     parser,
		translator: translator,
		policy:     policy,
		metrics:    rec,
	}
}

// Handle renders the reply for msg. Domain failures are rendered into the
// reply text; the returned error is non-nil only when ctx is done.
//
// "/id" answers every chat, allowed or not, so operators can learn the id
// they need to add to the allow list.
func (d *Dispatcher) Handle(ctx context.Context, msg Message) (Reply, error) {
	cmd, text := splitCommand(msg.Text)
	if cmd == "/id" {
		d.metrics.ObserveCommand(cmd)
		return Reply{Text: strconv.FormatInt(msg.ChatID, 10)}, nil
	}

	if !d.policy.IsChatAllowed(msg.ChatID) {
		d.log.DebugContext(ctx, "chat not allowed", slog.Int64("chat_id", msg.ChatID))
		return Reply{Skip: true}, nil
	}
	d.metrics.ObserveCommand(cmd)

	var reply string
	switch cmd {
	case "/q":
		reply = d.lookup(ctx, text)
	case "/t":
		reply = d.translate(ctx, text)
	case "/u":
		reply = d.usage(ctx)
	case "/info":
		reply = infoText
	default:
		reply = helpText
	}

	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	return Reply{Text: reply}, nil
}

func (d *Dispatcher) lookup(ctx context.Context, text string) string {
	res, err := d.resolver.ResolveWord(ctx, text)
	switch {
	case errors.Is(err, domain.ErrUsage):
		return ReplyLookupUsage
	case err != nil:
		return ReplyLookupFailed
	}
	return RenderResolution(res)
}

func (d *Dispatcher) translate(ctx context.Context, text string) string {
	req, err := d.parser.ParseTranslate(text)
	switch {
	case errors.Is(err, domain.ErrUnknownSourceLanguage):
		return ReplyUnknownSource
	case errors.Is(err, domain.ErrUnknownTargetLanguage):
		return ReplyUnknownTarget
	case err != nil:
		return ReplyTranslateUsage
	}

	d.log.InfoContext(ctx, "translate requested",
		slog.String("source", string(req.Source)),
		slog.String("target", string(req.Target)),
	)

	tr, err := d.translator.Translate(ctx, req.Source, req.Target, req.Phrase)
	if err != nil {
		return d.providerFailure(ctx, "translate", err)
	}
	return tr.Text
}

func (d *Dispatcher) usage(ctx context.Context) string {
	u, err := d.translator.Usage(ctx)
	if err != nil {
		return d.providerFailure(ctx, "usage", err)
	}
	return fmt.Sprintf("%d / %d", u.CharacterCount, u.CharacterLimit)
}

func (d *Dispatcher) providerFailure(ctx context.Context, op string, err error) string {
	if errors.Is(err, domain.ErrTranslationDisabled) {
		return ReplyTranslationDisabled
	}
	d.log.ErrorContext(ctx, "translation provider failed", slog.String("op", op), slog.String("error", err.Error()))
	return ReplyBadRequest
}

// RenderResolution formats a resolution the way the chat shows it.
func RenderResolution(res domain.Resolution) string {
	if !res.Found() {
		return ReplyNone
	}

	e := res.Entry
	lead := "Here's what I've got for"
	if res.Match == domain.MatchFuzzy {
		lead = "❔ Meno male, I found something similar:"
	}
	return fmt.Sprintf("%s %s,\nfrom the latin: %s, %s\ndescendants:\nfr %s\nes %s\nit %s",
		lead, e.Headword, e.Root, e.Definition, e.French, e.Spanish, e.Italian)
}

// splitCommand returns the lowercased command (without any "@bot" suffix) and
// the text rewritten to start with that command.
func splitCommand(text string) (string, string) {
	text = strings.TrimLeft(text, " \t")
	end := strings.IndexAny(text, " \t\n")
	if end < 0 {
		end = len(text)
	}

	cmd := strings.ToLower(text[:end])
	if at := strings.IndexByte(cmd, '@'); at >= 0 {
		cmd = cmd[:at]
	}
	return cmd, cmd + text[end:]
}
