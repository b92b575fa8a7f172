package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

const (
	historyTurns        = 6
	descriptionExcerpt  = 160
	RoleUser            = "user"
	RoleBot             = "bot"
	noMatchReply        = "I couldn't find a matching product. Try describing the style, room, or material you have in mind."
	genericFallbackText = "Here are some products that match what you asked for:"
)

// Generator writes a reply for a prompt. *utils.GeminiGenerator satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Catalog lists the products the assistant may recommend.
type Catalog interface {
	Products(ctx context.Context) ([]models.Product, error)
}

// Reply is the assistant's answer to one message.
type Reply struct {
	SessionID string           `json:"session_id"`
	Reply     string           `json:"reply"`
	Products  []models.Product `json:"products"`
}

// Bot answers shopping questions. gen may be nil, in which case replies are
// built from the matched products alone.
type Bot struct {
	catalog Catalog
	gen     Generator
	history History
	now     func() time.Time
}

func NewBot(catalog Catalog, gen Generator, history History) *Bot {
	if history == nil {
		history = NewMemoryHistory()
	}
	return &Bot{catalog: catalog, gen: gen, history: history, now: time.Now}
}

// Respond answers message within the given session, starting a new session
// when sessionID is empty.
func (b *Bot) Respond(ctx context.Context, sessionID, message string) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", models.ErrValidation)
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	products, err := b.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	matches := Search(products, Keywords(message), SearchLimit)

	past, err := b.history.Recent(ctx, sessionID, historyTurns)
	if err != nil {
		log.Printf("Chat history unavailable for %s: %v", sessionID, err)
		past = nil
	}

	text := fallbackReply(matches)
	if b.gen != nil {
		generated, err := b.gen.Generate(ctx, buildPrompt(past, matches, message))
		if err != nil {
			log.Printf("Reply generation failed, using fallback: %v", err)
		} else if generated != "" {
			text = generated
		}
	}

	now := b.now()
	ids := make([]string, 0, len(matches))
	for _, p := range matches {
		ids = append(ids, p.ID)
	}
	if err := b.history.Append(ctx,
		models.ChatMessage{SessionID: sessionID, Role: RoleUser, Text: message, CreatedAt: now},
		models.ChatMessage{SessionID: sessionID, Role: RoleBot, Text: text, ProductIDs: ids, CreatedAt: now.Add(time.Millisecond)},
	); err != nil {
		log.Printf("Failed to save chat turn for %s: %v", sessionID, err)
	}

	return &Reply{SessionID: sessionID, Reply: text, Products: matches}, nil
}

func buildPrompt(past []models.ChatMessage, matches []models.Product, message string) string {
	var sb strings.Builder

	if len(past) > 0 {
		sb.WriteString("Conversation so far:\n")
		for _, m := range past {
			fmt.Fprintf(&sb, "%s: %s\n", m.Role, m.Text)
		}
		sb.WriteString("\n")
	}

	if len(matches) == 0 {
		sb.WriteString("No catalog products matched the shopper's request.\n")
	} else {
		sb.WriteString("Catalog excerpt:\n")
		for _, p := range matches {
			fmt.Fprintf(&sb, "- %s (%s) %.2f", p.ProductName, categoryOf(p), p.EffectivePrice())
			if d := excerpt(descriptions.plain(p)); d != "" {
				fmt.Fprintf(&sb, ": %s", d)
			}
			sb.WriteString("\n")
		}
	}

	fmt.Fprintf(&sb, "\nShopper: %s\n", message)
	return sb.String()
}

func fallbackReply(matches []models.Product) string {
	if len(matches) == 0 {
		return noMatchReply
	}
	names := make([]string, 0, len(matches))
	for _, p := range matches {
		names = append(names, p.ProductName)
	}
	return genericFallbackText + " " + strings.Join(names, ", ") + "."
}

func categoryOf(p models.Product) string {
	if p.Category == "" {
		return "Uncategorized"
	}
	return p.Category
}

func excerpt(s string) string {
	r := []rune(s)
	if len(r) <= descriptionExcerpt {
		return s
	}
	return strings.TrimSpace(string(r[:descriptionExcerpt])) + "..."
}
