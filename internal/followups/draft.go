package followups

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/neocodenexus/vendorx-backend/pkg/enums"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
	"github.com/neocodenexus/vendorx-backend/pkg/groq"
)

const (
	defaultTone             = "Polite"
	defaultPreviousAttempts = 1
)

type chatClient interface {
	ChatCompletion(ctx context.Context, messages []groq.Message, opts groq.Options) (string, error)
}

// Drafter asks the LLM collaborator for a ready-to-send followup email.
type Drafter interface {
	DraftFollowup(ctx context.Context, input DraftRequest) (*DraftResponse, error)
}

type drafter struct {
	chat chatClient
}

func NewDrafter(chat chatClient) (Drafter, error) {
	if chat == nil {
		return nil, fmt.Errorf("chat client required")
	}
	return &drafter{chat: chat}, nil
}

func (d *drafter) DraftFollowup(ctx context.Context, input DraftRequest) (*DraftResponse, error) {
	issueType, err := enums.ParseIssueType(input.IssueType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid issue type")
	}
	if input.PreviousAttempts < 1 {
		input.PreviousAttempts = defaultPreviousAttempts
	}
	if strings.TrimSpace(input.Tone) == "" {
		input.Tone = defaultTone
	}

	prompt := buildDraftPrompt(input, issueType)
	raw, err := d.chat.ChatCompletion(ctx, []groq.Message{
		{Role: "user", Content: prompt},
	}, groq.Options{JSONMode: true})
	if err != nil {
		return nil, err
	}

	cleaned := sanitizeModelOutput(raw)
	if cleaned == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "drafting model returned no content")
	}

	var draft DraftResponse
	if err := json.Unmarshal([]byte(cleaned), &draft); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "drafting model returned an unparsable response")
	}
	if draft.Subject == "" || draft.Body == "" || draft.SuggestedSignature == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "drafting model returned an incomplete draft")
	}
	return &draft, nil
}

func buildDraftPrompt(input DraftRequest, issueType enums.IssueType) string {
	missing := "N/A"
	if len(input.MissingItems) > 0 {
		missing = strings.Join(input.MissingItems, ", ")
	}
	notes := "None"
	if input.ContextNotes != nil && strings.TrimSpace(*input.ContextNotes) != "" {
		notes = *input.ContextNotes
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a professional procurement coordinator. The vendor %q has become unresponsive due to %s.\n",
		input.VendorName, strings.ReplaceAll(string(issueType), "_", " "))
	fmt.Fprintf(&b, "Previous follow-ups: %d.\n", input.PreviousAttempts)
	fmt.Fprintf(&b, "Missing sections/items: %s.\n", missing)
	fmt.Fprintf(&b, "Context notes: %s.\n", notes)
	fmt.Fprintf(&b, "Provide a polite subject line and email body with tone %q that:\n", input.Tone)
	b.WriteString("- Mentions the issue type and required documents/items.\n")
	b.WriteString("- Suggests a gentle deadline.\n")
	b.WriteString("- Offers assistance and references procurement escalation if no response.\n")
	b.WriteString("Respond in JSON with keys subject, body, suggested_signature.")
	return b.String()
}

// sanitizeModelOutput strips reasoning blocks and code fences, then trims to
// the outermost JSON object.
func sanitizeModelOutput(raw string) string {
	out := raw
	for {
		start := strings.Index(out, "<think>")
		if start == -1 {
			break
		}
		end := strings.Index(out, "</think>")
		if end == -1 {
			out = out[:start]
			break
		}
		out = out[:start] + out[end+len("</think>"):]
	}

	out = strings.TrimSpace(out)
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")
	out = strings.TrimSpace(out)

	first := strings.Index(out, "{")
	last := strings.LastIndex(out, "}")
	if first == -1 || last == -1 || last < first {
		return ""
	}
	return out[first : last+1]
}
