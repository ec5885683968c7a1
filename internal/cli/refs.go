package cli

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/lox/notionctl/internal/notion"
	"github.com/lox/notionctl/internal/output"
)

type RefKind int

const (
	RefName RefKind = iota
	RefID
	RefURL
)

// Ref is a user-supplied page or database reference.
type Ref struct {
	Kind RefKind
	ID   string
	Raw  string
}

var (
	uuidRE       = regexp.MustCompile(`(?i)[0-9a-f]{8}-?[0-9a-f]{4}-?[0-9a-f]{4}-?[0-9a-f]{4}-?[0-9a-f]{12}`)
	exactUUIDRE  = regexp.MustCompile(`(?i)^[0-9a-f]{8}-?[0-9a-f]{4}-?[0-9a-f]{4}-?[0-9a-f]{4}-?[0-9a-f]{12}$`)
	urlPrefixRE  = regexp.MustCompile(`(?i)^https?://`)
	notionHostRE = regexp.MustCompile(`(?i)(^|\.)notion\.(so|site)/`)
)

func ParseRef(raw string) Ref {
	s := strings.TrimSpace(raw)
	ref := Ref{Kind: RefName, Raw: s}

	switch {
	case urlPrefixRE.MatchString(s) || notionHostRE.MatchString(s):
		ref.Kind = RefURL
		ref.ID, _ = ExtractNotionUUID(s)
	case exactUUIDRE.MatchString(s):
		ref.Kind = RefID
		ref.ID, _ = ExtractNotionUUID(s)
	}
	return ref
}

// ExtractNotionUUID finds the last Notion ID in s and returns it in dashed
// form. URLs carry the ID after the title slug, before any query string.
func ExtractNotionUUID(s string) (string, bool) {
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	matches := uuidRE.FindAllString(s, -1)
	if len(matches) == 0 {
		return "", false
	}
	hex := strings.ToLower(strings.ReplaceAll(matches[len(matches)-1], "-", ""))
	return fmt.Sprintf("%s-%s-%s-%s-%s", hex[0:8], hex[8:12], hex[12:16], hex[16:20], hex[20:32]), true
}

// Searcher finds pages or databases by title.
type Searcher interface {
	Search(ctx context.Context, query, objectType string, limit int) ([]notion.Object, error)
}

func ResolveDatabaseID(ctx context.Context, s Searcher, ref string) (string, error) {
	return resolveID(ctx, s, ref, "database", output.DatabaseTitle)
}

func ResolvePageID(ctx context.Context, s Searcher, ref string) (string, error) {
	return resolveID(ctx, s, ref, "page", output.PageTitle)
}

const resolveSearchLimit = 20

func resolveID(ctx context.Context, s Searcher, raw, objectType string, title func(notion.Object) string) (string, error) {
	ref := ParseRef(raw)
	switch ref.Kind {
	case RefID:
		return ref.ID, nil
	case RefURL:
		if ref.ID == "" {
			return "", &output.UserError{Message: fmt.Sprintf("could not extract %s ID from URL: %s\nUse the %s ID directly instead.", objectType, raw, objectType)}
		}
		return ref.ID, nil
	}

	if ref.Raw == "" {
		return "", &output.UserError{Message: fmt.Sprintf("%s reference is required", objectType)}
	}

	results, err := s.Search(ctx, ref.Raw, objectType, resolveSearchLimit)
	if err != nil {
		return "", fmt.Errorf("search %ss: %w", objectType, err)
	}

	var partial []notion.Object
	for _, obj := range results {
		name := title(obj)
		if strings.EqualFold(name, ref.Raw) {
			return obj.Str("id"), nil
		}
		if strings.Contains(strings.ToLower(name), strings.ToLower(ref.Raw)) {
			partial = append(partial, obj)
		}
	}

	switch len(partial) {
	case 0:
		return "", &output.UserError{Message: fmt.Sprintf("no %s found matching %q", objectType, ref.Raw)}
	case 1:
		return partial[0].Str("id"), nil
	default:
		names := make([]string, 0, len(partial))
		for _, obj := range partial {
			names = append(names, fmt.Sprintf("%s (%s)", title(obj), obj.Str("id")))
		}
		return "", &output.UserError{Message: fmt.Sprintf("%q matches several %ss: %s", ref.Raw, objectType, strings.Join(names, ", "))}
	}
}
