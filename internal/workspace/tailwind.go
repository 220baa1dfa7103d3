package workspace

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/motion-core/motion-cli/internal/config"
	"github.com/motion-core/motion-cli/internal/registry"
)

const (
	// CSSTokenRegistryPath is where the registry publishes the design token
	// bundle.
	CSSTokenRegistryPath = "tokens/motion-core.css"
	// CSSTokenSentinel marks a CSS file that already carries the tokens.
	CSSTokenSentinel = "@utility card-highlight"
)

// TailwindSyncStatus reports what the token sync did (or would do).
type TailwindSyncStatus struct {
	Kind   TailwindSyncKind
	Target string
}

type TailwindSyncKind int

const (
	TailwindMissingConfig TailwindSyncKind = iota
	TailwindMissingFile
	TailwindAlreadyPresent
	TailwindDryRun
	TailwindUpdated
)

// Tailwind sync failure modes. A write failure surfaces through ReplaceFile
// with the backup already restored.
var (
	ErrTokensEmpty       = errors.New("tailwind token payload is empty")
	ErrTokensInvalidUTF8 = errors.New("tailwind token bundle is not valid UTF-8")
)

// SyncTailwindTokens inserts the registry's CSS token bundle into the
// configured Tailwind entry file. The sentinel makes the operation
// idempotent; the existing file's newline style is preserved; the rewrite
// itself goes through ReplaceFile so a failed write restores the original.
func SyncTailwindTokens(root string, cfg *config.Config, client *registry.Client, dryRun bool) (TailwindSyncStatus, error) {
	cssPath := strings.TrimSpace(cfg.Tailwind.CSS)
	if cssPath == "" {
		return TailwindSyncStatus{Kind: TailwindMissingConfig}, nil
	}

	target := UnderRoot(root, cssPath)
	display := relativeDisplay(root, target)
	existingBytes, err := os.ReadFile(target)
	if err != nil {
		if os.IsNotExist(err) {
			return TailwindSyncStatus{Kind: TailwindMissingFile, Target: display}, nil
		}
		return TailwindSyncStatus{}, fmt.Errorf("reading %s: %w", target, err)
	}

	existing := string(existingBytes)
	if strings.Contains(existing, CSSTokenSentinel) {
		return TailwindSyncStatus{Kind: TailwindAlreadyPresent, Target: display}, nil
	}

	tokenBytes, err := client.FetchComponentFile(CSSTokenRegistryPath)
	if err != nil {
		return TailwindSyncStatus{}, err
	}
	if !utf8.Valid(tokenBytes) {
		return TailwindSyncStatus{}, ErrTokensInvalidUTF8
	}

	importLine, tokenBody := splitTokenBundle(string(tokenBytes))
	tokenBody = trimTokenBody(tokenBody)
	if tokenBody == "" {
		return TailwindSyncStatus{}, ErrTokensEmpty
	}

	updated := insertTokenBlock(existing, importLine, tokenBody)

	if dryRun {
		return TailwindSyncStatus{Kind: TailwindDryRun, Target: display}, nil
	}

	if err := ReplaceFile(target, []byte(updated)); err != nil {
		return TailwindSyncStatus{}, err
	}
	return TailwindSyncStatus{Kind: TailwindUpdated, Target: display}, nil
}

// insertTokenBlock splices the token body (and the bundle's @import line when
// the file lacks a tailwindcss import) after the file's leading imports.
func insertTokenBlock(existing, importLine, tokenBody string) string {
	newline := detectNewline(existing)
	insertAt := importInsertionIndex(existing)
	prefix := existing[:insertAt]
	suffix := existing[insertAt:]

	var block strings.Builder
	if importLine != "" && !hasTailwindImport(existing) {
		block.WriteString(strings.TrimSpace(importLine))
		block.WriteString(newline)
		block.WriteString(newline)
	}
	block.WriteString(tokenBody)
	block.WriteString(newline)

	var sb strings.Builder
	sb.WriteString(prefix)
	if prefix != "" && !strings.HasSuffix(prefix, newline+newline) {
		if strings.HasSuffix(prefix, newline) {
			sb.WriteString(newline)
		} else {
			sb.WriteString(newline)
			sb.WriteString(newline)
		}
	}
	sb.WriteString(block.String())
	if suffix != "" && !strings.HasSuffix(sb.String(), newline) {
		sb.WriteString(newline)
	}
	sb.WriteString(suffix)
	return sb.String()
}

// splitTokenBundle separates a leading @import line from the token body.
func splitTokenBundle(source string) (importLine, body string) {
	trimmed := strings.TrimPrefix(source, "\uFEFF")
	if strings.HasPrefix(strings.TrimLeft(trimmed, " \t"), "@import") {
		if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
			return strings.TrimSpace(trimmed[:idx]), trimmed[idx+1:]
		}
		return strings.TrimSpace(trimmed), ""
	}
	return "", trimmed
}

func trimTokenBody(body string) string {
	body = strings.TrimLeft(body, "\r\n")
	return strings.TrimRight(body, "\r\n")
}

func detectNewline(contents string) string {
	if strings.Contains(contents, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// importInsertionIndex finds the offset just past the last @import line so
// the token block lands after the file's import header.
func importInsertionIndex(contents string) int {
	last := 0
	offset := 0
	for {
		idx := strings.IndexByte(contents[offset:], '\n')
		var segment string
		if idx < 0 {
			segment = contents[offset:]
		} else {
			segment = contents[offset : offset+idx+1]
		}

		line := strings.TrimLeft(strings.TrimRight(segment, "\r\n"), " \t")
		if strings.HasPrefix(line, "@import") {
			last = offset + len(segment)
		}

		if idx < 0 {
			break
		}
		offset += idx + 1
		if offset >= len(contents) {
			break
		}
	}
	return last
}

func hasTailwindImport(contents string) bool {
	for _, line := range strings.Split(contents, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "@import") && strings.Contains(trimmed, "tailwindcss") {
			return true
		}
	}
	return false
}

func relativeDisplay(root, target string) string {
	if rel, ok := strings.CutPrefix(target, root+string(os.PathSeparator)); ok {
		return rel
	}
	return target
}
